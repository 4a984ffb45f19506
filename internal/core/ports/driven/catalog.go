package driven

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// CatalogReader provides read access to the loaded catalog.
type CatalogReader interface {
	// Catalog returns the current catalog snapshot.
	// Returns domain.ErrCatalogNotLoaded before the first successful load.
	// Callers must not mutate the returned catalog.
	Catalog() (*domain.Catalog, error)
}

// CatalogStore holds the catalog shared by every front end.
// Publishing replaces the snapshot atomically; readers never see a partial catalog.
type CatalogStore interface {
	CatalogReader

	// Publish replaces the current catalog.
	Publish(catalog *domain.Catalog)
}

// CatalogLoader builds a catalog from its external source.
type CatalogLoader interface {
	// Load reads and normalises the mapping, page text and code tables.
	// Returns domain.ErrCatalogMalformed when the mapping table is unusable.
	Load(ctx context.Context) (*domain.Catalog, error)
}
