package memory

import (
	"sync"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore holds the current catalog snapshot.
// Publish swaps the pointer; the catalog itself is never mutated.
type CatalogStore struct {
	mu      sync.RWMutex
	catalog *domain.Catalog
}

// NewCatalogStore creates an empty catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// Catalog returns the current snapshot or domain.ErrCatalogNotLoaded.
func (s *CatalogStore) Catalog() (*domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return s.catalog, nil
}

// Publish replaces the current snapshot. Publishing nil unloads the catalog.
func (s *CatalogStore) Publish(catalog *domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
}
