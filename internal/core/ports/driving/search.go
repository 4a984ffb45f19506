package driving

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// SearchService provides manual search to external actors.
type SearchService interface {
	// Search classifies the query and runs the code lookup or the phrase
	// search. User-visible conditions (empty query, catalog not loaded,
	// no match) are reported through the outcome status, not as errors.
	Search(ctx context.Context, query string) (domain.SearchOutcome, error)

	// Page returns one page of manual text.
	// Returns domain.ErrNotFound if the page does not exist.
	Page(ctx context.Context, page int) (*domain.ManualPage, error)
}

// CodeService looks up vehicle modification codes.
type CodeService interface {
	// Lookup resolves each comma or space separated code in query order.
	Lookup(ctx context.Context, codes string) ([]domain.ModCode, error)

	// List returns the merged code table sorted by code.
	// A non-empty filter keeps codes whose code or title fuzzily matches it,
	// best match first.
	List(ctx context.Context, filter string) ([]domain.ModCode, error)
}

// HistoryService exposes the search history.
type HistoryService interface {
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
