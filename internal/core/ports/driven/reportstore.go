package driven

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// ReportStore persists the inspection report.
// Backed by SQLite for session persistence, or memory for a single process.
type ReportStore interface {
	// Add stores a new item. Items keep insertion order. An item whose
	// citation key is already stored yields domain.ErrAlreadyExists.
	Add(ctx context.Context, item *domain.ReportItem) error

	// List returns all items in insertion order.
	List(ctx context.Context) ([]domain.ReportItem, error)

	// Delete removes an item by ID.
	// Returns domain.ErrNotFound if no item has that ID.
	Delete(ctx context.Context, id string) error

	// Clear removes every item.
	Clear(ctx context.Context) error
}

// HistoryStore persists the search history.
type HistoryStore interface {
	// Record appends a history entry.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
