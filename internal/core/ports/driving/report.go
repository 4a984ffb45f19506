package driving

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// ReportService manages the inspection report.
type ReportService interface {
	// Add files a search card into the report with an optional note.
	// Returns domain.ErrAlreadyExists if the citation is already in the report.
	Add(ctx context.Context, card domain.ResultCard, note string) (*domain.ReportItem, error)

	// List returns the report items in the order they were added.
	List(ctx context.Context) ([]domain.ReportItem, error)

	// Remove deletes an item by ID.
	Remove(ctx context.Context, id string) error

	// Clear empties the report.
	Clear(ctx context.Context) error

	// Render returns the report as plain text, one line per item.
	Render(ctx context.Context) (string, error)
}
