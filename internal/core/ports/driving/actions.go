package driving

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// CopyCitation copies the card's compliance line to the system clipboard.
	CopyCitation(ctx context.Context, card *domain.ResultCard) error

	// CopyText copies arbitrary text, such as a rendered report, to the clipboard.
	CopyText(ctx context.Context, text string) error

	// OpenManual opens the manual viewer at the card's page.
	OpenManual(ctx context.Context, card *domain.ResultCard) error
}
