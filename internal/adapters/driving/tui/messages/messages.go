// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// SearchCompleted carries the search outcome back to the model.
type SearchCompleted struct {
	Outcome domain.SearchOutcome
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewReport is the inspection report view.
	ViewReport
	// ViewCodes is the mod-code browser.
	ViewCodes
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewReport:
		return "report"
	case ViewCodes:
		return "codes"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportLoaded carries the inspection report items.
type ReportLoaded struct {
	Items []domain.ReportItem
	Err   error
}

// ReportItemAdded signals a search card was filed into the report.
type ReportItemAdded struct {
	Card *domain.ResultCard
	Item *domain.ReportItem
	Err  error
}

// ReportItemRemoved signals a report item was removed.
type ReportItemRemoved struct {
	ID  string
	Err error
}

// ReportCleared signals the report was emptied.
type ReportCleared struct {
	Err error
}

// CodesLoaded carries the filtered mod-code table.
type CodesLoaded struct {
	Filter string
	Codes  []domain.ModCode
	Err    error
}
