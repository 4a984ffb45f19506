// Package tui provides an interactive terminal user interface for dart.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs defect searches and code lookups.
	Search driving.SearchService

	// Codes browses the mod-code tables.
	Codes driving.CodeService

	// Report manages the inspection report.
	Report driving.ReportService

	// ResultAction copies citations and opens the manual.
	ResultAction driving.ResultActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	codes driving.CodeService,
	report driving.ReportService,
	resultAction driving.ResultActionService,
) *Ports {
	return &Ports{
		Search:       search,
		Codes:        codes,
		Report:       report,
		ResultAction: resultAction,
	}
}

// Validate ensures all required ports are set.
// Codes and ResultAction are optional; their views degrade to a message.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Report == nil {
		return ErrMissingReportService
	}
	return nil
}
