package mcp

import (
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs phrase searches and serves manual pages.
	Search driving.SearchService

	// Codes resolves mod codes.
	Codes driving.CodeService

	// Report manages the inspection report.
	Report driving.ReportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Codes and Report are optional; their tools fail when called without them.
	return nil
}
