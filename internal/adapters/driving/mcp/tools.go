package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"symptom, topic or comma separated mod codes to look up in the QLVIM"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Results []domain.ResultCard `json:"results,omitempty"`
	Codes   []domain.ModCode    `json:"codes,omitempty"`
	Count   int                 `json:"count"`
}

// LookupCodesInput is the input schema for the lookup_codes tool.
type LookupCodesInput struct {
	Codes string `json:"codes" jsonschema:"comma or space separated mod codes, e.g. LS10, LA1"`
}

// LookupCodesOutput is the output schema for the lookup_codes tool.
type LookupCodesOutput struct {
	Codes []domain.ModCode `json:"codes"`
	Count int              `json:"count"`
}

// AddToReportInput is the input schema for the add_to_report tool.
type AddToReportInput struct {
	Query  string `json:"query" jsonschema:"the query whose results to pick from"`
	Result int    `json:"result" jsonschema:"1-based position of the result to add"`
	Note   string `json:"note,omitempty" jsonschema:"optional inspector note"`
}

// AddToReportOutput is the output schema for the add_to_report tool.
type AddToReportOutput struct {
	ID   string `json:"id"`
	Line string `json:"line"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find QLVIM sections for a vehicle defect or look up mod codes",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_codes",
		Description: "Resolve vehicle modification codes against the light and heavy tables",
	}, s.handleLookupCodes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_to_report",
		Description: "Add one search result to the inspection report",
	}, s.handleAddToReport)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	outcome, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Status:  string(outcome.Status),
		Message: outcome.Message(),
		Results: outcome.Cards,
		Codes:   outcome.Codes,
		Count:   len(outcome.Cards) + len(outcome.Codes),
	}
	return nil, output, nil
}

// handleLookupCodes handles the lookup_codes tool invocation.
func (s *Server) handleLookupCodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupCodesInput,
) (*mcp.CallToolResult, LookupCodesOutput, error) {
	if s.ports.Codes == nil {
		return nil, LookupCodesOutput{}, ErrMissingCodeService
	}

	codes, err := s.ports.Codes.Lookup(ctx, input.Codes)
	if err != nil {
		return nil, LookupCodesOutput{}, err
	}
	if codes == nil {
		codes = []domain.ModCode{}
	}
	return nil, LookupCodesOutput{Codes: codes, Count: len(codes)}, nil
}

// handleAddToReport re-runs the query and files the chosen result.
func (s *Server) handleAddToReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddToReportInput,
) (*mcp.CallToolResult, AddToReportOutput, error) {
	if s.ports.Report == nil {
		return nil, AddToReportOutput{}, ErrMissingReportService
	}

	outcome, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, AddToReportOutput{}, err
	}
	if input.Result < 1 || input.Result > len(outcome.Cards) {
		return nil, AddToReportOutput{}, fmt.Errorf("%w: %d of %d", ErrResultOutOfRange, input.Result, len(outcome.Cards))
	}

	item, err := s.ports.Report.Add(ctx, outcome.Cards[input.Result-1], input.Note)
	if err != nil {
		return nil, AddToReportOutput{}, err
	}
	return nil, AddToReportOutput{ID: item.ID, Line: item.Line()}, nil
}
