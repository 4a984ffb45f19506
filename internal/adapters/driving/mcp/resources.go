package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for dart resources.
	uriScheme = "dart://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "The inspection report as plain text",
		MIMEType:    "text/plain",
	}, s.handleReportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{page}",
		Name:        "manual-page",
		Description: "Extracted text of one QLVIM manual page",
		MIMEType:    "text/plain",
	}, s.handlePageResource)
}

// handleReportResource returns the rendered inspection report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := ""
	if s.ports.Report != nil {
		rendered, err := s.ports.Report.Render(ctx)
		if err != nil {
			return nil, fmt.Errorf("rendering report: %w", err)
		}
		text = rendered
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// handlePageResource returns the text of one manual page.
func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page := extractPage(req.Params.URI)
	if page <= 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Search.Page(ctx, page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrCatalogNotLoaded) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting page %d: %w", page, err)
	}

	text := p.Text
	if title := p.DisplayTitle(); title != "" {
		text = title + "\n\n" + text
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// extractPage extracts the page number from a URI like dart://pages/{page}.
// Returns 0 when the URI is not a page URI.
func extractPage(uri string) int {
	const prefix = uriScheme + "pages/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	page, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return 0
	}
	return page
}
