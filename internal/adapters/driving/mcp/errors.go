// Package mcp provides an MCP (Model Context Protocol) server adapter for dart.
// It lets AI assistants search the QLVIM mapping, resolve mod codes and
// build the inspection report.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCodeService is returned by lookup_codes when no code service is wired.
var ErrMissingCodeService = errors.New("mcp: code service is not available")

// ErrMissingReportService is returned by add_to_report when no report service is wired.
var ErrMissingReportService = errors.New("mcp: report service is not available")

// ErrResultOutOfRange is returned when add_to_report names a result that does not exist.
var ErrResultOutOfRange = errors.New("mcp: result index out of range")
