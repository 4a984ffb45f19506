package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoReportService indicates that no report service was provided.
	ErrNoReportService = errors.New("report service is not available")
)
