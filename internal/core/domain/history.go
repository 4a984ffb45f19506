package domain

import "time"

// HistoryEntry records one search for the session history.
type HistoryEntry struct {
	// Query is the trimmed query as typed.
	Query string `json:"query"`

	// Status is the terminal state of the search.
	Status SearchStatus `json:"status"`

	// ResultCount is the number of cards or codes returned.
	ResultCount int `json:"result_count"`

	// SearchedAt is when the search ran.
	SearchedAt time.Time `json:"searched_at"`
}
