package domain

import "fmt"

// QueryKind classifies a raw query before any matching runs.
type QueryKind int

const (
	// QueryEmpty is a blank query.
	QueryEmpty QueryKind = iota

	// QueryCodeLookup is a list of mod codes such as "LS10, LA1".
	QueryCodeLookup

	// QueryPhrase is anything else and goes through the phrase search.
	QueryPhrase
)

// String returns the string representation of the kind.
func (k QueryKind) String() string {
	switch k {
	case QueryEmpty:
		return "empty"
	case QueryCodeLookup:
		return "code_lookup"
	case QueryPhrase:
		return "phrase"
	default:
		return unknownDescription
	}
}

const unknownDescription = "unknown"

// ResultSource records which search path produced a card.
type ResultSource string

// Available result sources.
const (
	// SourceMapping is a hit from the structured mapping table.
	SourceMapping ResultSource = "mapping"

	// SourceFallback is a hit from the manual full-text fallback.
	SourceFallback ResultSource = "fallback"
)

// ResultCard is the payload a front end needs to render one hit.
type ResultCard struct {
	// Category is the display grouping label.
	Category string `json:"category"`

	// Clause is the requirement text, or a snippet for fallback hits.
	Clause string `json:"clause"`

	// Page is the manual page number.
	Page int `json:"page"`

	// LinkText is the label for the manual link, e.g. "[s6.14]".
	LinkText string `json:"link_text"`

	// LinkHref opens the manual viewer at Page.
	LinkHref string `json:"link_href"`

	// DataSection is the section carried into the inspection report.
	DataSection string `json:"data_section"`

	// Source records which search path produced the card.
	Source ResultSource `json:"source"`

	// Score is the ranking score for mapping hits, zero for fallback hits.
	Score int `json:"score,omitempty"`
}

// SearchStatus is the terminal state of one search.
type SearchStatus string

// Available search statuses.
const (
	// StatusEmptyQuery means the trimmed query was blank.
	StatusEmptyQuery SearchStatus = "empty_query"

	// StatusNotLoaded means the mapping table was not available.
	StatusNotLoaded SearchStatus = "not_loaded"

	// StatusCodes means the query was handled as a mod-code lookup.
	StatusCodes SearchStatus = "codes"

	// StatusMatched means the structured table produced results.
	StatusMatched SearchStatus = "matched"

	// StatusFallback means only the full-text fallback produced results.
	StatusFallback SearchStatus = "fallback"

	// StatusNoMatch means neither path found anything.
	StatusNoMatch SearchStatus = "no_match"
)

// HasResults returns true if the status carries cards or codes.
func (s SearchStatus) HasResults() bool {
	return s == StatusCodes || s == StatusMatched || s == StatusFallback
}

// SearchOutcome is everything a front end needs to render one search.
type SearchOutcome struct {
	// Query is the trimmed query as typed.
	Query string `json:"query"`

	// Kind is how the query was classified.
	Kind QueryKind `json:"-"`

	// Status is the terminal state of the search.
	Status SearchStatus `json:"status"`

	// Cards holds phrase search hits, in rank order.
	Cards []ResultCard `json:"cards,omitempty"`

	// Codes holds mod-code lookups, in query order.
	Codes []ModCode `json:"codes,omitempty"`
}

// Message returns the placeholder text for statuses without results.
func (o SearchOutcome) Message() string {
	switch o.Status {
	case StatusEmptyQuery:
		return "Type something to search."
	case StatusNotLoaded:
		return "Mapping not loaded."
	case StatusNoMatch:
		return fmt.Sprintf("No results found for %q. Try a different term.", o.Query)
	case StatusMatched:
		return fmt.Sprintf("Top %d results", len(o.Cards))
	case StatusFallback:
		return fmt.Sprintf("%d manual pages mention %q", len(o.Cards), o.Query)
	case StatusCodes:
		return fmt.Sprintf("%d mod codes", len(o.Codes))
	default:
		return ""
	}
}
