package domain

import (
	"sort"
	"strings"
)

// DefaultCategory is used when a mapping row has no category.
const DefaultCategory = "Uncategorized"

// StructuredEntry maps a natural-language phrase to a manual citation.
// Entries are normalised once at load time and never mutated afterwards.
type StructuredEntry struct {
	// Phrase is free text describing a symptom or topic.
	Phrase string `json:"phrase"`

	// Section is the regulatory section identifier (e.g. "6.14").
	Section string `json:"section"`

	// Clause is the authoritative requirement text.
	Clause string `json:"clause"`

	// Category is the display grouping label.
	Category string `json:"category"`

	// Page is the manual page number, always >= 1.
	Page int `json:"page"`
}

// NewStructuredEntry builds an entry with trimmed fields and defaults applied.
// An empty category becomes DefaultCategory and a non-positive page becomes 1.
func NewStructuredEntry(phrase, section, clause, category string, page int) StructuredEntry {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	if page <= 0 {
		page = 1
	}
	return StructuredEntry{
		Phrase:   strings.TrimSpace(phrase),
		Section:  strings.TrimSpace(section),
		Clause:   strings.TrimSpace(clause),
		Category: category,
		Page:     page,
	}
}

// CitationKey identifies a citation regardless of the phrase that indexed it.
type CitationKey struct {
	Section string
	Clause  string
	Page    int
}

// Key returns the deduplication key for the entry.
func (e StructuredEntry) Key() CitationKey {
	return CitationKey{Section: e.Section, Clause: e.Clause, Page: e.Page}
}

// ScoredEntry is a StructuredEntry with the score it earned for one query.
type ScoredEntry struct {
	StructuredEntry
	Score int
}

// ManualPage is one page of extracted manual text.
type ManualPage struct {
	// Page is the manual page number.
	Page int `json:"page"`

	// Text is the raw extracted page text.
	Text string `json:"text"`

	// Title is an optional page title.
	Title string `json:"title,omitempty"`

	// Heading is an optional page heading, used when Title is empty.
	Heading string `json:"heading,omitempty"`

	// Section is an optional section label attached to the page.
	Section string `json:"section,omitempty"`
}

// DisplayTitle returns the title, falling back to the heading.
func (p ManualPage) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Heading
}

// Catalog is the read-only data set a search runs against.
// It is built once by a loader and swapped as a whole on reload.
type Catalog struct {
	// Entries is the structured mapping table in source order.
	Entries []StructuredEntry

	// Pages is the manual full text ordered by page number.
	Pages []ManualPage

	// Codes holds the light and heavy mod-code tables.
	Codes ModCodeTables
}

// SortPages orders pages by page number, keeping source order for equal pages.
func SortPages(pages []ManualPage) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Page < pages[j].Page
	})
}
