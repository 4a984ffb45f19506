package domain

import (
	"fmt"
	"strings"
	"time"
)

// Labels used when a fallback hit is added to the report.
const (
	UnmappedCategory     = "Unmapped"
	UnmappedSection      = "Manual (text search)"
	UnmappedClause       = "—"
	manualName           = "QLVIM"
	complianceSeparator  = " – "
	complianceConnective = "ensure vehicle complies with"
)

// ReportItem is a citation the inspector added to the inspection report.
type ReportItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// Category is the display grouping label.
	Category string `json:"category"`

	// Section is the cited section without the "s" prefix, e.g. "6.14".
	Section string `json:"section"`

	// Clause is the requirement text.
	Clause string `json:"clause"`

	// Page is the manual page number.
	Page int `json:"page"`

	// Note is the optional inspector note.
	Note string `json:"note,omitempty"`

	// Link opens the manual viewer at Page.
	Link string `json:"link"`

	// AddedAt is when the item was added.
	AddedAt time.Time `json:"added_at"`
}

// Key returns the deduplication key for the item.
func (r ReportItem) Key() CitationKey {
	return CitationKey{Section: r.Section, Clause: r.Clause, Page: r.Page}
}

// NewReportItem converts a search card into a report item.
// Fallback cards are filed as unmapped manual references.
func NewReportItem(card ResultCard, note string) ReportItem {
	item := ReportItem{
		Category: card.Category,
		Section:  strings.TrimPrefix(card.DataSection, "s"),
		Clause:   card.Clause,
		Page:     card.Page,
		Note:     strings.TrimSpace(note),
		Link:     card.LinkHref,
	}
	if card.Source == SourceFallback {
		item.Category = UnmappedCategory
		item.Clause = UnmappedClause
		if card.DataSection != "" {
			item.Section = strings.TrimPrefix(card.DataSection, "s")
		} else {
			item.Section = UnmappedSection
		}
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	if item.Page <= 0 {
		item.Page = 1
	}
	return item
}

// SectionRef returns the bracketed citation, e.g. "[s6.14]".
func (r ReportItem) SectionRef() string {
	if r.Section == UnmappedSection {
		return "[" + r.Section + "]"
	}
	return "[s" + r.Section + "]"
}

// Line renders the item as one line of the inspection report.
func (r ReportItem) Line() string {
	var b strings.Builder
	b.WriteString(r.Category)
	b.WriteString(complianceSeparator)
	b.WriteString(r.Clause)
	b.WriteString(complianceSeparator)
	fmt.Fprintf(&b, "%s %s of %s.", complianceConnective, r.SectionRef(), manualName)
	if r.Note != "" {
		fmt.Fprintf(&b, " Note: %s", r.Note)
	}
	return b.String()
}
