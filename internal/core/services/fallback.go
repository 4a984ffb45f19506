package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// Fallback snippet window, in bytes around the hit.
const (
	snippetBefore = 60
	snippetAfter  = 160
)

// InfoSheetCategory is the category of manual information sheet pages.
const InfoSheetCategory = "Information Sheets"

var (
	infoSheetPattern  = regexp.MustCompile(`(?i)information sheet`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FallbackSearcher scans manual page text when the mapping table has no hit.
type FallbackSearcher struct {
	expander *TermExpander
	links    driven.LinkBuilder
}

// NewFallbackSearcher creates a fallback searcher.
func NewFallbackSearcher(expander *TermExpander, links driven.LinkBuilder) *FallbackSearcher {
	return &FallbackSearcher{expander: expander, links: links}
}

// Search returns one card per page mentioning any expanded term, in page order.
// The result is never truncated.
func (f *FallbackSearcher) Search(raw string, pages []domain.ManualPage) []domain.ResultCard {
	terms := f.expander.Expand(raw)
	if len(terms) == 0 {
		return nil
	}

	var cards []domain.ResultCard
	for i := range pages {
		page := &pages[i]
		if !containsAny(strings.ToLower(page.Text), terms) {
			continue
		}
		cards = append(cards, f.card(page, terms))
	}
	return cards
}

func (f *FallbackSearcher) card(page *domain.ManualPage, terms []string) domain.ResultCard {
	ref := ExtractSectionRef(page.Text)
	card := domain.ResultCard{
		Category: domain.DefaultCategory,
		Clause:   Snippet(page.Text, terms),
		Page:     page.Page,
		LinkHref: f.links.ManualLink(page.Page),
		Source:   domain.SourceFallback,
	}

	switch {
	case IsInfoSheet(page):
		title := page.DisplayTitle()
		if title == "" {
			title = "Information Sheet"
		}
		card.Category = InfoSheetCategory
		card.LinkText = fmt.Sprintf("[%s (p.%d)]", title, page.Page)
		card.DataSection = page.Section
	case ref != "":
		card.LinkText = "[" + ref + "]"
		card.DataSection = ref
	default:
		card.LinkText = fmt.Sprintf("[open manual page %d]", page.Page)
	}
	return card
}

// IsInfoSheet reports whether the page title, heading or text names an information sheet.
func IsInfoSheet(page *domain.ManualPage) bool {
	return infoSheetPattern.MatchString(page.DisplayTitle() + " " + page.Text)
}

// Snippet returns a readable excerpt around the first term found in text.
// When the hit sits on a line with a newline on both sides the whole line is
// returned; otherwise a window around the hit with whitespace collapsed.
// Without a hit the start of the text is returned.
func Snippet(text string, terms []string) string {
	idx, end := -1, -1
	for _, t := range terms {
		if idx, end = indexLower(text, t); idx >= 0 {
			break
		}
	}
	if idx < 0 {
		return strings.TrimSpace(text[:runeFloor(text, min(len(text), snippetAfter))])
	}

	before := strings.LastIndex(text[:idx], "\n")
	after := strings.Index(text[end:], "\n")
	if before >= 0 && after >= 0 {
		return strings.TrimSpace(text[before+1 : end+after])
	}

	start := runeCeil(text, max(0, idx-snippetBefore))
	stop := runeFloor(text, min(len(text), end+snippetAfter))
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text[start:stop], " "))
}

// indexLower returns the byte span of the first occurrence of term in text,
// comparing rune by rune after lowercasing both, or -1, -1. Offsets refer to
// text itself even where lowercasing would change its byte length.
func indexLower(text, term string) (int, int) {
	if term == "" {
		return -1, -1
	}
	for i := 0; i < len(text); {
		if end, ok := matchLowerAt(text, i, term); ok {
			return i, end
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

func matchLowerAt(text string, i int, term string) (int, bool) {
	for _, want := range term {
		if i >= len(text) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.ToLower(r) != unicode.ToLower(want) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// runeFloor moves i back to the start of the rune containing it.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves i forward to the next rune start.
func runeCeil(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
