// Package list renders search result cards for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

const (
	defaultEmpty = "No results"
	addedMark    = "✓ "
	// cardRows is the height of one rendered card including its spacer.
	cardRows = 3
)

// ResultList is a navigable list of result cards. Cards already filed in
// the inspection report carry a check mark.
type ResultList struct {
	cards    []domain.ResultCard
	added    map[domain.CitationKey]bool
	selected int
	styles   *styles.Styles
	width    int
	height   int
	empty    string
}

// NewResultList creates an empty list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{
		added:  make(map[domain.CitationKey]bool),
		styles: s,
		width:  80,
		height: 10,
		empty:  defaultEmpty,
	}
}

// Update moves the selection on arrow and j/k keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch k.String() {
	case "up", "k":
		r.MoveUp()
	case "down", "j":
		r.MoveDown()
	}
	return r, nil
}

// View renders the header and the window of cards around the selection.
func (r *ResultList) View() string {
	if len(r.cards) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	lines := []string{r.styles.Subtitle.Render(r.header()), ""}

	visible := max((r.height-4)/cardRows, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.cards))
	for i := start; i < end; i++ {
		lines = append(lines, r.renderCard(i, &r.cards[i]))
	}
	if end < len(r.cards) {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(r.cards)-end)))
	}
	return strings.Join(lines, "\n")
}

// header names what the cards are: citations from the table or manual pages.
func (r *ResultList) header() string {
	if r.cards[0].Source == domain.SourceFallback {
		return fmt.Sprintf("Manual pages (%d)", len(r.cards))
	}
	return fmt.Sprintf("Citations (%d)", len(r.cards))
}

func (r *ResultList) renderCard(index int, card *domain.ResultCard) string {
	marker := "  "
	if index == r.selected {
		marker = "> "
	}
	if r.IsAdded(card) {
		marker += addedMark
	}

	page := fmt.Sprintf("p.%d", card.Page)
	category := Truncate(card.Category, max(r.width-len(card.LinkText)-len(page)-12, 10))

	var head string
	if index == r.selected {
		head = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s  %s", marker, card.LinkText, category, page))
	} else {
		head = r.styles.Normal.Render(marker) +
			r.styles.Citation.Render(card.LinkText) + "  " +
			r.styles.Category.Render(category) + "  " +
			r.styles.Muted.Render(page)
	}

	body := Truncate(strings.Join(strings.Fields(card.Clause), " "), max(r.width-6, 20))
	return head + "\n" + r.styles.SourceStyle(card.Source).Render("    "+body) + "\n"
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the cards and selects the first one.
func (r *ResultList) SetResults(cards []domain.ResultCard) {
	r.cards = cards
	r.selected = 0
}

// SetEmptyText sets the placeholder shown when there are no cards.
func (r *ResultList) SetEmptyText(text string) {
	if text == "" {
		text = defaultEmpty
	}
	r.empty = text
}

// MarkAdded records that the citation behind card is in the report.
func (r *ResultList) MarkAdded(card *domain.ResultCard) {
	if card != nil {
		r.added[cardKey(card)] = true
	}
}

// IsAdded reports whether card was marked as added.
func (r *ResultList) IsAdded(card *domain.ResultCard) bool {
	return card != nil && r.added[cardKey(card)]
}

// ClearAdded forgets every mark.
func (r *ResultList) ClearAdded() {
	clear(r.added)
}

// cardKey matches the report's duplicate check so marks agree with it.
func cardKey(card *domain.ResultCard) domain.CitationKey {
	return domain.NewReportItem(*card, "").Key()
}

// Results returns the cards.
func (r *ResultList) Results() []domain.ResultCard {
	return r.cards
}

// Selected returns the selected index.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected selects index when it is in range.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.cards) {
		r.selected = index
	}
}

// SelectedResult returns the selected card, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.ResultCard {
	if r.selected < 0 || r.selected >= len(r.cards) {
		return nil
	}
	return &r.cards[r.selected]
}

// MoveUp moves the selection up one card.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down one card.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.cards)-1 {
		r.selected++
	}
}

// SetDimensions sets the space the list may use.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of cards.
func (r *ResultList) Count() int {
	return len(r.cards)
}

// IsEmpty reports whether there are no cards.
func (r *ResultList) IsEmpty() bool {
	return len(r.cards) == 0
}
