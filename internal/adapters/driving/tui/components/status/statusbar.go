// Package status renders the one-line summary under the search view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// Bar shows what the last search produced, or a transient message, on the
// left and the key hints that apply on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	outcome    domain.SearchOutcome
	hasOutcome bool
	searching  bool
	err        error
	message    string
	width      int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80}
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left := s.summary()
	right := s.hints()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) summary() string {
	switch {
	case s.searching:
		return s.styles.Muted.Render("Searching...")
	case s.err != nil:
		return s.styles.Error.Render("Error: " + s.message)
	case s.message != "":
		return s.styles.Normal.Render(s.message)
	case !s.hasOutcome:
		return s.styles.Muted.Render("Ready")
	}

	o := s.outcome
	var label string
	switch o.Status {
	case domain.StatusMatched:
		label = countLabel(len(o.Cards), "citation")
	case domain.StatusFallback:
		label = countLabel(len(o.Cards), "manual page") + " (text search)"
	case domain.StatusCodes:
		label = countLabel(len(o.Codes), "mod code")
	case domain.StatusNotLoaded:
		label = "Mapping not loaded"
	case domain.StatusNoMatch:
		label = "No match"
	default:
		label = "Ready"
	}
	return s.styles.StatusStyle(o.Status).Render(label)
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// hints lists result actions only when there are cards to act on.
func (s *Bar) hints() string {
	var bindings []key.Binding
	if s.hasOutcome && len(s.outcome.Cards) > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetOutcome records a finished search and clears any message or error.
func (s *Bar) SetOutcome(o domain.SearchOutcome) {
	s.outcome = o
	s.hasOutcome = true
	s.searching = false
	s.err = nil
	s.message = ""
}

// Outcome returns the last recorded outcome and whether there is one.
func (s *Bar) Outcome() (domain.SearchOutcome, bool) {
	return s.outcome, s.hasOutcome
}

// SetSearching marks a search in flight.
func (s *Bar) SetSearching() {
	s.searching = true
	s.err = nil
	s.message = ""
}

// Searching reports whether a search is in flight.
func (s *Bar) Searching() bool {
	return s.searching
}

// SetError shows err until the next outcome or message.
func (s *Bar) SetError(err error) {
	s.searching = false
	s.err = err
	s.message = ""
	if err != nil {
		s.message = err.Error()
	}
}

// Err returns the error being shown.
func (s *Bar) Err() error {
	return s.err
}

// SetMessage shows a transient message such as an action result.
func (s *Bar) SetMessage(message string) {
	s.err = nil
	s.message = message
}

// Message returns the message being shown.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the bar width.
func (s *Bar) Width() int {
	return s.width
}

// Clear forgets the outcome, message and error.
func (s *Bar) Clear() {
	*s = Bar{styles: s.styles, keymap: s.keymap, width: s.width}
}
