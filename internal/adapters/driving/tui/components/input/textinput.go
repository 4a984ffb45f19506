// Package input provides the query box used by the search and codes views.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
)

// MaxRecall is how many submitted queries the box remembers.
const MaxRecall = 50

const (
	defaultLabel       = "Search: "
	defaultPlaceholder = "Symptom, topic or mod codes (e.g. LS10, LA1)..."
	minFieldWidth      = 20
)

// QueryInput is a labelled text box that remembers submitted queries.
// Up and down step through earlier queries shell-style; the text being
// typed is restored when stepping past the newest one.
type QueryInput struct {
	field  textinput.Model
	styles *styles.Styles
	label  string
	width  int

	recall []string
	// cursor indexes recall while browsing; len(recall) means "not browsing".
	cursor int
	draft  string
}

// NewQueryInput creates a focused query box.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &QueryInput{field: ti, styles: s, label: defaultLabel, width: 50}
}

// Init starts the cursor blink.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles recall keys and forwards everything else to the text field.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && q.field.Focused() && len(q.recall) > 0 {
		//nolint:exhaustive // only recall keys
		switch k.Type {
		case tea.KeyUp:
			q.step(-1)
			return q, nil
		case tea.KeyDown:
			q.step(1)
			return q, nil
		}
	}

	var cmd tea.Cmd
	q.field, cmd = q.field.Update(msg)
	return q, cmd
}

func (q *QueryInput) step(delta int) {
	if q.cursor == len(q.recall) {
		q.draft = q.field.Value()
	}
	next := q.cursor + delta
	if next < 0 || next > len(q.recall) {
		return
	}
	q.cursor = next
	if q.cursor == len(q.recall) {
		q.field.SetValue(q.draft)
	} else {
		q.field.SetValue(q.recall[q.cursor])
	}
	q.field.CursorEnd()
}

// Remember records a submitted query. Repeating the newest query is a no-op.
func (q *QueryInput) Remember(query string) {
	if query == "" {
		return
	}
	if n := len(q.recall); n == 0 || q.recall[n-1] != query {
		q.recall = append(q.recall, query)
		if len(q.recall) > MaxRecall {
			q.recall = q.recall[len(q.recall)-MaxRecall:]
		}
	}
	q.cursor = len(q.recall)
	q.draft = ""
}

// Recall returns the remembered queries, oldest first.
func (q *QueryInput) Recall() []string {
	return append([]string(nil), q.recall...)
}

// View renders the label and the field side by side.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label)
	field := q.styles.InputField.Render(q.field.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetLabel replaces the label and placeholder.
func (q *QueryInput) SetLabel(label, placeholder string) {
	q.label = label
	q.field.Placeholder = placeholder
}

// Value returns the text in the field.
func (q *QueryInput) Value() string {
	return q.field.Value()
}

// SetValue replaces the text in the field and stops browsing recall.
func (q *QueryInput) SetValue(value string) {
	q.field.SetValue(value)
	q.cursor = len(q.recall)
}

// Focus focuses the field.
func (q *QueryInput) Focus() tea.Cmd {
	return q.field.Focus()
}

// Blur unfocuses the field.
func (q *QueryInput) Blur() {
	q.field.Blur()
}

// Focused reports whether the field has focus.
func (q *QueryInput) Focused() bool {
	return q.field.Focused()
}

// SetWidth sizes the field to width minus room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.field.Width = max(width-lipgloss.Width(q.label)-2, minFieldWidth)
}

// Width returns the width last set.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the field. Remembered queries are kept.
func (q *QueryInput) Reset() {
	q.field.Reset()
	q.cursor = len(q.recall)
	q.draft = ""
}
