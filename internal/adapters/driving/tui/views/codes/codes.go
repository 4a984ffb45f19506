// Package codes provides the mod-code browser view for the TUI.
package codes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// ErrNoCodeService indicates that no code service was provided.
var ErrNoCodeService = errors.New("code service not available")

// View browses the light and heavy mod-code tables with a fuzzy filter.
type View struct {
	styles      *styles.Styles
	codeService driving.CodeService
	ctx         context.Context
	filter      *input.QueryInput

	codes        []domain.ModCode
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new codes view.
func NewView(s *styles.Styles, codeService driving.CodeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	filter := input.NewQueryInput(s)
	filter.SetLabel("Filter", "Code or title (e.g. LS, towbar)...")
	return &View{
		styles:      s,
		codeService: codeService,
		ctx:         context.Background(),
		filter:      filter,
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the filter and loads the full table.
func (v *View) Init() tea.Cmd {
	v.filter.SetValue("")
	v.selected = 0
	v.scrollOffset = 0
	return tea.Batch(v.filter.Focus(), v.load(""))
}

func (v *View) load(filter string) tea.Cmd {
	return func() tea.Msg {
		if v.codeService == nil {
			return messages.CodesLoaded{Filter: filter, Err: ErrNoCodeService}
		}
		codes, err := v.codeService.List(v.ctx, filter)
		return messages.CodesLoaded{Filter: filter, Codes: codes, Err: err}
	}
}

// Update handles messages for the codes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CodesLoaded:
		// Drop answers to filters the user has already typed past.
		if msg.Filter != v.filter.Value() {
			return v, nil
		}
		v.err = msg.Err
		v.codes = msg.Codes
		v.selected = 0
		v.scrollOffset = 0
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only navigation keys are intercepted
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case tea.KeyUp:
		v.moveUp()
		return v, nil
	case tea.KeyDown:
		v.moveDown()
		return v, nil
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if after := v.filter.Value(); after != before {
		return v, tea.Batch(cmd, v.load(after))
	}
	return v, cmd
}

func (v *View) moveUp() {
	if v.selected > 0 {
		v.selected--
	}
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
}

func (v *View) moveDown() {
	if v.selected < len(v.codes)-1 {
		v.selected++
	}
	if visible := v.visibleRows(); v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleRows() int {
	return max(v.height-10, 1)
}

// View renders the codes view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Mod codes"))
	b.WriteString("\n\n")
	b.WriteString(v.filter.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.codes) == 0:
		b.WriteString(v.styles.Muted.Render("No matching codes."))
	default:
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%d codes", len(v.codes))))
		b.WriteString("\n")
		end := min(v.scrollOffset+v.visibleRows(), len(v.codes))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString("\n")
			b.WriteString(v.renderCode(i, v.codes[i]))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[type] filter  [↑/↓] navigate  [esc] back"))
	return b.String()
}

func (v *View) renderCode(index int, code domain.ModCode) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	title := list.Truncate(code.Title, max(v.width-20, 10))
	return indicator +
		v.styles.CodeStyle(code.Class).Render(fmt.Sprintf("%-6s", code.Code)) + " " +
		v.styles.Normal.Render(title) + " " +
		v.styles.Muted.Render(code.Class.String())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filter.SetWidth(width)
}

// Codes returns the codes currently shown.
func (v *View) Codes() []domain.ModCode {
	return v.codes
}

// Filter returns the current filter text.
func (v *View) Filter() string {
	return v.filter.Value()
}

// SelectedIndex returns the selected row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
