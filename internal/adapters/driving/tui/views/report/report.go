// Package report provides the inspection report view for the TUI.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// ErrNoReportService indicates that no report service was provided.
var ErrNoReportService = errors.New("report service not available")

// View lists the citations added to the inspection report.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	reportService driving.ReportService
	actionService driving.ResultActionService
	ctx           context.Context

	items    []domain.ReportItem
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
	message  string
}

// NewView creates a new report view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	reportService driving.ReportService,
	actionService driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:        s,
		keymap:        km,
		reportService: reportService,
		actionService: actionService,
		ctx:           context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the report.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.message = ""
	return v.loadItems()
}

func (v *View) loadItems() tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportLoaded{Err: ErrNoReportService}
		}
		items, err := v.reportService.List(v.ctx)
		return messages.ReportLoaded{Items: items, Err: err}
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReportLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.items = msg.Items
		if v.selected >= len(v.items) {
			v.selected = max(len(v.items)-1, 0)
		}
		return v, nil

	case messages.ReportItemRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.message = "Removed"
		return v, v.loadItems()

	case messages.ReportCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.message = "Report cleared"
		v.selected = 0
		return v, v.loadItems()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Delete):
		if item := v.SelectedItem(); item != nil {
			return v, v.removeItem(item.ID)
		}
	case keymap.Matches(keyStr, v.keymap.Clear):
		if len(v.items) > 0 {
			return v, v.clearItems()
		}
	case keymap.Matches(keyStr, v.keymap.Copy):
		v.copyReport()
	case keymap.Matches(keyStr, v.keymap.Open):
		v.openSelected()
	}

	return v, nil
}

func (v *View) removeItem(id string) tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportItemRemoved{ID: id, Err: ErrNoReportService}
		}
		return messages.ReportItemRemoved{ID: id, Err: v.reportService.Remove(v.ctx, id)}
	}
}

func (v *View) clearItems() tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportCleared{Err: ErrNoReportService}
		}
		return messages.ReportCleared{Err: v.reportService.Clear(v.ctx)}
	}
}

// copyReport copies the rendered report to the clipboard.
func (v *View) copyReport() {
	if v.actionService == nil || v.reportService == nil {
		v.message = "Copy not available"
		return
	}
	text, err := v.reportService.Render(v.ctx)
	if err == nil {
		err = v.actionService.CopyText(v.ctx, text)
	}
	if err != nil {
		v.message = "Copy: " + err.Error()
		return
	}
	v.message = fmt.Sprintf("Copied %d lines", len(v.items))
}

func (v *View) openSelected() {
	item := v.SelectedItem()
	if item == nil {
		return
	}
	if v.actionService == nil {
		v.message = "Open not available"
		return
	}
	card := &domain.ResultCard{Page: item.Page, LinkHref: item.Link}
	if err := v.actionService.OpenManual(v.ctx, card); err != nil {
		v.message = "Open: " + err.Error()
		return
	}
	v.message = fmt.Sprintf("Opening manual at page %d...", item.Page)
}

// View renders the report view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Report (%d)", len(v.items))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading report..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No citations yet. Press [a] on a search result to add one."))
	default:
		for i := range v.items {
			b.WriteString(v.renderItem(i, &v.items[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	if v.message != "" {
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[d] remove  [C] clear  [y] copy report  [o] open page  [esc] back"))

	return b.String()
}

func (v *View) renderItem(index int, item *domain.ReportItem) string {
	line := list.Truncate(item.Line(), max(v.width-4, 20))
	if index == v.selected {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the loaded report items.
func (v *View) Items() []domain.ReportItem {
	return v.items
}

// SelectedIndex returns the currently selected item index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedItem returns the selected item, or nil when the report is empty.
func (v *View) SelectedItem() *domain.ReportItem {
	if v.selected < 0 || v.selected >= len(v.items) {
		return nil
	}
	return &v.items[v.selected]
}

// Message returns the last action message.
func (v *View) Message() string {
	return v.message
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
