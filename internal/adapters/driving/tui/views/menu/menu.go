// Package menu provides the start screen of the TUI.
package menu

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Item is one menu entry. Shortcut jumps to it without moving the cursor.
type Item struct {
	Label    string
	Hint     string
	Shortcut string
	View     messages.ViewType
	Quit     bool
}

// View is the start menu. It shows how many citations the inspection
// report holds so the inspector can see at a glance whether a report is
// already in progress.
type View struct {
	styles        *styles.Styles
	reportService driving.ReportService
	ctx           context.Context

	items       []Item
	selected    int
	reportCount int
	reportKnown bool
	width       int
	height      int
	ready       bool
}

// NewView creates the menu. reportService may be nil.
func NewView(s *styles.Styles, reportService driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		reportService: reportService,
		ctx:           context.Background(),
		items: []Item{
			{Label: "Search", Hint: "find the clause for a defect", Shortcut: "s", View: messages.ViewSearch},
			{Label: "Report", Hint: "citations added this session", Shortcut: "r", View: messages.ViewReport},
			{Label: "Mod codes", Hint: "browse light and heavy codes", Shortcut: "c", View: messages.ViewCodes},
			{Label: "Help", Shortcut: "?", View: messages.ViewHelp},
			{Label: "Quit", Shortcut: "q", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// WithContext sets the context used for report lookups.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init refreshes the report count.
func (v *View) Init() tea.Cmd {
	if v.reportService == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := v.reportService.List(v.ctx)
		return messages.ReportLoaded{Items: items, Err: err}
	}
}

// Update handles messages for the menu.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.ReportLoaded:
		if msg.Err == nil {
			v.reportCount = len(msg.Items)
			v.reportKnown = true
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case "enter":
			return v, v.choose(v.items[v.selected])
		default:
			for _, item := range v.items {
				if msg.String() == item.Shortcut {
					return v, v.choose(item)
				}
			}
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// hint returns the item's hint, with the live report count for Report.
func (v *View) hint(item Item) string {
	if item.View != messages.ViewReport || !v.reportKnown {
		return item.Hint
	}
	switch v.reportCount {
	case 0:
		return "no citations yet"
	case 1:
		return "1 citation in the report"
	default:
		return fmt.Sprintf("%d citations in the report", v.reportCount)
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("DART"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("QLVIM defect search"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor)
		b.WriteString(v.styles.Muted.Render("[" + item.Shortcut + "] "))
		b.WriteString(style.Render(item.Label))
		if h := v.hint(item); h != "" {
			b.WriteString("  " + v.styles.Muted.Render(h))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [s/r/c] Jump  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}

// ReportCount returns the last known report size and whether it is known.
func (v *View) ReportCount() (int, bool) {
	return v.reportCount, v.reportKnown
}
