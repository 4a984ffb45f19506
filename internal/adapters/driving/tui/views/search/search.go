// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Action menu entries.
const (
	actionAdd    = "Add to report"
	actionCopy   = "Copy citation"
	actionOpen   = "Open manual page"
	actionCancel = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	result   *domain.ResultCard
}

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	actionService driving.ResultActionService
	reportService driving.ReportService
	ctx           context.Context

	outcome    domain.SearchOutcome
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	actionMenu *ActionMenu
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
	reportService driving.ReportService,
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
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		actionService: actionService,
		reportService: reportService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ReportItemAdded:
		v.handleReportItemAdded(msg)
		return v, nil

	case messages.ReportItemRemoved:
		if msg.Err == nil {
			v.list.ClearAdded()
		}
		return v, nil

	case messages.ReportCleared:
		if msg.Err == nil {
			v.list.ClearAdded()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.input.Remember(query)
		v.statusbar.SetSearching()
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	// Input mode: all keys go to input
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if msg.Type == tea.KeyEnter {
		if result := v.list.SelectedResult(); result != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{actionAdd, actionCopy, actionOpen, actionCancel},
				visible: true,
				result:  result,
			}
		}
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.AddToReport):
		return v.executeAction(actionAdd, v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.Copy):
		return v.executeAction(actionCopy, v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.Open):
		return v.executeAction(actionOpen, v.list.SelectedResult())
	}

	return v, nil
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
		return v, nil
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
		return v, nil
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		result := v.actionMenu.result
		v.actionMenu = nil
		return v.executeAction(action, result)
	case "esc":
		v.actionMenu = nil
		return v, nil
	}
	return v, nil
}

// executeAction performs the selected action on a result card.
func (v *View) executeAction(action string, result *domain.ResultCard) (*View, tea.Cmd) {
	if result == nil {
		return v, nil
	}

	switch action {
	case actionAdd:
		return v, v.addToReport(*result)
	case actionCopy:
		if v.actionService == nil {
			v.statusbar.SetMessage("Copy not available")
			return v, nil
		}
		if err := v.actionService.CopyCitation(v.ctx, result); err != nil {
			v.statusbar.SetMessage("Copy: " + err.Error())
		} else {
			v.statusbar.SetMessage("Copied " + result.LinkText)
		}
	case actionOpen:
		if v.actionService == nil {
			v.statusbar.SetMessage("Open not available")
			return v, nil
		}
		if err := v.actionService.OpenManual(v.ctx, result); err != nil {
			v.statusbar.SetMessage("Open: " + err.Error())
		} else {
			v.statusbar.SetMessage(fmt.Sprintf("Opening manual at page %d...", result.Page))
		}
	case actionCancel:
		// Menu is already closed
	}

	return v, nil
}

// addToReport files the card through the report service.
func (v *View) addToReport(card domain.ResultCard) tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportItemAdded{Card: &card, Err: ErrNoReportService}
		}
		item, err := v.reportService.Add(v.ctx, card, "")
		return messages.ReportItemAdded{Card: &card, Item: item, Err: err}
	}
}

// performSearch executes a search and returns the outcome.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		outcome, err := v.searchService.Search(v.ctx, query)
		return messages.SearchCompleted{Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted processes a search outcome.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return
	}

	v.err = nil
	v.outcome = msg.Outcome
	v.list.SetResults(msg.Outcome.Cards)
	v.list.SetEmptyText(msg.Outcome.Message())
	v.statusbar.SetOutcome(msg.Outcome)

	v.focusInput = false
	v.input.Blur()
}

func (v *View) handleReportItemAdded(msg messages.ReportItemAdded) {
	switch {
	case errors.Is(msg.Err, domain.ErrAlreadyExists):
		v.list.MarkAdded(msg.Card)
		v.statusbar.SetMessage("Already in report")
	case msg.Err != nil:
		v.statusbar.SetMessage("Add: " + msg.Err.Error())
	case msg.Item != nil:
		v.list.MarkAdded(msg.Card)
		v.statusbar.SetMessage("Added " + msg.Item.SectionRef() + " to report")
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	sections = append(sections, v.styles.Title.Render("DART"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.outcome.Status == domain.StatusCodes {
		sections = append(sections, v.renderCodes())
	} else {
		sections = append(sections, v.list.View())
	}

	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCodes renders a mod-code lookup in query order.
func (v *View) renderCodes() string {
	lines := make([]string, 0, len(v.outcome.Codes)+2)
	lines = append(lines, v.styles.Subtitle.Render(v.outcome.Message()), "")
	for _, c := range v.outcome.Codes {
		title := c.Title
		if title == "" {
			title = c.Class.Description()
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			v.styles.CodeStyle(c.Class).Render(fmt.Sprintf("%-5s", c.Code)),
			v.styles.Normal.Render(title),
			v.styles.Muted.Render("("+c.Class.String()+")"),
		))
	}
	return strings.Join(lines, "\n")
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	if v.actionMenu == nil {
		return ""
	}

	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the view width.
func (v *View) Width() int {
	return v.width
}

// Height returns the view height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Outcome returns the last search outcome.
func (v *View) Outcome() domain.SearchOutcome {
	return v.outcome
}

// Results returns the current result cards.
func (v *View) Results() []domain.ResultCard {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.ResultCard {
	return v.list.SelectedResult()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.list.SetEmptyText("")
	v.outcome = domain.SearchOutcome{}
	v.actionMenu = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// ActionMenuVisible returns whether the action menu is open.
func (v *View) ActionMenuVisible() bool {
	return v.actionMenu != nil && v.actionMenu.visible
}
