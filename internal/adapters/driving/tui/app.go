package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/views/codes"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView   *menu.View
	searchView *search.View
	reportView *report.View
	codesView  *codes.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s, ports.Report),
		searchView:  search.NewView(s, nil, ports.Search, ports.ResultAction, ports.Report),
		reportView:  report.NewView(s, nil, ports.Report, ports.ResultAction),
		codesView:   codes.NewView(s, ports.Codes),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.menuView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.reportView.WithContext(ctx)
	a.codesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("dart - QLVIM Search"),
		a.menuView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ReportItemAdded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ReportLoaded:
		a.menuView, _ = a.menuView.Update(msg)
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd

	case messages.ReportItemRemoved, messages.ReportCleared:
		// The search view drops its added marks; the report view reloads.
		a.searchView, _ = a.searchView.Update(msg)
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd

	case messages.CodesLoaded:
		a.codesView, cmd = a.codesView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewReport:
			return a, a.reportView.Init()
		case messages.ViewCodes:
			return a, a.codesView.Init()
		case messages.ViewMenu:
			return a, a.menuView.Init()
		case messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink and the like) to the active view
	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewCodes:
		a.codesView, cmd = a.codesView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEsc || key.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewReport:
		return a.reportView.View()
	case messages.ViewCodes:
		return a.codesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Search:
  (type)      Symptom, topic or mod codes (LS10, LA1)
  enter       Submit search

Results:
  j/k, ↑/↓    Navigate results
  enter       Actions
  a           Add to report
  y           Copy citation
  o           Open manual page
  n           New search

Report:
  d           Remove citation
  C           Clear report
  y           Copy report
  o           Open manual page

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Outcome returns the last search outcome.
func (a *App) Outcome() domain.SearchOutcome {
	return a.searchView.Outcome()
}

// Results returns the current result cards.
func (a *App) Results() []domain.ResultCard {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
	a.codesView.SetDimensions(width, height)
}
