package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Search:       &MockSearchService{},
		Codes:        &MockCodeService{},
		Report:       &MockReportService{},
		ResultAction: &MockResultActionService{},
	}
}

func sampleOutcome() domain.SearchOutcome {
	return domain.SearchOutcome{
		Query:  "tread",
		Status: domain.StatusMatched,
		Cards: []domain.ResultCard{
			{Category: "Tyres", Clause: "Tread depth below 1.5 mm", Page: 42, LinkText: "[s6.14]", DataSection: "s6.14"},
			{Category: "Tyres", Clause: "Tyre has cuts exposing cords", Page: 43, LinkText: "[s6.15]", DataSection: "s6.15"},
		},
	}
}

// goToView navigates the app from the menu to v.
func goToView(app *App, v messages.ViewType) tea.Cmd {
	app.SetDimensions(80, 24)
	_, cmd := app.Update(messages.ViewChanged{View: v})
	return cmd
}

// runCmd executes cmd and feeds the resulting messages back into the app,
// unpacking batches the way the tea runtime does.
func runCmd(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(app, c)
		}
		return
	}
	if msg != nil {
		app.Update(msg)
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Report: &MockReportService{}})

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Menu(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	assert.Contains(t, app.View(), "QLVIM defect search")
}

func TestApp_TypingInSearchView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	goToView(app, messages.ViewSearch)

	for _, r := range "tread" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "tread", app.Query())
}

func TestApp_SearchRoundTrip(t *testing.T) {
	var got string
	ports := newTestPorts()
	ports.Search = &MockSearchService{SearchFunc: func(_ context.Context, q string) (domain.SearchOutcome, error) {
		got = q
		return sampleOutcome(), nil
	}}
	app, _ := NewApp(ports)
	goToView(app, messages.ViewSearch)
	for _, r := range "tread" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, "tread", got)
	assert.Len(t, app.Results(), 2)
	assert.Equal(t, domain.StatusMatched, app.Outcome().Status)
	assert.Contains(t, app.View(), "[s6.14]")
}

func TestApp_Update_SearchCompleted_WithError(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(messages.SearchCompleted{Err: errors.New("search failed")})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.Error(t, app.Err())
}

func TestApp_Update_SearchCompleted_NavigateResults(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	goToView(app, messages.ViewSearch)
	app.Update(messages.SearchCompleted{Outcome: sampleOutcome()})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, app.SelectedIndex())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, app.SelectedIndex())
}

func TestApp_AddToReportThenViewReport(t *testing.T) {
	report := &MockReportService{}
	ports := newTestPorts()
	ports.Report = report
	app, _ := NewApp(ports)
	goToView(app, messages.ViewSearch)
	app.Update(messages.SearchCompleted{Outcome: sampleOutcome()})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)
	app.Update(cmd())
	require.Len(t, report.Items, 1)

	load := goToView(app, messages.ViewReport)
	require.NotNil(t, load)
	app.Update(load())

	assert.Equal(t, messages.ViewReport, app.CurrentView())
	assert.Contains(t, app.View(), "Report (1)")
	assert.Contains(t, app.View(), "[s6.14]")
}

func TestApp_CodesView(t *testing.T) {
	ports := newTestPorts()
	ports.Codes = &MockCodeService{Codes: []domain.ModCode{
		{Code: "LS10", Title: "Suspension lift", Class: domain.CodeClassLight},
	}}
	app, _ := NewApp(ports)
	goToView(app, messages.ViewCodes)

	runCmd(app, app.codesView.Init())

	assert.Equal(t, messages.ViewCodes, app.CurrentView())
	assert.Contains(t, app.View(), "Suspension lift")
}

func TestApp_CodesView_WithoutService(t *testing.T) {
	ports := newTestPorts()
	ports.Codes = nil
	app, _ := NewApp(ports)
	goToView(app, messages.ViewCodes)

	app.Update(messages.CodesLoaded{Err: errors.New("code service not available")})

	assert.Contains(t, app.View(), "code service not available")
}

func TestApp_HelpView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	goToView(app, messages.ViewHelp)

	assert.Contains(t, app.View(), "Add to report")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Escape_InSearchView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	goToView(app, messages.ViewSearch)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_MenuEnter_SwitchesView(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewReport, app.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	goToView(app, messages.ViewSearch)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}

func TestApp_Update_KeyMsg_CtrlC(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
}

func TestApp_MenuShowsReportCount(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	app.Update(messages.ReportLoaded{Items: []domain.ReportItem{{ID: "a"}, {ID: "b"}}})

	assert.Contains(t, app.View(), "2 citations in the report")
}

func TestApp_BackToMenuRefreshesCount(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := goToView(app, messages.ViewMenu)

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.ReportLoaded)
	assert.True(t, ok)
}
