package list

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func mappingCards() []domain.ResultCard {
	return []domain.ResultCard{
		{Category: "Tyres", Clause: "Tyres must have adequate tread", Page: 42, LinkText: "[s6.14]", DataSection: "6.14", Source: domain.SourceMapping},
		{Category: "Glass", Clause: "Windscreen free of cracks", Page: 17, LinkText: "[s9.3]", DataSection: "9.3", Source: domain.SourceMapping},
	}
}

func fallbackCards() []domain.ResultCard {
	return []domain.ResultCard{
		{Category: "Information Sheets", Clause: "seat belt\n  anchorages", Page: 30, LinkText: "[Information Sheet (p.30)]", Source: domain.SourceFallback},
	}
}

func TestNewResultList(t *testing.T) {
	l := NewResultList(styles.DefaultStyles())

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Selected())
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedResult())
	assert.Equal(t, defaultEmpty, l.View())
}

func TestNewResultList_NilStyles(t *testing.T) {
	assert.NotNil(t, NewResultList(nil).styles)
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(mappingCards())
	l.MoveDown()

	l.SetResults(fallbackCards())

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
	assert.Equal(t, 30, l.SelectedResult().Page)
}

func TestResultList_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"j", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'j'}}}, 1},
		{"down past end", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}}, 1},
		{"up at top", []tea.KeyMsg{{Type: tea.KeyUp}}, 0},
		{"down then k", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyRunes, Runes: []rune{'k'}}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewResultList(nil)
			l.SetResults(mappingCards())
			for _, k := range tt.keys {
				l.Update(k)
			}
			assert.Equal(t, tt.want, l.Selected())
		})
	}
}

func TestResultList_UpdateIgnoresOtherMessages(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(mappingCards())

	updated, cmd := l.Update(tea.WindowSizeMsg{Width: 10})

	assert.Same(t, l, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, l.Selected())
}

func TestResultList_SetSelected(t *testing.T) {
	l := NewResultList(nil)
	l.SetResults(mappingCards())

	l.SetSelected(1)
	assert.Equal(t, 1, l.Selected())

	l.SetSelected(5)
	l.SetSelected(-1)
	assert.Equal(t, 1, l.Selected())
}

func TestResultList_View_Citations(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetResults(mappingCards())

	out := l.View()

	assert.Contains(t, out, "Citations (2)")
	assert.Contains(t, out, "> [s6.14]")
	assert.Contains(t, out, "p.42")
	assert.Contains(t, out, "Windscreen free of cracks")
}

func TestResultList_View_ManualPages(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetResults(fallbackCards())

	out := l.View()

	assert.Contains(t, out, "Manual pages (1)")
	assert.Contains(t, out, "seat belt anchorages")
}

func TestResultList_View_Window(t *testing.T) {
	cards := make([]domain.ResultCard, 6)
	for i := range cards {
		cards[i] = domain.ResultCard{LinkText: fmt.Sprintf("[p%d]", i), Page: i + 1, Clause: "text", Source: domain.SourceFallback}
	}
	l := NewResultList(nil)
	l.SetDimensions(80, 10) // two cards fit
	l.SetResults(cards)

	out := l.View()
	assert.Contains(t, out, "[p0]")
	assert.Contains(t, out, "[p1]")
	assert.NotContains(t, out, "[p2]")
	assert.Contains(t, out, "... 4 more")

	l.SetSelected(3)
	out = l.View()
	assert.Contains(t, out, "> [p3]")
	assert.NotContains(t, out, "[p1]")
	assert.Contains(t, out, "... 2 more")
}

func TestResultList_View_EmptyText(t *testing.T) {
	l := NewResultList(nil)

	l.SetEmptyText(`No results found for "x". Try a different term.`)
	assert.Contains(t, l.View(), "Try a different term")

	l.SetEmptyText("")
	assert.Equal(t, defaultEmpty, l.View())
}

func TestResultList_View_LongClause(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(40, 20)
	l.SetResults([]domain.ResultCard{{LinkText: "[s1.1]", Clause: strings.Repeat("word ", 40), Page: 1}})

	assert.Contains(t, l.View(), "...")
}

func TestResultList_MarkAdded(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetResults(mappingCards())
	cards := l.Results()

	l.MarkAdded(&cards[1])
	l.MarkAdded(nil)

	assert.False(t, l.IsAdded(&cards[0]))
	assert.True(t, l.IsAdded(&cards[1]))
	assert.Contains(t, l.View(), addedMark+"[s9.3]")

	// A new search showing the same citation keeps the mark.
	again := mappingCards()[1:]
	l.SetResults(again)
	assert.True(t, l.IsAdded(&again[0]))

	l.ClearAdded()
	assert.False(t, l.IsAdded(&again[0]))
}

func TestResultList_Dimensions(t *testing.T) {
	l := NewResultList(nil)

	l.SetDimensions(120, 30)

	assert.Equal(t, 120, l.Width())
	assert.Equal(t, 30, l.Height())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"tyre – wheel", 8, "tyre ..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), tt.in)
	}
}
