package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func newRecordingActions() (*ResultActionService, *[]string, *[]string) {
	var copied, opened []string
	s := NewResultActionService(stubLinks{})
	s.copy = func(text string) error { copied = append(copied, text); return nil }
	s.open = func(url string) error { opened = append(opened, url); return nil }
	return s, &copied, &opened
}

func TestResultActionService_CopyCitation(t *testing.T) {
	s, copied, _ := newRecordingActions()
	card := mappingCard()

	require.NoError(t, s.CopyCitation(context.Background(), &card))

	require.Len(t, *copied, 1)
	assert.Equal(t,
		"Body – Bullbar must not have sharp edges – ensure vehicle complies with [s6.17] of QLVIM.",
		(*copied)[0])
}

func TestResultActionService_OpenManual(t *testing.T) {
	s, _, opened := newRecordingActions()
	ctx := context.Background()

	card := mappingCard()
	require.NoError(t, s.OpenManual(ctx, &card))
	require.NoError(t, s.OpenManual(ctx, &domain.ResultCard{Page: 7}))

	assert.Equal(t, []string{"viewer#page=20", "viewer#page=7"}, *opened)
}

func TestResultActionService_NilCard(t *testing.T) {
	s, _, _ := newRecordingActions()

	assert.Error(t, s.CopyCitation(context.Background(), nil))
	assert.Error(t, s.OpenManual(context.Background(), nil))
}

func TestResultActionService_CopyText(t *testing.T) {
	s, copied, _ := newRecordingActions()

	require.NoError(t, s.CopyText(context.Background(), "line one\nline two"))
	assert.Error(t, s.CopyText(context.Background(), ""))

	assert.Equal(t, []string{"line one\nline two"}, *copied)
}
