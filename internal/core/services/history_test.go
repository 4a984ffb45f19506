package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func TestHistoryService_Recent(t *testing.T) {
	store := &mockHistoryStore{}
	for i, q := range []string{"a", "b", "c"} {
		_ = store.Record(context.Background(), domain.HistoryEntry{
			Query:      q,
			SearchedAt: time.Unix(int64(i), 0),
		})
	}
	s := NewHistoryService(store)

	recent, err := s.Recent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Query)
	assert.Equal(t, "b", recent[1].Query)

	all, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoryService_NoStore(t *testing.T) {
	recent, err := NewHistoryService(nil).Recent(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, recent)
}
