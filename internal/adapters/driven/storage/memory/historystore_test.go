package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func TestHistoryStore_Recent(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	for _, q := range []string{"one", "two", "three"} {
		require.NoError(t, store.Record(ctx, domain.HistoryEntry{Query: q}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Query)
	assert.Equal(t, "two", recent[1].Query)

	all, _ := store.Recent(ctx, 10)
	assert.Len(t, all, 3)
}

func TestHistoryStore_DropsOldestWhenFull(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	for i := range MaxHistoryEntries + 10 {
		require.NoError(t, store.Record(ctx, domain.HistoryEntry{Query: fmt.Sprintf("q%d", i)}))
	}

	all, err := store.Recent(ctx, MaxHistoryEntries*2)
	require.NoError(t, err)
	require.Len(t, all, MaxHistoryEntries)
	assert.Equal(t, fmt.Sprintf("q%d", MaxHistoryEntries+9), all[0].Query)
	assert.Equal(t, "q10", all[len(all)-1].Query)
	assert.LessOrEqual(t, cap(store.entries), MaxHistoryEntries*2)
}
