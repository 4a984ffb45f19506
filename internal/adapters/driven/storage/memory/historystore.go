package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// MaxHistoryEntries is how many searches the in-memory history keeps.
const MaxHistoryEntries = 500

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Once full, recording a search drops the oldest one.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	limit   int
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{limit: MaxHistoryEntries}
}

// Record appends a history entry.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.entries) >= s.limit {
		// Shift in place so the backing array stays bounded.
		n := copy(s.entries, s.entries[len(s.entries)-s.limit+1:])
		s.entries = s.entries[:n]
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.HistoryEntry, 0, min(limit, len(s.entries)))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
