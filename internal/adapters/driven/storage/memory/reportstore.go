package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
// The report lives as long as the process.
type ReportStore struct {
	mu    sync.RWMutex
	items []domain.ReportItem
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Add appends an item. A second item for the same citation is rejected.
func (s *ReportStore) Add(_ context.Context, item *domain.ReportItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := item.Key()
	for _, existing := range s.items {
		if existing.Key() == key {
			return domain.ErrAlreadyExists
		}
	}
	s.items = append(s.items, *item)
	return nil
}

// List returns a copy of the items in insertion order.
func (s *ReportStore) List(_ context.Context) ([]domain.ReportItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ReportItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Delete removes an item by ID.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Clear removes every item.
func (s *ReportStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}
