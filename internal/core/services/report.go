package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ErrNoReportStore is returned when no report store is configured.
var ErrNoReportStore = errors.New("report store not configured")

// ReportService manages the inspection report.
type ReportService struct {
	store driven.ReportStore
	now   func() time.Time
}

// NewReportService creates a new report service. The store may be nil, in
// which case every operation returns ErrNoReportStore.
func NewReportService(store driven.ReportStore) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// Add files a card into the report.
func (s *ReportService) Add(ctx context.Context, card domain.ResultCard, note string) (*domain.ReportItem, error) {
	if s.store == nil {
		return nil, ErrNoReportStore
	}

	item := domain.NewReportItem(card, note)
	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	for _, e := range existing {
		if e.Key() == item.Key() {
			return nil, fmt.Errorf("%s: %w", item.SectionRef(), domain.ErrAlreadyExists)
		}
	}

	item.ID = uuid.New().String()
	item.AddedAt = s.now().UTC()
	// The store enforces uniqueness too; a concurrent add of the same
	// citation can pass the check above.
	if err := s.store.Add(ctx, &item); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", item.SectionRef(), domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("saving report item: %w", err)
	}
	logger.Debug("Added %s page %d to report", item.SectionRef(), item.Page)
	return &item, nil
}

// List returns the report items in the order they were added.
func (s *ReportService) List(ctx context.Context) ([]domain.ReportItem, error) {
	if s.store == nil {
		return nil, ErrNoReportStore
	}
	return s.store.List(ctx)
}

// Remove deletes an item by ID.
func (s *ReportService) Remove(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoReportStore
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("report item id: %w", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

// Clear empties the report.
func (s *ReportService) Clear(ctx context.Context) error {
	if s.store == nil {
		return ErrNoReportStore
	}
	return s.store.Clear(ctx)
}

// Render returns the report as plain text, one line per item.
func (s *ReportService) Render(ctx context.Context) (string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Line())
		b.WriteByte('\n')
	}
	return b.String(), nil
}
