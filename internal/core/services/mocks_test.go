package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// stubLinks implements driven.LinkBuilder for testing.
type stubLinks struct{}

func (stubLinks) ManualLink(page int) string {
	return fmt.Sprintf("viewer#page=%d", page)
}

// countingCatalog implements driven.CatalogReader and counts reads.
type countingCatalog struct {
	catalog *domain.Catalog
	err     error
	reads   int
}

func (c *countingCatalog) Catalog() (*domain.Catalog, error) {
	c.reads++
	if c.err != nil {
		return nil, c.err
	}
	if c.catalog == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return c.catalog, nil
}

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	entries   []domain.HistoryEntry
	recordErr error
}

func (m *mockHistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	out := make([]domain.HistoryEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// failingReportStore implements driven.ReportStore and fails every call.
type failingReportStore struct{}

var errStoreDown = errors.New("store down")

func (failingReportStore) Add(_ context.Context, _ *domain.ReportItem) error { return errStoreDown }
func (failingReportStore) List(_ context.Context) ([]domain.ReportItem, error) {
	return nil, errStoreDown
}
func (failingReportStore) Delete(_ context.Context, _ string) error { return errStoreDown }
func (failingReportStore) Clear(_ context.Context) error            { return errStoreDown }

// testCatalog returns a small catalog covering the mapping, page text and code paths.
func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Entries: []domain.StructuredEntry{
			domain.NewStructuredEntry("seat rules", "6.14",
				"Seating capacity must not exceed manufacturer specification", "Seating", 12),
			domain.NewStructuredEntry("seating capacity", "6.20",
				"Seats must be anchored to the floor", "Interior", 14),
			domain.NewStructuredEntry("LS10 body lift", "8.1", "Body lifts up to 50mm", "Body", 30),
			domain.NewStructuredEntry("bullbar", "6.17", "Bullbar must not have sharp edges", "Body", 20),
		},
		Pages: []domain.ManualPage{
			{Page: 1, Text: "General\nTire pressure must be checked\nEnd"},
			{Page: 2, Text: "Refer s18 5.1 for replacement tires"},
			{Page: 3, Title: "Information Sheet 4", Text: "Tires and wheels guidance", Section: "IS4"},
			{Page: 4, Text: "Headlamp aim"},
			{Page: 30, Text: "LS10 appears here"},
		},
		Codes: domain.ModCodeTables{
			Light: map[string]string{"LS10": "Body lift", "LA1": "Equivalent engine"},
			Heavy: map[string]string{"A1": "Engine substitution"},
		},
	}
}
