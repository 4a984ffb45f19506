package mcp

import (
	"context"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	outcome domain.SearchOutcome
	page    *domain.ManualPage
	err     error
	queries []string
}

func (m *mockSearchService) Search(_ context.Context, query string) (domain.SearchOutcome, error) {
	m.queries = append(m.queries, query)
	out := m.outcome
	out.Query = query
	return out, m.err
}

func (m *mockSearchService) Page(_ context.Context, _ int) (*domain.ManualPage, error) {
	return m.page, m.err
}

// mockCodeService is a mock implementation of driving.CodeService.
type mockCodeService struct {
	codes []domain.ModCode
	err   error
}

func (m *mockCodeService) Lookup(_ context.Context, _ string) ([]domain.ModCode, error) {
	return m.codes, m.err
}

func (m *mockCodeService) List(_ context.Context, _ string) ([]domain.ModCode, error) {
	return m.codes, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	added    []domain.ResultCard
	notes    []string
	rendered string
	err      error
}

func (m *mockReportService) Add(_ context.Context, card domain.ResultCard, note string) (*domain.ReportItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.added = append(m.added, card)
	m.notes = append(m.notes, note)
	item := domain.NewReportItem(card, note)
	item.ID = "item-1"
	return &item, nil
}

func (m *mockReportService) List(_ context.Context) ([]domain.ReportItem, error) {
	return nil, m.err
}

func (m *mockReportService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockReportService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockReportService) Render(_ context.Context) (string, error) {
	return m.rendered, m.err
}

func matchedOutcome() domain.SearchOutcome {
	return domain.SearchOutcome{
		Status: domain.StatusMatched,
		Cards: []domain.ResultCard{
			{
				Category:    "Tyres",
				Clause:      "Tyres must have tread",
				Page:        42,
				LinkText:    "[s6.14]",
				LinkHref:    "viewer#page=42",
				DataSection: "6.14",
				Source:      domain.SourceMapping,
				Score:       241,
			},
			{
				Category:    "Glass",
				Clause:      "Windscreen free of cracks",
				Page:        17,
				LinkText:    "[s9.3]",
				DataSection: "9.3",
				Source:      domain.SourceMapping,
			},
		},
	}
}
