package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func newTestSearchService(catalog *domain.Catalog) *SearchService {
	store := memory.NewCatalogStore()
	if catalog != nil {
		store.Publish(catalog)
	}
	return NewSearchService(store, stubLinks{}, domain.DefaultAppSettings().Search)
}

func TestSearchService_EmptyQuery(t *testing.T) {
	catalog := &countingCatalog{catalog: testCatalog()}
	s := NewSearchService(catalog, stubLinks{}, domain.DefaultAppSettings().Search)

	outcome, err := s.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmptyQuery, outcome.Status)
	assert.Equal(t, "Type something to search.", outcome.Message())
	assert.Empty(t, outcome.Cards)
	assert.Zero(t, catalog.reads, "empty query must not touch the catalog")
}

func TestSearchService_NotLoaded(t *testing.T) {
	s := newTestSearchService(nil)

	outcome, err := s.Search(context.Background(), "bullbar")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotLoaded, outcome.Status)
	assert.Equal(t, "Mapping not loaded.", outcome.Message())
}

func TestSearchService_EmptyMappingIsNotLoaded(t *testing.T) {
	catalog := testCatalog()
	catalog.Entries = nil
	s := newTestSearchService(catalog)

	outcome, err := s.Search(context.Background(), "tyre")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotLoaded, outcome.Status)
}

func TestSearchService_CatalogError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSearchService(&countingCatalog{err: boom}, stubLinks{}, domain.DefaultAppSettings().Search)

	_, err := s.Search(context.Background(), "bullbar")

	assert.ErrorIs(t, err, boom)
}

func TestSearchService_ClausePriority(t *testing.T) {
	s := newTestSearchService(testCatalog())

	outcome, err := s.Search(context.Background(), "seating capacity")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusMatched, outcome.Status)
	require.NotEmpty(t, outcome.Cards)

	first := outcome.Cards[0]
	assert.Equal(t, "Seating capacity must not exceed manufacturer specification", first.Clause)
	assert.Equal(t, "[s6.14]", first.LinkText)
	assert.Equal(t, "6.14", first.DataSection)
	assert.Equal(t, "viewer#page=12", first.LinkHref)
	assert.Equal(t, domain.SourceMapping, first.Source)
	assert.Equal(t, "Top 1 results", outcome.Message())
}

func TestSearchService_ExactClauseRanksFirst(t *testing.T) {
	catalog := testCatalog()
	catalog.Entries = append(catalog.Entries,
		domain.NewStructuredEntry("brake", "7.1", "lights must work", "brake", 40),
		domain.NewStructuredEntry("x", "7.2", "brake", "y", 41),
	)
	s := newTestSearchService(catalog)

	outcome, err := s.Search(context.Background(), "Brake")

	require.NoError(t, err)
	require.NotEmpty(t, outcome.Cards)
	assert.Equal(t, "7.2", outcome.Cards[0].DataSection)
}

func TestSearchService_FallbackWithSynonyms(t *testing.T) {
	s := newTestSearchService(testCatalog())

	outcome, err := s.Search(context.Background(), "tyre")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFallback, outcome.Status)
	require.Len(t, outcome.Cards, 3)
	for _, c := range outcome.Cards {
		assert.Equal(t, domain.SourceFallback, c.Source)
	}
	assert.Equal(t, `3 manual pages mention "tyre"`, outcome.Message())
}

func TestSearchService_NoMatch(t *testing.T) {
	s := newTestSearchService(testCatalog())

	outcome, err := s.Search(context.Background(), "zzzznonexistentphrase")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoMatch, outcome.Status)
	assert.Empty(t, outcome.Cards)
	assert.Equal(t, `No results found for "zzzznonexistentphrase". Try a different term.`, outcome.Message())
}

func TestSearchService_CodeShortCircuit(t *testing.T) {
	s := newTestSearchService(testCatalog())

	outcome, err := s.Search(context.Background(), "LS10")

	require.NoError(t, err)
	assert.Equal(t, domain.QueryCodeLookup, outcome.Kind)
	assert.Equal(t, domain.StatusCodes, outcome.Status)
	assert.Empty(t, outcome.Cards, "phrase search must not run for code lists")
	require.Len(t, outcome.Codes, 1)
	assert.Equal(t, domain.ModCode{Code: "LS10", Title: "Body lift", Class: domain.CodeClassLight}, outcome.Codes[0])
}

func TestSearchService_CodeBatch(t *testing.T) {
	s := newTestSearchService(testCatalog())

	outcome, err := s.Search(context.Background(), "ls10, a1 ZZ9")

	require.NoError(t, err)
	require.Len(t, outcome.Codes, 3)
	assert.Equal(t, domain.CodeClassLight, outcome.Codes[0].Class)
	assert.Equal(t, domain.CodeClassHeavy, outcome.Codes[1].Class)
	assert.Equal(t, "Engine substitution", outcome.Codes[1].Title)
	assert.Equal(t, domain.CodeClassUnknown, outcome.Codes[2].Class)
}

func TestSearchService_Idempotent(t *testing.T) {
	s := newTestSearchService(testCatalog())
	ctx := context.Background()

	for _, q := range []string{"seating capacity", "tyre", "LS10", "bullbar", "nothing here"} {
		first, err := s.Search(ctx, q)
		require.NoError(t, err)
		second, err := s.Search(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, first, second, q)
	}
}

func TestSearchService_ResultInvariants(t *testing.T) {
	catalog := testCatalog()
	for i := 0; i < 6; i++ {
		catalog.Entries = append(catalog.Entries,
			domain.NewStructuredEntry("body", "8.2", "Body must be secured", "Body", 31+i%2),
			domain.NewStructuredEntry("body panel", "8.3", "Panels on the body", "Body", 33),
		)
	}
	s := newTestSearchService(catalog)

	for _, q := range []string{"body", "body lift", "seating capacity", "bullbar"} {
		outcome, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		require.Equal(t, domain.StatusMatched, outcome.Status, q)

		assert.LessOrEqual(t, len(outcome.Cards), 3, q)
		seen := map[domain.CitationKey]bool{}
		for _, c := range outcome.Cards {
			key := domain.CitationKey{Section: c.DataSection, Clause: c.Clause, Page: c.Page}
			assert.False(t, seen[key], "duplicate citation for %q", q)
			seen[key] = true
		}
	}
}

func TestSearchService_MaxResultsSetting(t *testing.T) {
	store := memory.NewCatalogStore()
	catalog := testCatalog()
	for i := 0; i < 6; i++ {
		catalog.Entries = append(catalog.Entries,
			domain.NewStructuredEntry("winch", "9.1", "winch rule", "Body", 50+i))
	}
	store.Publish(catalog)

	settings := domain.DefaultAppSettings().Search
	settings.MaxResults = 5
	s := NewSearchService(store, stubLinks{}, settings)

	outcome, err := s.Search(context.Background(), "winch")

	require.NoError(t, err)
	assert.Len(t, outcome.Cards, 5)
}

func TestSearchService_RecordsHistory(t *testing.T) {
	s := newTestSearchService(testCatalog())
	history := &mockHistoryStore{}
	s.SetHistoryStore(history)
	ctx := context.Background()

	_, _ = s.Search(ctx, "")
	_, _ = s.Search(ctx, " bullbar ")
	_, _ = s.Search(ctx, "LS10, LA1")

	require.Len(t, history.entries, 2)
	assert.Equal(t, "bullbar", history.entries[0].Query)
	assert.Equal(t, domain.StatusMatched, history.entries[0].Status)
	assert.Equal(t, 1, history.entries[0].ResultCount)
	assert.Equal(t, domain.StatusCodes, history.entries[1].Status)
	assert.Equal(t, 2, history.entries[1].ResultCount)
	assert.False(t, history.entries[0].SearchedAt.IsZero())
}

func TestSearchService_HistoryFailureDoesNotFailSearch(t *testing.T) {
	s := newTestSearchService(testCatalog())
	s.SetHistoryStore(&mockHistoryStore{recordErr: errors.New("disk full")})

	outcome, err := s.Search(context.Background(), "bullbar")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusMatched, outcome.Status)
}

func TestSearchService_CancelledContext(t *testing.T) {
	s := newTestSearchService(testCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "bullbar")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchService_Page(t *testing.T) {
	s := newTestSearchService(testCatalog())
	ctx := context.Background()

	page, err := s.Page(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Refer s18 5.1 for replacement tires", page.Text)

	_, err = s.Page(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchService_SynonymSettings(t *testing.T) {
	settings := domain.DefaultAppSettings().Search
	settings.Synonyms = map[string][]string{"lamp": {"headlamp"}}
	store := memory.NewCatalogStore()
	store.Publish(testCatalog())
	s := NewSearchService(store, stubLinks{}, settings)

	outcome, err := s.Search(context.Background(), "lamp")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFallback, outcome.Status)
	require.Len(t, outcome.Cards, 1)
	assert.Equal(t, 4, outcome.Cards[0].Page)
}
