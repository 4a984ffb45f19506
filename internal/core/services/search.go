package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService classifies queries and dispatches them to the code lookup
// or the phrase search over the current catalog snapshot.
type SearchService struct {
	catalog  driven.CatalogReader
	links    driven.LinkBuilder
	history  driven.HistoryStore
	expander *TermExpander
	matcher  *Matcher
	ranker   *Ranker
	fallback *FallbackSearcher
	minToken int
	now      func() time.Time
}

// NewSearchService creates a new search service.
func NewSearchService(
	catalog driven.CatalogReader,
	links driven.LinkBuilder,
	settings domain.SearchSettings,
) *SearchService {
	expander := NewTermExpander(settings.Synonyms)
	return &SearchService{
		catalog:  catalog,
		links:    links,
		expander: expander,
		matcher:  NewMatcher(settings.Weights),
		ranker:   NewRanker(settings.MaxResults),
		fallback: NewFallbackSearcher(expander, links),
		minToken: settings.Weights.MinTokenLength,
		now:      time.Now,
	}
}

// SetHistoryStore enables search history recording.
func (s *SearchService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// Search runs one search. The outcome depends only on the query and the
// catalog snapshot.
func (s *SearchService) Search(ctx context.Context, query string) (domain.SearchOutcome, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)
	defer logger.Since("Search", time.Now())

	query = strings.TrimSpace(query)
	outcome := domain.SearchOutcome{Query: query, Kind: ClassifyQuery(query)}
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	if outcome.Kind == domain.QueryEmpty {
		logger.Debug("Empty query")
		outcome.Status = domain.StatusEmptyQuery
		return outcome, nil
	}

	catalog, err := s.catalog.Catalog()
	switch {
	case errors.Is(err, domain.ErrCatalogNotLoaded):
		logger.Warn("Search before catalog load")
		outcome.Status = domain.StatusNotLoaded
		return outcome, nil
	case err != nil:
		return outcome, fmt.Errorf("reading catalog: %w", err)
	case len(catalog.Entries) == 0:
		logger.Warn("Mapping table is empty")
		outcome.Status = domain.StatusNotLoaded
		return outcome, nil
	}

	logger.Info("Query kind: %s", outcome.Kind)
	if outcome.Kind == domain.QueryCodeLookup {
		outcome.Codes = lookupCodes(catalog.Codes, query)
		outcome.Status = domain.StatusCodes
	} else {
		s.searchPhrase(catalog, &outcome)
	}

	s.record(ctx, outcome)
	return outcome, nil
}

// searchPhrase runs the structured match and falls back to page text.
func (s *SearchService) searchPhrase(catalog *domain.Catalog, outcome *domain.SearchOutcome) {
	q := ParseQuery(outcome.Query, s.minToken)
	logger.Debug("Normalised query: %q, tokens: %v", q.Normalised, q.Tokens)

	scored := s.matcher.ScoreAll(catalog.Entries, q)
	ranked := s.ranker.Rank(scored, q)
	logger.Debug("Structured: %d scored, %d ranked", len(scored), len(ranked))

	if len(ranked) > 0 {
		outcome.Cards = make([]domain.ResultCard, len(ranked))
		for i, e := range ranked {
			outcome.Cards[i] = s.mappingCard(e)
		}
		outcome.Status = domain.StatusMatched
		return
	}

	logger.Debug("Fallback terms: %v", s.expander.Expand(outcome.Query))
	outcome.Cards = s.fallback.Search(outcome.Query, catalog.Pages)
	logger.Debug("Fallback: %d pages", len(outcome.Cards))
	if len(outcome.Cards) > 0 {
		outcome.Status = domain.StatusFallback
	} else {
		outcome.Status = domain.StatusNoMatch
	}
}

func (s *SearchService) mappingCard(e domain.ScoredEntry) domain.ResultCard {
	return domain.ResultCard{
		Category:    e.Category,
		Clause:      e.Clause,
		Page:        e.Page,
		LinkText:    "[s" + e.Section + "]",
		LinkHref:    s.links.ManualLink(e.Page),
		DataSection: e.Section,
		Source:      domain.SourceMapping,
		Score:       e.Score,
	}
}

// record appends the search to history. Failures are logged, not returned.
func (s *SearchService) record(ctx context.Context, outcome domain.SearchOutcome) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		Query:       outcome.Query,
		Status:      outcome.Status,
		ResultCount: len(outcome.Cards) + len(outcome.Codes),
		SearchedAt:  s.now().UTC(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record search history: %v", err)
	}
}

// Page returns one page of manual text.
func (s *SearchService) Page(_ context.Context, page int) (*domain.ManualPage, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, err
	}
	pages := catalog.Pages
	i := sort.Search(len(pages), func(i int) bool { return pages[i].Page >= page })
	if i == len(pages) || pages[i].Page != page {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrNotFound)
	}
	p := pages[i]
	return &p, nil
}
