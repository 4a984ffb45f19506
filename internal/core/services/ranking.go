package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// Ranker deduplicates, orders and truncates scored entries.
type Ranker struct {
	maxResults int
}

// NewRanker creates a ranker returning at most maxResults entries.
// A non-positive maxResults falls back to domain.DefaultMaxResults.
func NewRanker(maxResults int) *Ranker {
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	return &Ranker{maxResults: maxResults}
}

// Rank returns the best entries for q. An empty input yields an empty result,
// which is what triggers the fallback search.
func (r *Ranker) Rank(scored []domain.ScoredEntry, q Query) []domain.ScoredEntry {
	ranked := Dedupe(scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j], q)
	})

	if len(ranked) > r.maxResults {
		ranked = ranked[:r.maxResults]
	}
	return ranked
}

// Dedupe keeps the highest-scoring entry per (section, clause, page).
// The first entry wins ties and each key keeps its first position.
func Dedupe(scored []domain.ScoredEntry) []domain.ScoredEntry {
	index := make(map[domain.CitationKey]int, len(scored))
	out := make([]domain.ScoredEntry, 0, len(scored))
	for _, e := range scored {
		key := e.Key()
		if i, ok := index[key]; ok {
			if e.Score > out[i].Score {
				out[i] = e
			}
			continue
		}
		index[key] = len(out)
		out = append(out, e)
	}
	return out
}

// rankLess orders by: phrase-only last, clause contains the query first,
// words in order first, score descending, shorter phrase, then section.
func rankLess(a, b domain.ScoredEntry, q Query) bool {
	if aPO, bPO := q.PhraseOnly(a.StructuredEntry), q.PhraseOnly(b.StructuredEntry); aPO != bPO {
		return bPO
	}

	if aHit, bHit := q.ClauseMatches(a.Clause), q.ClauseMatches(b.Clause); aHit != bHit {
		return aHit
	}

	aClause, bClause := strings.ToLower(a.Clause), strings.ToLower(b.Clause)
	if aOrd, bOrd := q.WordsInOrder(aClause), q.WordsInOrder(bClause); aOrd != bOrd {
		return aOrd
	}

	if a.Score != b.Score {
		return a.Score > b.Score
	}

	if aLen, bLen := utf8.RuneCountInString(a.Phrase), utf8.RuneCountInString(b.Phrase); aLen != bLen {
		return aLen < bLen
	}

	return a.Section < b.Section
}
