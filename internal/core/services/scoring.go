package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// Query is a phrase query prepared once for scoring and ranking.
type Query struct {
	// Text is the trimmed, lowercased query.
	Text string

	// Normalised is Text with internal whitespace collapsed to single spaces.
	Normalised string

	// Tokens are the whitespace-separated words of Text long enough to score.
	Tokens []string

	// Words are the words of Normalised.
	Words []string

	// inOrder matches the words in order on word boundaries.
	// Nil for single-word queries.
	inOrder *regexp.Regexp
}

// ParseQuery prepares raw for matching. Tokens shorter than minTokenLength
// runes are left out of token scoring.
func ParseQuery(raw string, minTokenLength int) Query {
	text := strings.ToLower(strings.TrimSpace(raw))
	words := strings.Fields(text)

	q := Query{
		Text:       text,
		Normalised: strings.Join(words, " "),
		Words:      words,
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minTokenLength {
			q.Tokens = append(q.Tokens, w)
		}
	}
	if len(words) >= 2 {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = `\b` + regexp.QuoteMeta(w) + `\b`
		}
		q.inOrder = regexp.MustCompile(`(?i)` + strings.Join(quoted, ".*"))
	}
	return q
}

// WordsInOrder reports whether all query words appear in s in order.
// Always false for single-word queries.
func (q Query) WordsInOrder(s string) bool {
	return q.inOrder != nil && q.inOrder.MatchString(s)
}

// ClauseMatches reports whether clause contains the normalised query.
func (q Query) ClauseMatches(clause string) bool {
	return strings.Contains(strings.ToLower(clause), q.Normalised)
}

// PhraseOnly reports whether the phrase contains the normalised query
// while the clause does not.
func (q Query) PhraseOnly(e domain.StructuredEntry) bool {
	return strings.Contains(strings.ToLower(e.Phrase), q.Normalised) && !q.ClauseMatches(e.Clause)
}

// Matcher scores structured entries against a query.
type Matcher struct {
	weights domain.ScoringWeights
}

// NewMatcher creates a matcher with the given weights.
func NewMatcher(weights domain.ScoringWeights) *Matcher {
	return &Matcher{weights: weights}
}

// Score returns the additive relevance score of one entry.
// Clause hits carry ClauseOverride so they outrank phrase-only hits.
func (m *Matcher) Score(entry domain.StructuredEntry, q Query) int {
	w := m.weights
	p := strings.ToLower(strings.TrimSpace(entry.Phrase))
	c := strings.ToLower(strings.TrimSpace(entry.Clause))
	g := strings.ToLower(strings.TrimSpace(entry.Category))

	score := 0
	if p == q.Text {
		score += w.ExactPhrase
	}
	if strings.Contains(p, q.Text) {
		score += w.PhraseContains
	}
	if strings.Contains(g, q.Text) {
		score += w.CategoryContains
	}

	for _, t := range q.Tokens {
		if strings.Contains(p, t) {
			score += w.TokenPhrase
		}
		if strings.Contains(g, t) {
			score += w.TokenCategory
		}
		if strings.Contains(c, t) {
			score += w.TokenClause
		}
	}

	nq := q.Normalised
	clauseHit := strings.Contains(c, nq)
	switch {
	case c == nq:
		score += w.ClauseExact
	case clauseHit:
		score += w.ClauseContains
	}
	if q.WordsInOrder(c) {
		score += w.ClauseWordsInOrder
	}
	if !containsAny(c, q.Words) {
		score += w.ClauseNoWords
	}
	phraseHit := strings.Contains(p, nq)
	if (phraseHit || strings.Contains(g, nq)) && !clauseHit {
		score += w.PhraseOrCategoryOnly
	}
	if clauseHit {
		score += w.ClauseOverride
	}
	if phraseHit && !clauseHit {
		score += w.PhraseOnlyPenalty
	}

	if p != "" && (strings.Contains(p, q.Text) || strings.Contains(q.Text, p)) {
		score += m.specificity(p)
	}
	return score
}

// ScoreAll scores every entry and keeps those scoring above zero, in table order.
func (m *Matcher) ScoreAll(entries []domain.StructuredEntry, q Query) []domain.ScoredEntry {
	var scored []domain.ScoredEntry
	for _, e := range entries {
		if s := m.Score(e, q); s > 0 {
			scored = append(scored, domain.ScoredEntry{StructuredEntry: e, Score: s})
		}
	}
	return scored
}

// specificity rewards short phrases.
func (m *Matcher) specificity(phrase string) int {
	maxBonus, div := m.weights.SpecificityMax, m.weights.SpecificityDivisor
	if div <= 0 {
		return 0
	}
	return max(0, maxBonus-min(maxBonus, utf8.RuneCountInString(phrase)/div))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
