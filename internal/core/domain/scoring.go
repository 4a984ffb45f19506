package domain

// ScoringWeights holds the point values of the structured matcher.
// The values are policy, not derived; they are kept overridable so the
// domain owner can tune them from configuration.
type ScoringWeights struct {
	// ExactPhrase is added when the phrase equals the query.
	ExactPhrase int

	// PhraseContains is added when the phrase contains the query.
	PhraseContains int

	// CategoryContains is added when the category contains the query.
	CategoryContains int

	// TokenPhrase, TokenCategory and TokenClause are added per query token
	// found in the respective field.
	TokenPhrase   int
	TokenCategory int
	TokenClause   int

	// MinTokenLength is the shortest query token that takes part in token scoring.
	MinTokenLength int

	// ClauseExact is added when the clause equals the normalised query.
	ClauseExact int

	// ClauseContains is added when the clause contains the normalised query.
	ClauseContains int

	// ClauseWordsInOrder is added when all query words appear in the clause in order.
	ClauseWordsInOrder int

	// ClauseNoWords is added when the clause contains none of the query words.
	ClauseNoWords int

	// PhraseOrCategoryOnly is added when phrase or category match but the clause does not.
	PhraseOrCategoryOnly int

	// ClauseOverride is added on top of ClauseExact/ClauseContains whenever the
	// clause contains the query. It makes clause hits outrank phrase-only hits.
	ClauseOverride int

	// PhraseOnlyPenalty is added when the phrase contains the query but the clause does not.
	PhraseOnlyPenalty int

	// SpecificityMax and SpecificityDivisor shape the short-phrase nudge:
	// max(0, SpecificityMax - min(SpecificityMax, len(phrase)/SpecificityDivisor)).
	SpecificityMax     int
	SpecificityDivisor int
}

// DefaultScoringWeights returns the weights the mapping table was curated against.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ExactPhrase:          10,
		PhraseContains:       5,
		CategoryContains:     4,
		TokenPhrase:          2,
		TokenCategory:        2,
		TokenClause:          1,
		MinTokenLength:       3,
		ClauseExact:          40,
		ClauseContains:       28,
		ClauseWordsInOrder:   12,
		ClauseNoWords:        -10,
		PhraseOrCategoryOnly: -6,
		ClauseOverride:       200,
		PhraseOnlyPenalty:    -40,
		SpecificityMax:       3,
		SpecificityDivisor:   12,
	}
}
