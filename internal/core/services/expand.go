package services

import "strings"

// DefaultSynonyms returns the built-in synonym table.
// Expansion is one-directional; reverse entries are listed explicitly.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"ride height":      {"ground clearance", "suspension height"},
		"ground clearance": {"ride height"},
		"bullbar":          {"nudge bar", "roo bar"},
		"tyre":             {"tire", "tyres", "tires"},
		"seatbelt":         {"safety belt", "seat belt"},
		"lift kit":         {"raised suspension", "suspension lift"},
		"snorkel":          {"air intake snorkel"},
		"winch":            {"front winch", "electric winch"},
	}
}

// TermExpander expands a query into alternate search terms.
// The table is fixed at construction.
type TermExpander struct {
	synonyms map[string][]string
}

// NewTermExpander creates an expander over the built-in table.
// Entries in overrides replace or add keys; keys are matched lowercased.
func NewTermExpander(overrides map[string][]string) *TermExpander {
	table := DefaultSynonyms()
	for key, terms := range overrides {
		key = normaliseTerm(key)
		if key == "" {
			continue
		}
		table[key] = terms
	}
	return &TermExpander{synonyms: table}
}

// Expand returns the lowercased query followed by its synonyms, deduplicated.
// The lookup is one exact match on the whole query; there is no per-word
// expansion and no stemming. An empty query yields nil.
func (e *TermExpander) Expand(raw string) []string {
	query := normaliseTerm(raw)
	if query == "" {
		return nil
	}

	terms := []string{query}
	seen := map[string]bool{query: true}
	for _, alt := range e.synonyms[query] {
		alt = normaliseTerm(alt)
		if alt == "" || seen[alt] {
			continue
		}
		seen[alt] = true
		terms = append(terms, alt)
	}
	return terms
}

// Synonyms returns a copy of the effective table.
func (e *TermExpander) Synonyms() map[string][]string {
	out := make(map[string][]string, len(e.synonyms))
	for k, v := range e.synonyms {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func normaliseTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
