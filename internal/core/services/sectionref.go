package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

// sectionRefPattern matches citation tokens such as "s18.5.1(a)(i)",
// "section 6.17(a)" and "18 5.1". Group 1 holds the token without the
// leading marker: 1-2 digits, one or more dot or space separated digit
// groups, any number of lettered sub-clauses and at most one roman one.
var sectionRefPattern = regexp.MustCompile(
	`(?i)\b(?:s(?:ection)?\s*)?(\d{1,2}(?:[\s.]+\d+)+(?:\([a-z]\))*(?:\([ivx]+\))?)\b`)

var (
	// spacedDigitsPattern matches whitespace between two digits.
	spacedDigitsPattern = regexp.MustCompile(`(\d)\s+(\d)`)

	// repeatedDotsPattern matches runs of dots.
	repeatedDotsPattern = regexp.MustCompile(`\.+`)
)

// modCodePattern matches one vehicle modification code token.
var modCodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,3}\d{1,2}$`)

// codeSeparatorPattern splits a code list on commas and whitespace.
var codeSeparatorPattern = regexp.MustCompile(`[,\s]+`)

// ExtractSectionRef returns the first citation in text, normalised and
// prefixed with "s" (e.g. "s18.5.1"), or "" if there is none.
func ExtractSectionRef(text string) string {
	m := sectionRefPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	token := m[1]
	// Adjacent gaps share a digit, so one pass can leave every other gap.
	for {
		next := spacedDigitsPattern.ReplaceAllString(token, "$1.$2")
		if next == token {
			break
		}
		token = next
	}
	token = repeatedDotsPattern.ReplaceAllString(token, ".")
	return "s" + token
}

// SplitCodes splits a code list into normalised, non-empty tokens.
func SplitCodes(raw string) []string {
	parts := codeSeparatorPattern.Split(raw, -1)
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := domain.NormaliseCode(p); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// IsCodeList reports whether every token of raw looks like a mod code.
// A query without tokens is not a code list.
func IsCodeList(raw string) bool {
	codes := SplitCodes(raw)
	if len(codes) == 0 {
		return false
	}
	for _, c := range codes {
		if !modCodePattern.MatchString(c) {
			return false
		}
	}
	return true
}

// HasCode reports whether code appears as a whole token in raw.
func HasCode(raw, code string) bool {
	code = domain.NormaliseCode(code)
	if code == "" {
		return false
	}
	for _, c := range strings.FieldsFunc(strings.ToUpper(raw), func(r rune) bool {
		return (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	}) {
		if c == code {
			return true
		}
	}
	return false
}

// ClassifyQuery decides which handler a raw query goes to.
func ClassifyQuery(raw string) domain.QueryKind {
	switch {
	case strings.TrimSpace(raw) == "":
		return domain.QueryEmpty
	case IsCodeList(raw):
		return domain.QueryCodeLookup
	default:
		return domain.QueryPhrase
	}
}
