package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// Ensure CodeService implements the interface.
var _ driving.CodeService = (*CodeService)(nil)

// CodeService resolves vehicle modification codes against the loaded tables.
type CodeService struct {
	catalog driven.CatalogReader
}

// NewCodeService creates a new code service.
func NewCodeService(catalog driven.CatalogReader) *CodeService {
	return &CodeService{catalog: catalog}
}

// Lookup resolves each code in query order. Unknown codes are returned with
// domain.CodeClassUnknown rather than dropped.
func (s *CodeService) Lookup(_ context.Context, codes string) ([]domain.ModCode, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, fmt.Errorf("looking up codes: %w", err)
	}
	return lookupCodes(catalog.Codes, codes), nil
}

// List returns the merged table sorted by code, fuzzily filtered when filter is set.
func (s *CodeService) List(_ context.Context, filter string) ([]domain.ModCode, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, fmt.Errorf("listing codes: %w", err)
	}

	merged := catalog.Codes.Merged()
	codes := make(codeList, 0, len(merged))
	for _, c := range merged {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })

	if filter == "" {
		return codes, nil
	}

	matches := fuzzy.FindFrom(filter, codes)
	logger.Debug("Code filter %q matched %d of %d codes", filter, len(matches), len(codes))
	filtered := make([]domain.ModCode, len(matches))
	for i, m := range matches {
		filtered[i] = codes[m.Index]
	}
	return filtered, nil
}

func lookupCodes(tables domain.ModCodeTables, raw string) []domain.ModCode {
	codes := SplitCodes(raw)
	out := make([]domain.ModCode, len(codes))
	for i, c := range codes {
		out[i] = tables.Lookup(c)
	}
	return out
}

// codeList adapts a code slice to fuzzy.Source, matching on "CODE title".
type codeList []domain.ModCode

func (l codeList) String(i int) string { return l[i].Code + " " + l[i].Title }
func (l codeList) Len() int            { return len(l) }
