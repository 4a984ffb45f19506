package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir           = "data.dir"
	keyDataWatch         = "data.watch"
	keyMaxResults        = "search.max_results"
	keyWeightsPrefix     = "search.weights."
	keyViewerURL         = "viewer.url"
	keyViewerManualURL   = "viewer.manual_url"
	keyServerAddr        = "server.addr"
	keyServerRateLimit   = "server.rate_limit"
	keyServerBurst       = "server.burst"
	keyServerReadTimeout = "server.read_header_timeout"
	keySynonymsPrefix    = "synonyms."
)

// weightFields maps config names to ScoringWeights fields.
var weightFields = map[string]func(*domain.ScoringWeights) *int{
	"exact_phrase":            func(w *domain.ScoringWeights) *int { return &w.ExactPhrase },
	"phrase_contains":         func(w *domain.ScoringWeights) *int { return &w.PhraseContains },
	"category_contains":       func(w *domain.ScoringWeights) *int { return &w.CategoryContains },
	"token_phrase":            func(w *domain.ScoringWeights) *int { return &w.TokenPhrase },
	"token_category":          func(w *domain.ScoringWeights) *int { return &w.TokenCategory },
	"token_clause":            func(w *domain.ScoringWeights) *int { return &w.TokenClause },
	"min_token_length":        func(w *domain.ScoringWeights) *int { return &w.MinTokenLength },
	"clause_exact":            func(w *domain.ScoringWeights) *int { return &w.ClauseExact },
	"clause_contains":         func(w *domain.ScoringWeights) *int { return &w.ClauseContains },
	"clause_words_in_order":   func(w *domain.ScoringWeights) *int { return &w.ClauseWordsInOrder },
	"clause_no_words":         func(w *domain.ScoringWeights) *int { return &w.ClauseNoWords },
	"phrase_or_category_only": func(w *domain.ScoringWeights) *int { return &w.PhraseOrCategoryOnly },
	"clause_override":         func(w *domain.ScoringWeights) *int { return &w.ClauseOverride },
	"phrase_only_penalty":     func(w *domain.ScoringWeights) *int { return &w.PhraseOnlyPenalty },
	"specificity_max":         func(w *domain.ScoringWeights) *int { return &w.SpecificityMax },
	"specificity_divisor":     func(w *domain.ScoringWeights) *int { return &w.SpecificityDivisor },
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			MaxResults: s.getPositiveInt(keyMaxResults, d.Search.MaxResults),
			Weights:    s.getWeights(d.Search.Weights),
			Synonyms:   s.getSynonyms(),
		},
		Data: domain.DataSettings{
			Dir:   s.getString(keyDataDir, d.Data.Dir),
			Watch: s.getBool(keyDataWatch, d.Data.Watch),
		},
		Viewer: domain.ViewerSettings{
			URL:       s.getString(keyViewerURL, d.Viewer.URL),
			ManualURL: s.getString(keyViewerManualURL, d.Viewer.ManualURL),
		},
		Server: domain.ServerSettings{
			Addr:              s.getString(keyServerAddr, d.Server.Addr),
			RateLimit:         s.getPositiveFloat(keyServerRateLimit, d.Server.RateLimit),
			Burst:             s.getPositiveInt(keyServerBurst, d.Server.Burst),
			ReadHeaderTimeout: s.getDuration(keyServerReadTimeout, d.Server.ReadHeaderTimeout),
		},
	}

	return settings, nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// parseSetting converts a raw value to the type stored under key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case keyDataDir, keyServerAddr:
		return value, nil
	case keyViewerURL, keyViewerManualURL:
		if value == "" {
			return nil, fmt.Errorf("%s must not be empty: %w", key, domain.ErrInvalidInput)
		}
		return value, nil
	case keyDataWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		return b, nil
	case keyMaxResults, keyServerBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		return int64(n), nil
	case keyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		return f, nil
	case keyServerReadTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("%s must be a duration such as 10s: %w", key, domain.ErrInvalidInput)
		}
		return value, nil
	}

	if name, ok := strings.CutPrefix(key, keyWeightsPrefix); ok {
		if _, known := weightFields[name]; !known {
			return nil, fmt.Errorf("unknown weight %q: %w", name, domain.ErrInvalidInput)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, domain.ErrInvalidInput)
		}
		return int64(n), nil
	}

	if term, ok := strings.CutPrefix(key, keySynonymsPrefix); ok && term != "" {
		var terms []string
		for _, t := range strings.Split(value, ",") {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		return terms, nil
	}

	return nil, fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the settable keys. Synonym keys are open-ended and listed as a pattern.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyDataDir, keyDataWatch, keyMaxResults,
		keyViewerURL, keyViewerManualURL,
		keyServerAddr, keyServerRateLimit, keyServerBurst, keyServerReadTimeout,
	}
	for name := range weightFields {
		keys = append(keys, keyWeightsPrefix+name)
	}
	sort.Strings(keys)
	return append(keys, keySynonymsPrefix+"<term>")
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// getWeights overlays configured weights on the defaults. Zero is a valid weight.
func (s *SettingsService) getWeights(defaults domain.ScoringWeights) domain.ScoringWeights {
	w := defaults
	for name, field := range weightFields {
		key := keyWeightsPrefix + name
		if _, exists := s.configStore.Get(key); exists {
			*field(&w) = s.configStore.GetInt(key)
		}
	}
	return w
}

func (s *SettingsService) getSynonyms() map[string][]string {
	keys := s.configStore.Keys(keySynonymsPrefix)
	if len(keys) == 0 {
		return nil
	}
	synonyms := make(map[string][]string, len(keys))
	for _, key := range keys {
		term := strings.TrimPrefix(key, keySynonymsPrefix)
		synonyms[term] = s.configStore.GetStringSlice(key)
	}
	return synonyms
}
