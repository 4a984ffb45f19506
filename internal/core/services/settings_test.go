package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Search.MaxResults, settings.Search.MaxResults)
	assert.Equal(t, defaults.Search.Weights, settings.Search.Weights)
	assert.Nil(t, settings.Search.Synonyms)
	assert.Equal(t, defaults.Viewer, settings.Viewer)
	assert.Equal(t, defaults.Server, settings.Server)
	assert.Equal(t, defaults.Data, settings.Data)
}

func TestSettingsService_Set_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("search.max_results", "5"))
	require.NoError(t, service.Set("search.weights.clause_override", "0"))
	require.NoError(t, service.Set("search.weights.clause_no_words", "-3"))
	require.NoError(t, service.Set("data.dir", "/srv/dart"))
	require.NoError(t, service.Set("data.watch", "false"))
	require.NoError(t, service.Set("viewer.url", "https://example.org/viewer.html"))
	require.NoError(t, service.Set("server.rate_limit", "2.5"))
	require.NoError(t, service.Set("server.burst", "7"))
	require.NoError(t, service.Set("server.read_header_timeout", "3s"))
	require.NoError(t, service.Set("synonyms.mudguard", "mud flap, splash guard,"))

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, 5, settings.Search.MaxResults)
	assert.Equal(t, 0, settings.Search.Weights.ClauseOverride)
	assert.Equal(t, -3, settings.Search.Weights.ClauseNoWords)
	assert.Equal(t, 40, settings.Search.Weights.ClauseExact)
	assert.Equal(t, "/srv/dart", settings.Data.Dir)
	assert.False(t, settings.Data.Watch)
	assert.Equal(t, "https://example.org/viewer.html", settings.Viewer.URL)
	assert.Equal(t, 2.5, settings.Server.RateLimit)
	assert.Equal(t, 7, settings.Server.Burst)
	assert.Equal(t, 3*time.Second, settings.Server.ReadHeaderTimeout)
	assert.Equal(t, map[string][]string{"mudguard": {"mud flap", "splash guard"}}, settings.Search.Synonyms)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{"search.max_results", "0"},
		{"search.max_results", "many"},
		{"search.weights.unknown", "1"},
		{"search.weights.clause_exact", "1.5"},
		{"data.watch", "maybe"},
		{"viewer.url", ""},
		{"server.rate_limit", "-1"},
		{"server.read_header_timeout", "soon"},
		{"synonyms.", "a"},
		{"no.such.key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Contains(t, keys, "search.max_results")
	assert.Contains(t, keys, "search.weights.clause_override")
	assert.Contains(t, keys, "viewer.manual_url")
	assert.Equal(t, "synonyms.<term>", keys[len(keys)-1])
}
