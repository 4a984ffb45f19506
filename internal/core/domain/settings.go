package domain

import "time"

// DefaultMaxResults is how many mapping hits a search returns.
const DefaultMaxResults = 3

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// MaxResults caps the structured results. Fallback hits are never capped.
	MaxResults int

	// Weights are the structured matcher point values.
	Weights ScoringWeights

	// Synonyms extends or replaces entries of the built-in synonym table.
	Synonyms map[string][]string
}

// DataSettings says where the catalog files live.
type DataSettings struct {
	// Dir is the directory holding the mapping, page text and code files.
	Dir string

	// Watch reloads the catalog when a data file changes.
	Watch bool
}

// ViewerSettings configures manual deep links.
type ViewerSettings struct {
	// URL is the PDF viewer page.
	URL string

	// ManualURL is the manual PDF the viewer opens.
	ManualURL string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained requests per second across all clients.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int

	// ReadHeaderTimeout bounds slow clients.
	ReadHeaderTimeout time.Duration
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Data holds catalog location settings.
	Data DataSettings

	// Viewer holds manual link settings.
	Viewer ViewerSettings

	// Server holds HTTP API settings.
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Data.Dir is left empty; the catalog adapter resolves it to ~/.dart/data.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			MaxResults: DefaultMaxResults,
			Weights:    DefaultScoringWeights(),
		},
		Data: DataSettings{
			Watch: true,
		},
		Viewer: ViewerSettings{
			URL:       "http://localhost:8080/viewer/viewer.html",
			ManualURL: "http://localhost:8080/assets/QLVIM.pdf",
		},
		Server: ServerSettings{
			Addr:              ":8080",
			RateLimit:         20,
			Burst:             40,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}
