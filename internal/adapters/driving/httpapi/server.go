// Package httpapi exposes dart search and the inspection report over a
// small JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("httpapi: search service is required")

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Search driving.SearchService
	Codes  driving.CodeService
	Report driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server is the HTTP API server.
type Server struct {
	ports    *Ports
	settings domain.ServerSettings
	limiter  *rate.Limiter
	router   *mux.Router
}

// NewServer creates a server. Zero settings fall back to the defaults.
func NewServer(ports *Ports, settings domain.ServerSettings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	defaults := domain.DefaultAppSettings().Server
	if settings.Addr == "" {
		settings.Addr = defaults.Addr
	}
	if settings.RateLimit <= 0 {
		settings.RateLimit = defaults.RateLimit
	}
	if settings.Burst <= 0 {
		settings.Burst = defaults.Burst
	}
	if settings.ReadHeaderTimeout <= 0 {
		settings.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}

	s := &Server{
		ports:    ports,
		settings: settings,
		limiter:  rate.NewLimiter(rate.Limit(settings.RateLimit), settings.Burst),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/codes", s.handleCodes).Methods("GET")
	api.HandleFunc("/pages/{page:[0-9]+}", s.handlePage).Methods("GET")
	api.HandleFunc("/report", s.handleListReport).Methods("GET")
	api.HandleFunc("/report", s.handleAddReport).Methods("POST")
	api.HandleFunc("/report", s.handleClearReport).Methods("DELETE")
	api.HandleFunc("/report/{id}", s.handleRemoveReport).Methods("DELETE")
	return router
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.settings.Addr
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.settings.ReadHeaderTimeout,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", s.settings.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// rateLimit rejects requests once the shared token bucket is empty.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			sendError(w, errors.New("rate limit exceeded"), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data}); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err.Error()}); encErr != nil {
		logger.Warn("Failed to encode error response: %v", encErr)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCatalogNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
