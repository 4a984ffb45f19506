package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
)

var (
	errMissingQuery   = errors.New("missing query parameter q")
	errNoCodeService  = errors.New("code lookup is not available")
	errNoReport       = errors.New("inspection report is not available")
	errInvalidPayload = errors.New("invalid JSON payload")
)

// SearchResponse is the body of /api/search.
type SearchResponse struct {
	domain.SearchOutcome
	Message string `json:"message"`
}

// ReportResponse is the body of GET /api/report.
type ReportResponse struct {
	Items []domain.ReportItem `json:"items"`
	Text  string              `json:"text"`
}

// AddReportRequest is the body of POST /api/report.
type AddReportRequest struct {
	Card domain.ResultCard `json:"card"`
	Note string            `json:"note,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("q") {
		sendError(w, errMissingQuery, http.StatusBadRequest)
		return
	}

	outcome, err := s.ports.Search.Search(r.Context(), params.Get("q"))
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, SearchResponse{SearchOutcome: outcome, Message: outcome.Message()})
}

// handleCodes looks up ?codes=LS10,LA1 or lists the table filtered by ?filter=.
func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	if s.ports.Codes == nil {
		sendError(w, errNoCodeService, http.StatusNotImplemented)
		return
	}

	params := r.URL.Query()
	var (
		codes []domain.ModCode
		err   error
	)
	if params.Has("codes") {
		codes, err = s.ports.Codes.Lookup(r.Context(), params.Get("codes"))
	} else {
		codes, err = s.ports.Codes.List(r.Context(), params.Get("filter"))
	}
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	if codes == nil {
		codes = []domain.ModCode{}
	}
	sendJSON(w, http.StatusOK, codes)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil || page < 1 {
		sendError(w, domain.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	p, err := s.ports.Search.Page(r.Context(), page)
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, p)
}

func (s *Server) handleListReport(w http.ResponseWriter, r *http.Request) {
	if s.ports.Report == nil {
		sendError(w, errNoReport, http.StatusNotImplemented)
		return
	}

	items, err := s.ports.Report.List(r.Context())
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	text, err := s.ports.Report.Render(r.Context())
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	if items == nil {
		items = []domain.ReportItem{}
	}
	sendJSON(w, http.StatusOK, ReportResponse{Items: items, Text: text})
}

func (s *Server) handleAddReport(w http.ResponseWriter, r *http.Request) {
	if s.ports.Report == nil {
		sendError(w, errNoReport, http.StatusNotImplemented)
		return
	}

	var req AddReportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		sendError(w, errInvalidPayload, http.StatusBadRequest)
		return
	}

	item, err := s.ports.Report.Add(r.Context(), req.Card, req.Note)
	if err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	sendJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveReport(w http.ResponseWriter, r *http.Request) {
	if s.ports.Report == nil {
		sendError(w, errNoReport, http.StatusNotImplemented)
		return
	}

	if err := s.ports.Report.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearReport(w http.ResponseWriter, r *http.Request) {
	if s.ports.Report == nil {
		sendError(w, errNoReport, http.StatusNotImplemented)
		return
	}

	if err := s.ports.Report.Clear(r.Context()); err != nil {
		sendError(w, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
