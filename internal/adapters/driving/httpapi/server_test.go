package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dart-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dart-cli/internal/adapters/driven/viewer"
	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/services"
)

func testPorts(t *testing.T) *Ports {
	t.Helper()
	catalogs := memory.NewCatalogStore()
	catalogs.Publish(&domain.Catalog{
		Entries: []domain.StructuredEntry{
			domain.NewStructuredEntry("bald tyres", "6.14", "Tyres must have adequate tread depth", "Tyres", 42),
			domain.NewStructuredEntry("cracked windscreen", "9.3", "Windscreen must be free of cracks", "Glass", 17),
		},
		Pages: []domain.ManualPage{{Page: 3, Text: "Seat belts must be fitted\nto every seat\n"}},
		Codes: domain.ModCodeTables{
			Light: map[string]string{"LS10": "Body blocks"},
			Heavy: map[string]string{},
		},
	})
	links := viewer.NewLinkBuilder(domain.ViewerSettings{URL: "v", ManualURL: "m.pdf"})
	settings := domain.DefaultAppSettings().Search

	return &Ports{
		Search: services.NewSearchService(catalogs, links, settings),
		Codes:  services.NewCodeService(catalogs),
		Report: services.NewReportService(memory.NewReportStore()),
	}
}

func newTestServer(t *testing.T, ports *Ports, settings domain.ServerSettings) *Server {
	t.Helper()
	s, err := NewServer(ports, settings)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func decodeData(t *testing.T, resp APIResponse, v any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestNewServer_RequiresSearch(t *testing.T) {
	_, err := NewServer(&Ports{}, domain.ServerSettings{})

	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewServer_Defaults(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	assert.Equal(t, domain.DefaultAppSettings().Server.Addr, s.Addr())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	rec, resp := do(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	t.Run("missing q is a bad request", func(t *testing.T) {
		rec, resp := do(t, s, http.MethodGet, "/api/search", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "q")
	})

	t.Run("blank q is an empty query status", func(t *testing.T) {
		rec, resp := do(t, s, http.MethodGet, "/api/search?q=", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body SearchResponse
		decodeData(t, resp, &body)
		assert.Equal(t, domain.StatusEmptyQuery, body.Status)
		assert.Equal(t, "Type something to search.", body.Message)
	})

	t.Run("phrase search returns cards", func(t *testing.T) {
		rec, resp := do(t, s, http.MethodGet, "/api/search?q=tread+depth", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body SearchResponse
		decodeData(t, resp, &body)
		assert.Equal(t, domain.StatusMatched, body.Status)
		require.NotEmpty(t, body.Cards)
		assert.Equal(t, "[s6.14]", body.Cards[0].LinkText)
		assert.Equal(t, "v?file=m.pdf#page=42", body.Cards[0].LinkHref)
	})

	t.Run("code query returns codes", func(t *testing.T) {
		rec, resp := do(t, s, http.MethodGet, "/api/search?q=LS10", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body SearchResponse
		decodeData(t, resp, &body)
		assert.Equal(t, domain.StatusCodes, body.Status)
		require.Len(t, body.Codes, 1)
		assert.Equal(t, "Body blocks", body.Codes[0].Title)
	})
}

func TestCodes(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	rec, resp := do(t, s, http.MethodGet, "/api/codes?codes=ls10,zz9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var codes []domain.ModCode
	decodeData(t, resp, &codes)
	require.Len(t, codes, 2)
	assert.Equal(t, domain.CodeClassLight, codes[0].Class)
	assert.Equal(t, domain.CodeClassUnknown, codes[1].Class)

	rec, resp = do(t, s, http.MethodGet, "/api/codes?filter=body", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, resp, &codes)
	require.Len(t, codes, 1)
	assert.Equal(t, "LS10", codes[0].Code)
}

func TestCodes_NotWired(t *testing.T) {
	ports := testPorts(t)
	ports.Codes = nil
	s := newTestServer(t, ports, domain.ServerSettings{})

	rec, _ := do(t, s, http.MethodGet, "/api/codes", "")

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestPage(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	rec, resp := do(t, s, http.MethodGet, "/api/pages/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page domain.ManualPage
	decodeData(t, resp, &page)
	assert.Equal(t, 3, page.Page)

	rec, _ = do(t, s, http.MethodGet, "/api/pages/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportLifecycle(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})
	card := `{"card": {"category": "Tyres", "clause": "Tyres must have adequate tread depth", "page": 42, "data_section": "6.14", "source": "mapping"}, "note": "front left"}`

	rec, resp := do(t, s, http.MethodPost, "/api/report", card)
	require.Equal(t, http.StatusCreated, rec.Code)
	var item domain.ReportItem
	decodeData(t, resp, &item)
	assert.NotEmpty(t, item.ID)

	rec, resp = do(t, s, http.MethodPost, "/api/report", card)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)

	rec, resp = do(t, s, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report ReportResponse
	decodeData(t, resp, &report)
	require.Len(t, report.Items, 1)
	assert.Equal(t,
		"Tyres – Tyres must have adequate tread depth – ensure vehicle complies with [s6.14] of QLVIM. Note: front left\n",
		report.Text)

	rec, _ = do(t, s, http.MethodDelete, "/api/report/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/report/"+item.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReport_BadPayload(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})

	rec, _ := do(t, s, http.MethodPost, "/api/report", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReport_Clear(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{})
	card := `{"card": {"category": "Glass", "clause": "Windscreen must be free of cracks", "page": 17, "data_section": "9.3"}}`
	rec, _ := do(t, s, http.MethodPost, "/api/report", card)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/report", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, resp := do(t, s, http.MethodGet, "/api/report", "")
	var report ReportResponse
	decodeData(t, resp, &report)
	assert.Empty(t, report.Items)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, testPorts(t), domain.ServerSettings{RateLimit: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		rec, _ := do(t, s, http.MethodGet, "/api/search?q=tyres", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, resp := do(t, s, http.MethodGet, "/api/search?q=tyres", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.False(t, resp.Success)

	rec, _ = do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidInput))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrAlreadyExists))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrCatalogNotLoaded))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
