package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/internal/config"
	"github.com/aurine/docgen/internal/export"
	"github.com/aurine/docgen/internal/history"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

const reportForm = `{
	"clientName": "Beauty Studio",
	"city": "Warszawa",
	"period": "Październik 2026",
	"budget": "5,000",
	"impressions": "150,000",
	"reach": "85,000",
	"clicks": "3,500",
	"ctr": "2.33",
	"conversions": "245",
	"costPerConversion": "20.41",
	"bookings": "178"
}`

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{ExportRate: 100},
	}
}

func testServer(t *testing.T, cfg *config.Config) (*Server, *history.Store) {
	t.Helper()
	store, err := history.Open(":memory:", 5, zerolog.Nop())
	require.NoError(t, err, "opening history")
	t.Cleanup(func() { store.Close() })

	exp := export.New(export.Options{PDFPixelRatio: 0.25, ImagePixelRatio: 0.25}, zerolog.Nop())
	srv := NewServer(cfg, exp, store, zerolog.Nop())
	srv.SetServeUI(false)
	return srv, store
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func doWithToken(t *testing.T, srv *Server, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), "decoding response")
	return resp
}

// ════════════════════════════════════════════════════════════════════
// Health / metadata
// ════════════════════════════════════════════════════════════════════

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := do(t, srv, "GET", path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success, path)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "ok", data["status"], path)
		assert.Equal(t, true, data["history"], path)
		assert.Equal(t, float64(0), data["export_cache"], path)
	}
}

func TestDocumentKinds(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	rec := do(t, srv, "GET", "/api/v1/documents", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []DocumentKindInfo `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 4)

	last := resp.Data[3]
	assert.EqualValues(t, "presentation", last.Kind)
	assert.Equal(t, 6, last.PageCount)
	assert.Equal(t, 1920, last.PageSize.W)
}

// ════════════════════════════════════════════════════════════════════
// Preview
// ════════════════════════════════════════════════════════════════════

func TestPreviewReportSavesHistory(t *testing.T) {
	srv, store := testServer(t, testConfig())
	rec := do(t, srv, "POST", "/api/v1/report/preview", reportForm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#report-preview").Length())
	assert.Equal(t, 1, doc.Find("#chart-weekly svg").Length())

	items, err := store.List(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Beauty Studio", items[0].ClientName)
	assert.Equal(t, "5,000", items[0].Data["budget"])
}

func TestPreviewInvoiceDoesNotSaveHistory(t *testing.T) {
	srv, store := testServer(t, testConfig())
	body := `{"clientName":"Salon","invoiceNumber":"FV/2026/010","amount":1500}`
	rec := do(t, srv, "POST", "/api/v1/invoice/preview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPreviewValidationError(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	rec := do(t, srv, "POST", "/api/v1/report/preview", `{"city":"Warszawa"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	messages := resp.Data.(map[string]any)
	assert.Equal(t, "Nazwa klienta wymagana", messages["clientName"])
}

func TestPreviewErrors(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown kind", "/api/v1/letter/preview", `{}`, http.StatusBadRequest},
		{"bad json", "/api/v1/report/preview", `{"clientName":`, http.StatusBadRequest},
		{"not an object", "/api/v1/report/preview", `[1,2]`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, "POST", tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// Export
// ════════════════════════════════════════════════════════════════════

func TestExportPNGAndCache(t *testing.T) {
	srv, _ := testServer(t, testConfig())

	rec := do(t, srv, "POST", "/api/v1/report/export?format=png", reportForm)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="raport-beauty-studio.png"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))

	first := rec.Body.Bytes()
	_, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)

	rec = do(t, srv, "POST", "/api/v1/report/export?format=png", reportForm)
	assert.Equal(t, "hit", rec.Header().Get("X-Cache"))
	assert.True(t, bytes.Equal(first, rec.Body.Bytes()), "cached export differs")

	resp := decodeResponse(t, do(t, srv, "GET", "/api/v1/health", ""))
	assert.Equal(t, float64(1), resp.Data.(map[string]any)["export_cache"])
}

func TestExportPDF(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	body := `{"clientName":"Salon Beauty","contractNumber":"UM/2026/007","contractValue":"2500"}`
	rec := do(t, srv, "POST", "/api/v1/contract/export?format=pdf", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "UM-2026-007.pdf")
}

func TestExportUnsupportedFormat(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	rec := do(t, srv, "POST", "/api/v1/report/export?format=gif", reportForm)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Server.ExportRate = 1
	srv, _ := testServer(t, cfg)

	rec := do(t, srv, "POST", "/api/v1/report/export?format=png", reportForm)
	require.Equal(t, http.StatusOK, rec.Code, "first export")

	// A different form misses the cache and needs a new token.
	other := strings.Replace(reportForm, "Beauty Studio", "Hair Studio", 1)
	rec = do(t, srv, "POST", "/api/v1/report/export?format=png", other)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

// ════════════════════════════════════════════════════════════════════
// Charts
// ════════════════════════════════════════════════════════════════════

func TestReportCharts(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	rec := do(t, srv, "POST", "/api/v1/report/charts", `{"engagementRate":"40"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data ChartsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Data.Engagement, ">40%</text>")
	for name, svg := range map[string]string{
		"conversion": resp.Data.Conversion,
		"weekly":     resp.Data.Weekly,
		"daily":      resp.Data.Daily,
	} {
		assert.True(t, strings.HasPrefix(svg, "<svg"), "%s: not an svg", name)
	}
}

func TestStandaloneChart(t *testing.T) {
	srv, _ := testServer(t, testConfig())
	tests := []struct {
		name     string
		path     string
		body     string
		code     int
		contains string
	}{
		{"pie", "/api/v1/charts/pie", `{"series":[{"name":"A","value":60,"color":"#3b82f6"},{"name":"B","value":40}]}`, http.StatusOK, ">60%</text>"},
		{"bar", "/api/v1/charts/bar", `{"series":[{"name":"Pn","value":3}],"height":120}`, http.StatusOK, `viewBox="0 0 100 120"`},
		{"line", "/api/v1/charts/line", `{"points":[{"name":"T1","reach":10,"clicks":2},{"name":"T2","reach":20,"clicks":5}]}`, http.StatusOK, `stroke="#3b82f6"`},
		{"empty pie", "/api/v1/charts/pie", `{"series":[],"size":150}`, http.StatusOK, "Brak danych"},
		{"empty bar", "/api/v1/charts/bar", `{"series":[],"height":120}`, http.StatusOK, `height="120"`},
		{"negative", "/api/v1/charts/bar", `{"series":[{"name":"x","value":-1}]}`, http.StatusBadRequest, ""},
		{"unknown", "/api/v1/charts/radar", `{}`, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, "POST", tt.path, tt.body)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code == http.StatusOK {
				assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// History
// ════════════════════════════════════════════════════════════════════

func TestHistoryEndpoints(t *testing.T) {
	srv, store := testServer(t, testConfig())
	item, err := store.Save(t.Context(), map[string]string{"clientName": "A", "period": "Wrzesień"})
	require.NoError(t, err)

	rec := do(t, srv, "GET", "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code, "list")
	var list struct {
		Data []history.Item `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, item.ID, list.Data[0].ID)

	rec = do(t, srv, "GET", "/api/v1/history/"+item.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, "get")

	rec = do(t, srv, "DELETE", "/api/v1/history/"+item.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code, "delete")

	rec = do(t, srv, "GET", "/api/v1/history/"+item.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "get deleted")

	_, err = store.Save(t.Context(), map[string]string{"clientName": "B"})
	require.NoError(t, err)
	rec = do(t, srv, "DELETE", "/api/v1/history", "")
	require.Equal(t, http.StatusNoContent, rec.Code, "clear")

	items, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistoryDisabled(t *testing.T) {
	exp := export.New(export.Options{}, zerolog.Nop())
	srv := NewServer(testConfig(), exp, nil, zerolog.Nop())

	rec := do(t, srv, "GET", "/api/v1/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decodeResponse(t, do(t, srv, "GET", "/api/v1/health", ""))
	assert.Equal(t, false, resp.Data.(map[string]any)["history"])
}

// ════════════════════════════════════════════════════════════════════
// Auth / config
// ════════════════════════════════════════════════════════════════════

func TestAPIToken(t *testing.T) {
	cfg := testConfig()
	cfg.Server.APIToken = "secret-token-123"
	srv, _ := testServer(t, cfg)

	rec := do(t, srv, "GET", "/api/v1/history", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no token")

	rec = doWithToken(t, srv, "/api/v1/history", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "wrong token")

	rec = doWithToken(t, srv, "/api/v1/history", "secret-token-123")
	assert.Equal(t, http.StatusOK, rec.Code, "with token")

	// Health stays public.
	rec = do(t, srv, "GET", "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health")
}

func TestConfigHidesSecrets(t *testing.T) {
	cfg := testConfig()
	cfg.Server.APIToken = "secret-token-123"
	srv, _ := testServer(t, cfg)

	rec := doWithToken(t, srv, "/api/v1/config", "secret-token-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-token-123", "config response leaks the API token")

	rec = doWithToken(t, srv, "/api/v1/config/secrets", "secret-token-123")
	assert.Contains(t, rec.Body.String(), "sec...123")
}

func TestServeUI(t *testing.T) {
	exp := export.New(export.Options{}, zerolog.Nop())
	srv := NewServer(testConfig(), exp, nil, zerolog.Nop())

	rec := do(t, srv, "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Text(), "Generator dokumentów")
}
