package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/api"
	"github.com/aurine/docgen/internal/config"
	"github.com/aurine/docgen/internal/export"
)

func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prevCfg, prevLogger := cfg, logger
	cfg, logger = c, zerolog.Nop()
	t.Cleanup(func() { cfg, logger = prevCfg, prevLogger })
}

func TestServerHistoryUnavailable(t *testing.T) {
	// A regular file where the history directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	withConfig(t, &config.Config{
		History: config.HistoryConfig{Path: filepath.Join(blocker, "sub", "history.db"), MaxItems: 10},
	})

	hist, closeHistory := serverHistory()
	defer closeHistory()
	require.True(t, hist == nil, "store must be an untyped nil so the server sees no history")

	srv := api.NewServer(cfg, export.New(export.Options{}, logger), hist, logger)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerHistoryOpen(t *testing.T) {
	withConfig(t, &config.Config{
		History: config.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db"), MaxItems: 10},
	})

	hist, closeHistory := serverHistory()
	defer closeHistory()
	require.NotNil(t, hist)

	items, err := hist.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)
}
