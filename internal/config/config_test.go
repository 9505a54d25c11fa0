package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// Server defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Server.ExportCacheTTL)
	assert.Equal(t, 30, cfg.Server.ExportRate)

	// Render defaults
	assert.Equal(t, 3.0, cfg.Render.PixelRatioPDF)
	assert.Equal(t, 2.0, cfg.Render.PixelRatioPNG)
	assert.Equal(t, 95, cfg.Render.JPEGQuality)

	// History defaults
	assert.Equal(t, 10, cfg.History.MaxItems)
	assert.NotContains(t, cfg.History.Path, "~", "history path should be expanded")
	assert.Equal(t, "history.db", filepath.Base(cfg.History.Path))

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  export_cache_ttl: 30s
render:
  pixel_ratio_pdf: 2
history:
  path: /tmp/docgen-test/history.db
  max_items: 25
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ExportCacheTTL)
	assert.Equal(t, 2.0, cfg.Render.PixelRatioPDF)
	// Unset values keep their defaults.
	assert.Equal(t, 2.0, cfg.Render.PixelRatioPNG)
	assert.Equal(t, "/tmp/docgen-test/history.db", cfg.History.Path)
	assert.Equal(t, 25, cfg.History.MaxItems)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("DOCGEN_SERVER_PORT", "7000")
	t.Setenv("DOCGEN_HISTORY_MAX_ITEMS", "3")
	t.Setenv("DOCGEN_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 3, cfg.History.MaxItems)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", s.Addr())
}

func TestExpandHome(t *testing.T) {
	home := homeDir()
	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/.docgen/history.db", filepath.Join(home, ".docgen", "history.db")},
		{"/var/lib/docgen.db", "/var/lib/docgen.db"},
		{":memory:", ":memory:"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, expandHome(tt.in), tt.in)
	}
}

// ── Secrets ──

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"tok-1234567890-xyz", "tok...xyz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskSecret(tt.in), tt.in)
	}
}

func TestCheckSecretsEmpty(t *testing.T) {
	statuses := CheckSecrets(&Config{})
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].IsSet)
	assert.Equal(t, SourceNone, statuses[0].Source)
}

func TestCheckSecretsSource(t *testing.T) {
	cfg := &Config{Server: ServerConfig{APIToken: "config-token-value"}}
	st := CheckSecrets(cfg)[0]
	assert.Equal(t, SourceConfig, st.Source)
	assert.Equal(t, "con...lue", st.Masked)

	t.Setenv("DOCGEN_SERVER_API_TOKEN", "config-token-value")
	assert.Equal(t, SourceEnv, CheckSecrets(cfg)[0].Source)
}
