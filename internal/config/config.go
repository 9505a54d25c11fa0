// Package config handles configuration loading for docgen.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCGEN_SERVER_PORT.
const EnvPrefix = "DOCGEN"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Render  RenderConfig  `mapstructure:"render"  yaml:"render"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	// APIToken, when set, is required as a bearer token on every API call.
	APIToken       string        `mapstructure:"api_token"        yaml:"api_token"        json:"-"`
	ExportCacheTTL time.Duration `mapstructure:"export_cache_ttl" yaml:"export_cache_ttl"`
	ExportRate     int           `mapstructure:"export_rate"      yaml:"export_rate"` // exports per minute
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RenderConfig holds rasterization settings.
type RenderConfig struct {
	PixelRatioPDF float64 `mapstructure:"pixel_ratio_pdf" yaml:"pixel_ratio_pdf"`
	PixelRatioPNG float64 `mapstructure:"pixel_ratio_png" yaml:"pixel_ratio_png"`
	JPEGQuality   int     `mapstructure:"jpeg_quality"    yaml:"jpeg_quality"`
	Workers       int     `mapstructure:"workers"         yaml:"workers"` // 0 = GOMAXPROCS
}

// HistoryConfig holds report history storage settings.
type HistoryConfig struct {
	Path     string `mapstructure:"path"      yaml:"path"` // ":memory:" disables persistence
	MaxItems int    `mapstructure:"max_items" yaml:"max_items"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.docgen/config.yaml (home directory)
//  3. /etc/docgen/config.yaml (system)
//
// A .env file in the working directory is loaded first. Environment variables
// override config file values. Format: DOCGEN_<SECTION>_<KEY>, e.g.
// DOCGEN_HISTORY_MAX_ITEMS.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".docgen"))
	v.AddConfigPath("/etc/docgen")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.History.Path = expandHome(cfg.History.Path)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.api_token", "")
	v.SetDefault("server.export_cache_ttl", 5*time.Minute)
	v.SetDefault("server.export_rate", 30)

	// Render defaults
	v.SetDefault("render.pixel_ratio_pdf", 3.0)
	v.SetDefault("render.pixel_ratio_png", 2.0)
	v.SetDefault("render.jpeg_quality", 95)
	v.SetDefault("render.workers", 0)

	// History defaults
	v.SetDefault("history.path", "~/.docgen/history.db")
	v.SetDefault("history.max_items", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
