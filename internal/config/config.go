// Package config loads server and CLI configuration. Precedence is
// environment variables over a YAML config file over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values. Load references them and no other code should
// duplicate them.
const (
	DefaultPort               = "8080"
	DefaultGinMode            = "release"
	DefaultLogLevel           = "info"
	DefaultDataDir            = "./data"
	DefaultCacheTTLSeconds    = 300
	DefaultRateLimitPerMinute = 60
	DefaultRateLimitBurst     = 2
	DefaultConfigFile         = "projectmeter.yaml"
)

// Config holds all runtime settings for the scoring service.
type Config struct {
	Port               string   `yaml:"port,omitempty"`
	GinMode            string   `yaml:"gin_mode,omitempty"`
	LogLevel           string   `yaml:"log_level,omitempty"`
	DataDir            string   `yaml:"data_dir,omitempty"`
	ModelPath          string   `yaml:"model_path,omitempty"`
	LexiconOverlay     string   `yaml:"lexicon_overlay,omitempty"`
	CacheTTLSeconds    int      `yaml:"cache_ttl_seconds,omitempty"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute,omitempty"`
	RateLimitBurst     int      `yaml:"rate_limit_burst,omitempty"`
	CORSOrigins        []string `yaml:"cors_origins,omitempty"`
}

// New returns a Config with all defaults populated.
func New() *Config {
	return &Config{
		Port:               DefaultPort,
		GinMode:            DefaultGinMode,
		LogLevel:           DefaultLogLevel,
		DataDir:            DefaultDataDir,
		CacheTTLSeconds:    DefaultCacheTTLSeconds,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		RateLimitBurst:     DefaultRateLimitBurst,
	}
}

// Load builds the effective configuration. A missing config file falls back
// to defaults with a nil error; a malformed one is reported to the caller.
// Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		path = getEnvOrDefault("CONFIG_FILE", DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		mergeConfig(cfg, &fileCfg)
	case errors.Is(err, os.ErrNotExist):
		// no file is fine, defaults plus environment apply
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("cache_ttl_seconds must be positive, got %d", c.CacheTTLSeconds)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	if src.Port != "" {
		dst.Port = src.Port
	}
	if src.GinMode != "" {
		dst.GinMode = src.GinMode
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.ModelPath != "" {
		dst.ModelPath = src.ModelPath
	}
	if src.LexiconOverlay != "" {
		dst.LexiconOverlay = src.LexiconOverlay
	}
	if src.CacheTTLSeconds != 0 {
		dst.CacheTTLSeconds = src.CacheTTLSeconds
	}
	if src.RateLimitPerMinute != 0 {
		dst.RateLimitPerMinute = src.RateLimitPerMinute
	}
	if src.RateLimitBurst != 0 {
		dst.RateLimitBurst = src.RateLimitBurst
	}
	if len(src.CORSOrigins) > 0 {
		dst.CORSOrigins = src.CORSOrigins
	}
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.GinMode = getEnvOrDefault("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)
	cfg.ModelPath = getEnvOrDefault("MODEL_PATH", cfg.ModelPath)
	cfg.LexiconOverlay = getEnvOrDefault("LEXICON_OVERLAY", cfg.LexiconOverlay)
	cfg.CacheTTLSeconds = getEnvIntOrDefault("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.RateLimitPerMinute = getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.RateLimitBurst = getEnvIntOrDefault("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.CORSOrigins = cfg.CORSOrigins[:0]
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
			}
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
