package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds process-level settings for the CLI and HTTP server
type AppConfig struct {
	Addr      string
	LogLevel  string
	LogFormat string
	RatesFile string
	CacheTTL  time.Duration
	RateLimit float64
	RateBurst int
}

// DefaultAppConfig returns the settings used when no environment is set
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		CacheTTL:  10 * time.Minute,
		RateLimit: 20,
		RateBurst: 40,
	}
}

// LoadAppConfig loads .env files (a missing file is fine) then reads FIRBGO_*
// environment variables over the defaults. Existing environment variables win
// over values in the files.
func LoadAppConfig(envFiles ...string) (AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return AppConfigFromEnv(os.Getenv)
}

// AppConfigFromEnv builds the config from a lookup function
func AppConfigFromEnv(getenv func(string) string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	if v := getenv("FIRBGO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("FIRBGO_LOG_LEVEL"); v != "" {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(v)
		default:
			return cfg, fmt.Errorf("FIRBGO_LOG_LEVEL: unknown level %q", v)
		}
	}
	if v := getenv("FIRBGO_LOG_FORMAT"); v != "" {
		switch strings.ToLower(v) {
		case "text", "json":
			cfg.LogFormat = strings.ToLower(v)
		default:
			return cfg, fmt.Errorf("FIRBGO_LOG_FORMAT: must be text or json, got %q", v)
		}
	}
	cfg.RatesFile = getenv("FIRBGO_RATES_FILE")
	if v := getenv("FIRBGO_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("FIRBGO_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if v := getenv("FIRBGO_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			return cfg, fmt.Errorf("FIRBGO_RATE_LIMIT: must be a positive number, got %q", v)
		}
		cfg.RateLimit = limit
	}
	if v := getenv("FIRBGO_RATE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return cfg, fmt.Errorf("FIRBGO_RATE_BURST: must be a positive integer, got %q", v)
		}
		cfg.RateBurst = burst
	}
	return cfg, nil
}
