package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestAppConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := AppConfigFromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestAppConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := AppConfigFromEnv(envMap(map[string]string{
		"FIRBGO_ADDR":       "127.0.0.1:9000",
		"FIRBGO_LOG_LEVEL":  "DEBUG",
		"FIRBGO_LOG_FORMAT": "json",
		"FIRBGO_RATES_FILE": "/etc/firbgo/rates.yaml",
		"FIRBGO_CACHE_TTL":  "90s",
		"FIRBGO_RATE_LIMIT": "2.5",
		"FIRBGO_RATE_BURST": "5",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/etc/firbgo/rates.yaml", cfg.RatesFile)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
}

func TestAppConfigFromEnv_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"FIRBGO_LOG_LEVEL":  "loud",
		"FIRBGO_LOG_FORMAT": "xml",
		"FIRBGO_CACHE_TTL":  "soon",
		"FIRBGO_RATE_LIMIT": "-1",
		"FIRBGO_RATE_BURST": "0",
	} {
		_, err := AppConfigFromEnv(envMap(map[string]string{key: value}))
		assert.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadAppConfig_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FIRBGO_RATE_BURST=7\n"), 0o600))
	t.Setenv("FIRBGO_RATE_BURST", "")
	require.NoError(t, os.Unsetenv("FIRBGO_RATE_BURST"))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RateBurst)
}

func TestLoadAppConfig_MissingFileIsFine(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
