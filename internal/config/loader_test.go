package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range []string{
		"SCAMRADAR_CONFIG",
		"SCAMRADAR_ADDR",
		"SCAMRADAR_LOG_LEVEL",
		"SCAMRADAR_HISTORY_SIZE",
		"SCAMRADAR_MODEL_DIR",
		"SCAMRADAR_CACHE_TTL",
		"SCAMRADAR_IP_LIMIT_PER_MINUTE",
		"SCAMRADAR_MAX_DESCRIPTION_LENGTH",
	} {
		os.Unsetenv(envVar)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.IPLimitPerMinute)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SCAMRADAR_ADDR", ":9090")
	t.Setenv("SCAMRADAR_HISTORY_SIZE", "250")
	t.Setenv("SCAMRADAR_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 250, cfg.HistorySize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAMLFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":7070\"\nlog_level: debug\nip_limit_per_minute: 10\n",
	), 0o644))
	t.Setenv("SCAMRADAR_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.IPLimitPerMinute)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644))
	t.Setenv("SCAMRADAR_CONFIG", path)
	t.Setenv("SCAMRADAR_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoadValidation(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SCAMRADAR_ADDR", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "addr must not be empty")
}

func TestLoadMissingFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SCAMRADAR_CONFIG", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
}
