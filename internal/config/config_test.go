package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"GIN_MODE", "DB_DIALECT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_DSN", "REDIS_HOST", "REDIS_PORT", "SESSION_SECRET",
		"OPENAI_API_KEY", "OPENAI_MODEL", "LOG_LEVEL", "LOG_ENCODING",
		"SCHEDULING_ZONE", "METRICS_ENABLED", "DEFAULT_WINDOW_START_MINUTES",
		"DEFAULT_WINDOW_END_MINUTES",
	}
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "sqlite", cfg.DBDialect)
	assert.Equal(t, "UTC", cfg.SchedulingZone)
	assert.Equal(t, 9*60, cfg.DefaultWindowStartMinutes)
	assert.Equal(t, 17*60, cfg.DefaultWindowEndMinutes)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_ReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "release")
	t.Setenv("DB_DIALECT", "postgres")
	t.Setenv("SCHEDULING_ZONE", "America/New_York")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "postgres", cfg.DBDialect)
	assert.Equal(t, "America/New_York", cfg.SchedulingZone)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_RejectsInvalidSchedulingZone(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULING_ZONE", "Not/AZone")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonIntegerWindowMinutes(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_WINDOW_START_MINUTES", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestLocation_ResolvesConfiguredZone(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULING_ZONE", "Asia/Tokyo")
	cfg, err := Load()
	require.NoError(t, err)
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}
