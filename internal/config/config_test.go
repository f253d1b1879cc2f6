package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesWebClientConstants(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 180, cfg.IdleGraceSeconds)
	assert.Equal(t, 5, cfg.IdleGraceDelaySeconds)
	assert.Equal(t, 1, cfg.TickSeconds)
	assert.Equal(t, 10, cfg.IdlePollSeconds)
	assert.Equal(t, 60, cfg.ActivityLogSeconds)
	assert.Equal(t, 10, cfg.MinimumWorkSeconds)
	assert.Equal(t, "5.00", cfg.HourlyRate)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().APIEndpoint, cfg.APIEndpoint)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuspro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_endpoint: http://tracker.local:8080/\nidle_grace_seconds: 120\nlanguage: tr\n"), 0o600))

	t.Setenv("FOCUSPRO_IDLE_GRACE_SECONDS", "90")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://tracker.local:8080", cfg.APIEndpoint, "trailing slash trimmed")
	assert.Equal(t, 90, cfg.IdleGraceSeconds, "env wins over file")
	assert.Equal(t, "tr", cfg.Language)
}

func TestLoad_InvalidIntervalsFallBack(t *testing.T) {
	t.Setenv("FOCUSPRO_TICK_SECONDS", "0")
	t.Setenv("FOCUSPRO_IDLE_POLL_SECONDS", "-4")
	t.Setenv("FOCUSPRO_REQUEST_TIMEOUT_MS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.TickSeconds)
	assert.Equal(t, 10, cfg.IdlePollSeconds)
	assert.Equal(t, 10000, cfg.RequestTimeoutMs)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuspro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_endpoint: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
