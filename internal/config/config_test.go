package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "pomodoro.db", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost:8000", cfg.Addr())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: 9000\njwt_secret: file-secret\ntimezone: UTC\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "file-secret", cfg.JWTSecret)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))

	t.Setenv("POMODORO_PORT", "9100")
	t.Setenv("POMODORO_JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	t.Setenv("POMODORO_PORT", "99999")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidateTimezone(t *testing.T) {
	cfg := Config{Timezone: "Not/AZone"}
	applyDefaults(&cfg)
	assert.Error(t, cfg.Validate())

	cfg.Timezone = "Europe/Moscow"
	assert.NoError(t, cfg.Validate())
}
