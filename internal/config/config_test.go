package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside-go/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.pitchside.app", cfg.BackendURL)
	require.Equal(t, "http://localhost:5000", cfg.AnalyzerURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5*time.Minute, cfg.UploadTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "token", filepath.Base(cfg.TokenPath))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PITCHSIDE_API_URL", "https://staging.pitchside.app")
	t.Setenv("PITCHSIDE_ANALYZER_URL", "http://192.168.1.13:5000")
	t.Setenv("PITCHSIDE_TIMEOUT", "10s")
	t.Setenv("PITCHSIDE_TOKEN_PATH", "/tmp/pitchside-token")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "https://staging.pitchside.app", cfg.BackendURL)
	require.Equal(t, "http://192.168.1.13:5000", cfg.AnalyzerURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/pitchside-token", cfg.TokenPath)
}
