// Package config loads SDK configuration from the environment.
//
// Two deployments of the same build must be able to target different
// backends, so every address lives in an environment variable rather
// than in code. A .env file is honoured when present, which keeps local
// development close to how the mobile builds were configured.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds every externally configurable knob of the SDK.
type Config struct {
	// BackendURL is the base URL of the primary REST backend.
	BackendURL string `env:"PITCHSIDE_API_URL" envDefault:"https://api.pitchside.app"`

	// AnalyzerURL is the base URL of the video analyzer service.
	// The analyzer is a separate deployment and never sees auth tokens.
	AnalyzerURL string `env:"PITCHSIDE_ANALYZER_URL" envDefault:"http://localhost:5000"`

	// RequestTimeout bounds ordinary JSON request/response calls.
	RequestTimeout time.Duration `env:"PITCHSIDE_TIMEOUT" envDefault:"30s"`

	// UploadTimeout bounds multipart video uploads, which can run long.
	UploadTimeout time.Duration `env:"PITCHSIDE_UPLOAD_TIMEOUT" envDefault:"5m"`

	// TokenPath is where the session token is persisted between runs.
	// Defaults to ~/.pitchside/token when unset.
	TokenPath string `env:"PITCHSIDE_TOKEN_PATH"`

	LogLevel string `env:"PITCHSIDE_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, preceded by a
// best-effort .env load. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] env.Parse")
	}

	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, errors.Wrap(err, "[config.Load] resolve home dir")
		}
		cfg.TokenPath = filepath.Join(home, ".pitchside", "token")
	}

	return cfg, nil
}
