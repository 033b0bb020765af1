package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Madison-Country-Day-School/id-gen/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // IDGEN_CONFIG: config file path
	Templates  string        // IDGEN_TEMPLATES: template directory
	Data       string        // IDGEN_DATA: roster file
	Images     string        // IDGEN_IMAGES: photo directory
	Out        string        // IDGEN_OUT: output directory
	PhotoExt   string        // IDGEN_PHOTO_EXT: photo file extension
	Workers    int           // IDGEN_WORKERS: parallel workers
	Timeout    time.Duration // IDGEN_TIMEOUT: per-page rendering timeout
}

// knownEnvVars lists valid IDGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"IDGEN_CONFIG":    true,
	"IDGEN_TEMPLATES": true,
	"IDGEN_DATA":      true,
	"IDGEN_IMAGES":    true,
	"IDGEN_OUT":       true,
	"IDGEN_PHOTO_EXT": true,
	"IDGEN_WORKERS":   true,
	"IDGEN_TIMEOUT":   true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("IDGEN_CONFIG"),
		Templates:  os.Getenv("IDGEN_TEMPLATES"),
		Data:       os.Getenv("IDGEN_DATA"),
		Images:     os.Getenv("IDGEN_IMAGES"),
		Out:        os.Getenv("IDGEN_OUT"),
		PhotoExt:   os.Getenv("IDGEN_PHOTO_EXT"),
	}

	if timeout := os.Getenv("IDGEN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("IDGEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized IDGEN_* variables.
// Helps catch typos like IDGEN_TEMPLATE instead of IDGEN_TEMPLATES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "IDGEN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Templates != "" && cfg.Paths.Templates == "" {
		cfg.Paths.Templates = env.Templates
	}
	if env.Data != "" && cfg.Paths.Data == "" {
		cfg.Paths.Data = env.Data
	}
	if env.Images != "" && cfg.Paths.Images == "" {
		cfg.Paths.Images = env.Images
	}
	if env.Out != "" && cfg.Paths.Out == "" {
		cfg.Paths.Out = env.Out
	}
	if env.PhotoExt != "" && cfg.Photos.Ext == "" {
		cfg.Photos.Ext = env.PhotoExt
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}
}
