package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-docprep/internal/config"
)

// envPrefix starts every variable the CLI reads.
const envPrefix = "DOCPREP_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOCPREP_CONFIG: config file name or path
	InputDir   string // DOCPREP_INPUT_DIR: default source directory
	OutputDir  string // DOCPREP_OUTPUT_DIR: default output directory
	Timeout    string // DOCPREP_TIMEOUT: per-image download timeout
	Workers    int    // DOCPREP_WORKERS: parallel workers, -1 when unset
	Profile    string // DOCPREP_PROFILE: preview profile, color or grayscale
	LogFormat  string // DOCPREP_LOG_FORMAT: text or json
}

// knownEnvVars lists valid DOCPREP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCPREP_CONFIG":     true,
	"DOCPREP_INPUT_DIR":  true,
	"DOCPREP_OUTPUT_DIR": true,
	"DOCPREP_TIMEOUT":    true,
	"DOCPREP_WORKERS":    true,
	"DOCPREP_PROFILE":    true,
	"DOCPREP_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable DOCPREP_WORKERS is reported on w and ignored.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCPREP_CONFIG"),
		InputDir:   os.Getenv("DOCPREP_INPUT_DIR"),
		OutputDir:  os.Getenv("DOCPREP_OUTPUT_DIR"),
		Timeout:    os.Getenv("DOCPREP_TIMEOUT"),
		Workers:    -1,
		Profile:    os.Getenv("DOCPREP_PROFILE"),
		LogFormat:  os.Getenv("DOCPREP_LOG_FORMAT"),
	}

	if workers := os.Getenv("DOCPREP_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 0 {
			fmt.Fprintf(w, "warning: ignoring DOCPREP_WORKERS=%q (want a number >= 0)\n", workers)
		} else {
			cfg.Workers = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCPREP_* variables.
// Helps catch typos like DOCPREP_WORKER instead of DOCPREP_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the set variables.
// CLI flags are applied afterwards by the command, giving:
// CLI flags > env vars > config file > defaults.
// The timeout is copied as written; cfg.Validate reports a bad duration.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout != "" {
		cfg.Fetch.Timeout = env.Timeout
	}
	if env.Workers >= 0 {
		cfg.Run.Workers = env.Workers
	}
	if env.Profile != "" {
		cfg.Preview.Profile = env.Profile
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
