package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docprep/internal/fileutil"
	"github.com/alnah/go-docprep/internal/pipeline"
	"github.com/alnah/go-docprep/internal/render"
	"github.com/alnah/go-docprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits.
const (
	MaxWorkers         = 256
	MaxUserAgentLength = 200
	MaxPrefixLength    = 255
	MaxFetchTimeout    = 5 * time.Minute
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// appDirName is the directory under os.UserConfigDir searched for named configs.
const appDirName = "go-docprep"

// Config holds all configuration for a preprocessing run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Stages  StagesConfig  `yaml:"stages"`
	Run     RunConfig     `yaml:"run"`
	Preview PreviewConfig `yaml:"preview"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig defines the input source.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no source_dir is given
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no output_dir is given
}

// AssetsConfig defines where localized images go.
type AssetsConfig struct {
	Prefix string `yaml:"prefix"` // Relative to the output dir, e.g. "_static/laravel"
}

// FetchConfig defines image download behavior.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "10s"
	MaxBytes  int64  `yaml:"maxBytes"`  // Per-image body cap
	UserAgent string `yaml:"userAgent"` // Sent with every request
}

// StagesConfig selects pipeline stages.
type StagesConfig struct {
	Skip []string `yaml:"skip"` // Stage names to leave out
}

// RunConfig defines how a directory run is scheduled.
type RunConfig struct {
	Workers    int  `yaml:"workers"`    // 0 = one per CPU
	CheckLinks bool `yaml:"checkLinks"` // Report dangling .md links after the run
}

// PreviewConfig defines HTML preview rendering.
type PreviewConfig struct {
	Profile   string `yaml:"profile"`   // "color" or "grayscale"
	Style     string `yaml:"style"`     // chroma style name, overrides the profile's
	AssetsDir string `yaml:"assetsDir"` // Directory overriding the embedded CSS and template
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{Prefix: pipeline.DefaultAssetPrefix},
		Fetch: FetchConfig{
			Timeout:   pipeline.DefaultFetchTimeout.String(),
			MaxBytes:  pipeline.DefaultMaxImageBytes,
			UserAgent: pipeline.DefaultUserAgent,
		},
		Run:     RunConfig{Workers: 1},
		Preview: PreviewConfig{Profile: render.ProfileColor},
		Log:     LogConfig{Format: LogFormatText},
	}
}

// FetchTimeout returns Fetch.Timeout parsed, or the default when empty.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Fetch.Timeout == "" {
		return pipeline.DefaultFetchTimeout, nil
	}
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidValue, err)
	}
	return d, nil
}

// Marshal returns c as YAML in the config file layout.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// Validate checks every field. Called by LoadConfig, and by the CLI after
// environment and flag overrides are merged.
func (c *Config) Validate() error {
	d, err := c.FetchTimeout()
	if err != nil {
		return err
	}
	if d <= 0 || d > MaxFetchTimeout {
		return fmt.Errorf("%w: fetch.timeout: must be between 0 and %s, got %s", ErrInvalidValue, MaxFetchTimeout, d)
	}
	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("%w: fetch.maxBytes: must not be negative, got %d", ErrInvalidValue, c.Fetch.MaxBytes)
	}
	if len(c.Fetch.UserAgent) > MaxUserAgentLength {
		return fmt.Errorf("%w: fetch.userAgent: %d chars, max %d", ErrInvalidValue, len(c.Fetch.UserAgent), MaxUserAgentLength)
	}

	if err := validatePrefix(c.Assets.Prefix); err != nil {
		return err
	}

	if err := pipeline.ValidateStageNames(c.Stages.Skip); err != nil {
		return fmt.Errorf("stages.skip: %w", err)
	}

	if c.Run.Workers < 0 || c.Run.Workers > MaxWorkers {
		return fmt.Errorf("%w: run.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Run.Workers)
	}

	if c.Preview.Profile != "" {
		if _, err := render.LookupProfile(c.Preview.Profile); err != nil {
			return fmt.Errorf("preview.profile: %w", err)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validatePrefix keeps the asset prefix relative and inside the output dir.
func validatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if len(prefix) > MaxPrefixLength {
		return fmt.Errorf("%w: assets.prefix: %d chars, max %d", ErrInvalidValue, len(prefix), MaxPrefixLength)
	}
	if strings.Contains(prefix, `\`) || path.IsAbs(prefix) || filepath.IsAbs(prefix) {
		return fmt.Errorf("%w: assets.prefix: %q must be a relative slash path", ErrInvalidValue, prefix)
	}
	clean := path.Clean(prefix)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: assets.prefix: %q escapes the output directory", ErrInvalidValue, prefix)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files a config name is looked up in, in order:
// name.yaml and name.yml in the current directory, then the same two under
// ~/.config/go-docprep/ (the platform's user config directory).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
