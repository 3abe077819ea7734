package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultDir is the per-project configuration directory.
const DefaultDir = ".planweaver"

// Config holds all planweaver configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Rendering of the resolved invocation
	Output OutputConfig `yaml:"output"`

	// Presets are default flag values applied when the flag is not given on the command
	// line. Keys are long flag names.
	Presets map[string]string `yaml:"presets,omitempty"`
}

// OutputConfig configures how the resolved invocation is written.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json, yaml
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// DefaultPath returns the config file path, honouring PLANWEAVER_CONFIG.
func DefaultPath() string {
	if path := os.Getenv("PLANWEAVER_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(DefaultDir, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the defaults. The
// document is checked against the embedded schema before it is decoded.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if doc != nil {
		if err := validateDocument(doc); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("PLANWEAVER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("PLANWEAVER_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if output := os.Getenv("PLANWEAVER_OUTPUT"); output != "" {
		c.Output.Format = output
	}
}

// ValidOutputFormats lists the supported handoff encodings.
var ValidOutputFormats = []string{"text", "json", "yaml"}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted log encodings.
var ValidLogFormats = []string{"console", "json"}

// Validate checks values that may have come from the environment rather than the file.
func (c *Config) Validate() error {
	if !slices.Contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !slices.Contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	if !slices.Contains(ValidOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidOutputFormats)
	}
	return nil
}
