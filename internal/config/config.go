// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gym-cost/internal/errors"
	"gym-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Catalog contains catalog source configuration
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Prompt contains interactive input configuration
	Prompt PromptConfig `json:"prompt" yaml:"prompt"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// CatalogConfig contains catalog-related settings
type CatalogConfig struct {
	// Path is a catalog file (.hcl, .yaml, .yml, .json). Empty uses the built-in catalog.
	Path string `json:"path" yaml:"path"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// NoColor disables ANSI colors in terminal output
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// PromptConfig contains interactive prompt settings
type PromptConfig struct {
	// MaxAttempts bounds how many times a single question is re-asked
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			NoColor:       false,
		},
		Prompt: PromptConfig{
			MaxAttempts: 3,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to parse config %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that have no sensible zero value
func (c *Config) Validate() error {
	if c.Prompt.MaxAttempts < 1 {
		return errors.Newf(errors.TypeConfig, "prompt.max_attempts must be at least 1, got %d", c.Prompt.MaxAttempts)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json", "markdown":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported output.default_format %q", c.Output.DefaultFormat)
	}
	return nil
}

// Marshal encodes the configuration in the format implied by path's extension
func (c *Config) Marshal(path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(c)
	}
	return json.MarshalIndent(c, "", "  ")
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.Marshal(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
