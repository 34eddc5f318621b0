// Package config provides configuration management for srcmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for srcmd.
type Config struct {
	// Scan configures entry filtering.
	Scan ScanConfig `yaml:"scan"`

	// Output configures the rendered document.
	Output OutputConfig `yaml:"output"`

	// UI configures the interactive picker.
	UI UIConfig `yaml:"ui"`
}

// ScanConfig configures which entries survive the walk.
type ScanConfig struct {
	Extensions     []string `yaml:"extensions"`
	IgnoreDirs     []string `yaml:"ignore_dirs"`
	IgnoreFiles    []string `yaml:"ignore_files"`
	IgnorePatterns []string `yaml:"ignore_patterns"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
}

// OutputConfig configures the rendered document.
type OutputConfig struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// UIConfig configures the interactive picker behavior.
type UIConfig struct {
	Theme       string            `yaml:"theme"`
	CustomTheme map[string]string `yaml:"custom_theme,omitempty"`
}

// Load loads configuration from the specified path. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the specified path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".srcmd", "config.yaml")
	}
	return filepath.Join(home, ".srcmd", "config.yaml")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must not be empty")
	}
	return c.UI.ValidateTheme()
}

// ValidateTheme checks if the theme configuration is valid.
func (c *UIConfig) ValidateTheme() error {
	if c.Theme == "" {
		c.Theme = "default"
	}

	if c.Theme != "default" && len(c.CustomTheme) > 0 {
		required := []string{"background", "foreground", "selection", "status"}
		for _, color := range required {
			if _, ok := c.CustomTheme[color]; !ok {
				return fmt.Errorf("custom theme missing required color: %s", color)
			}
		}
	}
	return nil
}
