// Package config provides configuration loading and management for recordlint.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/recordlint/export"
	"github.com/c360studio/recordlint/validation"
)

// Config represents the complete recordlint configuration
type Config struct {
	// Root is the directory linted (auto-detected from git if empty)
	Root string `yaml:"root"`
	// Include lists doublestar patterns of files to lint, relative to Root
	Include []string `yaml:"include"`
	// Exclude lists doublestar patterns removed from Include matches
	Exclude []string `yaml:"exclude"`
	// FailOn is the lowest severity that fails a run (error, warning, info)
	FailOn string `yaml:"fail_on"`
	// Format is the report format (text, markdown, jsonl, json)
	Format string `yaml:"format"`

	RunLog  RunLogConfig  `yaml:"run_log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// RunLogConfig configures the append-only run log
type RunLogConfig struct {
	// Path is relative to Root unless absolute
	Path string `yaml:"path"`
	// Enabled turns the run log on or off (nil = default)
	Enabled *bool `yaml:"enabled"`
}

// MetricsConfig configures the Prometheus textfile output
type MetricsConfig struct {
	// Path of the textfile to write (empty = disabled)
	Path string `yaml:"path"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait for changes to settle before re-linting
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		Root:    "", // Auto-detect
		Include: []string{"**/*.md"},
		Exclude: []string{".git/**", "node_modules/**"},
		FailOn:  validation.SeverityError.String(),
		Format:  string(export.FormatText),
		RunLog: RunLogConfig{
			Path:    ".recordlint/runs.jsonl",
			Enabled: &enabled,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Include) == 0 {
		return errors.New("include must list at least one pattern")
	}
	if _, err := c.FailOnSeverity(); err != nil {
		return fmt.Errorf("fail_on: %w", err)
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	return nil
}

// FailOnSeverity returns FailOn as a severity.
func (c *Config) FailOnSeverity() (validation.Severity, error) {
	return validation.ParseSeverity(c.FailOn)
}

// RunLogEnabled reports whether runs are recorded.
func (c *Config) RunLogEnabled() bool {
	return c.RunLog.Enabled == nil || *c.RunLog.Enabled
}

// RunLogPath returns the run log path resolved against Root.
func (c *Config) RunLogPath() string {
	return c.resolve(c.RunLog.Path)
}

// MetricsPath returns the metrics textfile path resolved against Root, or "".
func (c *Config) MetricsPath() string {
	if c.Metrics.Path == "" {
		return ""
	}
	return c.resolve(c.Metrics.Path)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Root == "" {
		return path
	}
	return filepath.Join(c.Root, path)
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Root != "" {
		c.Root = other.Root
	}
	if len(other.Include) > 0 {
		c.Include = other.Include
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.FailOn != "" {
		c.FailOn = other.FailOn
	}
	if other.Format != "" {
		c.Format = other.Format
	}

	// Run log
	if other.RunLog.Path != "" {
		c.RunLog.Path = other.RunLog.Path
	}
	if other.RunLog.Enabled != nil {
		enabled := *other.RunLog.Enabled
		c.RunLog.Enabled = &enabled
	}

	// Metrics
	if other.Metrics.Path != "" {
		c.Metrics.Path = other.Metrics.Path
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
