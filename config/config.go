// Package config provides configuration loading and management for hilbert.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete hilbert configuration
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Verify  VerifyConfig  `yaml:"verify"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn or error (default: info)
	Level string `yaml:"level"`
}

// VerifyConfig configures proof verification
type VerifyConfig struct {
	// Parallelism is the number of proof files checked at the same time (default: number of CPUs)
	Parallelism int `yaml:"parallelism"`
	// Explain prints a diagnostic for each invalid line (default: true)
	Explain *bool `yaml:"explain,omitempty"`
	// Patterns are the glob patterns used when no file is given on the command line
	Patterns []string `yaml:"patterns"`
	// Timeout bounds the time spent checking a single proof file (0 = no limit)
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig configures metrics reporting
type MetricsConfig struct {
	// Enabled prints a summary of the collected metrics after verification
	Enabled bool `yaml:"enabled"`
}

// DefaultPattern matches proof files in any subdirectory.
const DefaultPattern = "**/*.proof.yaml"

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	explain := true
	return &Config{
		Log: LogConfig{Level: "info"},
		Verify: VerifyConfig{
			Parallelism: runtime.NumCPU(),
			Explain:     &explain,
			Patterns:    []string{DefaultPattern},
		},
	}
}

// ExplainEnabled returns true iff invalid proofs should be explained.
func (c *Config) ExplainEnabled() bool {
	return c.Verify.Explain == nil || *c.Verify.Explain
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel returns the slog level with the given name.
func ParseLevel(name string) (slog.Level, error) {
	l, ok := levels[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Verify.Parallelism <= 0 {
		return fmt.Errorf("verify.parallelism must be positive")
	}
	if c.Verify.Timeout < 0 {
		return fmt.Errorf("verify.timeout cannot be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
// Fields absent from the file are left to their zero value.
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
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
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
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Verify.Parallelism != 0 {
		c.Verify.Parallelism = other.Verify.Parallelism
	}
	if other.Verify.Explain != nil {
		explain := *other.Verify.Explain
		c.Verify.Explain = &explain
	}
	if len(other.Verify.Patterns) > 0 {
		c.Verify.Patterns = other.Verify.Patterns
	}
	if other.Verify.Timeout != 0 {
		c.Verify.Timeout = other.Verify.Timeout
	}
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}
}
