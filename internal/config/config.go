// Package config loads CrackLeaf's optional settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// <UserConfigDir>/crackleaf/config.yaml, and CRACKLEAF_* environment variables.
// A missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvQPDF      = "CRACKLEAF_QPDF"
	EnvOutputDir = "CRACKLEAF_OUTPUT_DIR"
	EnvAssets    = "CRACKLEAF_ASSETS"
	EnvLog       = "CRACKLEAF_LOG"
)

const (
	DefaultFrameIntervalMS = 150
	minFrameIntervalMS     = 16
)

// Config holds user-tunable settings.
type Config struct {
	QPDFPath        string `yaml:"qpdf_path"`         // Explicit tool path, skips discovery
	OutputDir       string `yaml:"output_dir"`        // Replaces the Downloads folder
	AssetsDir       string `yaml:"assets_dir"`        // Replaces the assets search
	LogLevel        string `yaml:"log_level"`         // debug, info, warn, error; empty = off
	LogFile         string `yaml:"log_file"`          // Log destination, stderr when empty
	FrameIntervalMS int    `yaml:"frame_interval_ms"` // Animation tick
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{FrameIntervalMS: DefaultFrameIntervalMS}
}

// FrameInterval returns the animation tick as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "crackleaf", "config.yaml"), nil
}

// Load reads the default config file and applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv(os.Getenv)
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

// LoadFile reads configuration from a specific file path.
// If the file doesn't exist, defaults plus environment overrides are returned.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		cfg.merge(&fileCfg)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// merge copies every non-zero field of other into c.
func (c *Config) merge(other *Config) {
	if other.QPDFPath != "" {
		c.QPDFPath = other.QPDFPath
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.AssetsDir != "" {
		c.AssetsDir = other.AssetsDir
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.FrameIntervalMS != 0 {
		c.FrameIntervalMS = other.FrameIntervalMS
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvQPDF)); v != "" {
		c.QPDFPath = v
	}
	if v := strings.TrimSpace(getenv(EnvOutputDir)); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(getenv(EnvAssets)); v != "" {
		c.AssetsDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLog)); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	if c.FrameIntervalMS < minFrameIntervalMS {
		return fmt.Errorf("frame_interval_ms must be at least %d, got %d", minFrameIntervalMS, c.FrameIntervalMS)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("output_dir %s is not a directory", c.OutputDir)
		}
	}
	return nil
}
