// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "PASTEHOUSE_CONFIG"

// Config is the master configuration for the paste retrieval server.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
	Server  *ServerConfig  `yaml:"server,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// UploadDir is the flat directory pastes are stored in, one file
	// per identifier. Written by the uploader, read by this server.
	UploadDir string `yaml:"upload_dir"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Address is the TCP listen address.
	// Default: 127.0.0.1:8000
	Address string `yaml:"address"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout string `yaml:"shutdown_timeout"`

	// ReadHeaderTimeout bounds how long a client may take to send
	// request headers.
	// Default: 10s
	ReadHeaderTimeout string `yaml:"read_header_timeout"`

	// WriteTimeout bounds a whole response, including streaming a
	// large paste.
	// Default: 2m
	WriteTimeout string `yaml:"write_timeout"`

	// Compress enables gzip response compression for clients that
	// accept it.
	// Default: true
	Compress *bool `yaml:"compress,omitempty"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled serves /-/metrics on the main listener.
	// Default: true
	Enabled bool `yaml:"enabled"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
func Default() *Config {
	compress := true
	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			UploadDir: "${PASTEHOUSE_ROOT:-/var/lib/pastehouse}/upload",
		},
		Server: ServerConfig{
			Address:           "127.0.0.1:8000",
			ShutdownTimeout:   "10s",
			ReadHeaderTimeout: "10s",
			WriteTimeout:      "2m",
			Compress:          &compress,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from the PASTEHOUSE_CONFIG environment
// variable. There are no fallbacks: if the variable is not set, this
// fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your pastehouse.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values; the only expansion performed is
// ${VAR:-default} in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.Finalize()
	return cfg, nil
}

// Finalize applies environment overrides and expands path variables.
// LoadFile calls it; callers that build a Config from Default() and
// flags call it themselves.
func (c *Config) Finalize() {
	c.applyEnvironmentOverrides()
	c.expandVariables()
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil && overrides.Paths.UploadDir != "" {
		c.Paths.UploadDir = overrides.Paths.UploadDir
	}

	if overrides.Server != nil {
		if overrides.Server.Address != "" {
			c.Server.Address = overrides.Server.Address
		}
		if overrides.Server.ShutdownTimeout != "" {
			c.Server.ShutdownTimeout = overrides.Server.ShutdownTimeout
		}
		if overrides.Server.ReadHeaderTimeout != "" {
			c.Server.ReadHeaderTimeout = overrides.Server.ReadHeaderTimeout
		}
		if overrides.Server.WriteTimeout != "" {
			c.Server.WriteTimeout = overrides.Server.WriteTimeout
		}
		if overrides.Server.Compress != nil {
			c.Server.Compress = overrides.Server.Compress
		}
	}

	if overrides.Logging != nil && overrides.Logging.Level != "" {
		c.Logging.Level = overrides.Logging.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.UploadDir = filepath.Clean(expandVars(c.Paths.UploadDir, vars))
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.UploadDir == "" || c.Paths.UploadDir == "." {
		errs = append(errs, fmt.Errorf("paths.upload_dir is required"))
	}

	if c.Server.Address == "" {
		errs = append(errs, fmt.Errorf("server.address is required"))
	}

	durations := map[string]string{
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
	}
	for _, field := range []string{"server.shutdown_timeout", "server.read_header_timeout", "server.write_timeout"} {
		if value, err := time.ParseDuration(durations[field]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		} else if value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", field))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// ShutdownTimeout returns Server.ShutdownTimeout parsed. Call Validate
// first; an unparseable value yields zero.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout)
}

// ReadHeaderTimeout returns Server.ReadHeaderTimeout parsed.
func (c *Config) ReadHeaderTimeout() time.Duration {
	return parseDuration(c.Server.ReadHeaderTimeout)
}

// WriteTimeout returns Server.WriteTimeout parsed.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout)
}

// CompressResponses reports whether response compression is enabled.
func (c *Config) CompressResponses() bool {
	return c.Server.Compress == nil || *c.Server.Compress
}

func parseDuration(value string) time.Duration {
	duration, _ := time.ParseDuration(value)
	return duration
}
