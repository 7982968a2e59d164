// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file for Load.
const EnvironmentVariable = "SNAPCTL_CONFIG"

// Environment variables that override individual settings after the
// file is applied.
const (
	SocketEnvironment   = "SNAPD_SOCKET"
	AuthFileEnvironment = "SNAPD_AUTH_FILE"
)

// Config is the client configuration.
type Config struct {
	// Daemon configures how the daemon is reached.
	Daemon DaemonConfig `yaml:"daemon"`

	// Auth configures where credentials are stored.
	Auth AuthConfig `yaml:"auth"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// DaemonConfig configures the daemon connection.
type DaemonConfig struct {
	// SocketPath is the Unix socket the daemon listens on.
	// Default: /run/snapd.socket
	SocketPath string `yaml:"socket_path"`
}

// AuthConfig configures credential storage.
type AuthConfig struct {
	// File is the JSON auth file written by login and read by
	// authenticated operations.
	// Default: ${HOME}/.snap/auth.json
	File string `yaml:"file"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// Format is one of auto, text, json. "auto" picks text when stderr
	// is a terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Daemon: DaemonConfig{
			SocketPath: "/run/snapd.socket",
		},
		Auth: AuthConfig{
			File: "${HOME}/.snap/auth.json",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Load loads the file named by SNAPCTL_CONFIG, or returns the expanded
// defaults when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironment()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path over the
// defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.applyEnvironment()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes path into c, rejecting unknown keys. An empty file
// leaves c unchanged.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvironment lets SNAPD_SOCKET and SNAPD_AUTH_FILE take
// precedence over the file and the defaults.
func (c *Config) applyEnvironment() {
	if socketPath := os.Getenv(SocketEnvironment); socketPath != "" {
		c.Daemon.SocketPath = socketPath
	}
	if authFile := os.Getenv(AuthFileEnvironment); authFile != "" {
		c.Auth.File = authFile
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": homeDirectory(),
	}
	c.Daemon.SocketPath = expandVars(c.Daemon.SocketPath, vars)
	c.Auth.File = expandVars(c.Auth.File, vars)
}

func homeDirectory() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the process environment.
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

	if c.Daemon.SocketPath == "" {
		errs = append(errs, fmt.Errorf("daemon.socket_path is required"))
	} else if !filepath.IsAbs(c.Daemon.SocketPath) {
		errs = append(errs, fmt.Errorf("daemon.socket_path must be absolute, got %q", c.Daemon.SocketPath))
	}

	if c.Auth.File == "" {
		errs = append(errs, fmt.Errorf("auth.file is required"))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, text, or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel returns the configured level. An invalid level (which
// Validate rejects) maps to warn.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be debug, info, warn, or error, got %q", name)
}
