// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// clearOverrides unsets the per-setting environment overrides so the
// host environment cannot leak into a test.
func clearOverrides(t *testing.T) {
	t.Helper()
	t.Setenv(SocketEnvironment, "")
	t.Setenv(AuthFileEnvironment, "")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Daemon.SocketPath != "/run/snapd.socket" {
		t.Errorf("expected socket_path=/run/snapd.socket, got %s", cfg.Daemon.SocketPath)
	}
	if cfg.Auth.File != "${HOME}/.snap/auth.json" {
		t.Errorf("expected unexpanded auth file, got %s", cfg.Auth.File)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level=warn, got %s", cfg.Log.Level)
	}
}

func TestLoad_WithoutConfigUsesDefaults(t *testing.T) {
	clearOverrides(t)
	t.Setenv(EnvironmentVariable, "")
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Auth.File != "/home/tester/.snap/auth.json" {
		t.Errorf("auth file = %s, want /home/tester/.snap/auth.json", cfg.Auth.File)
	}
	if cfg.Daemon.SocketPath != "/run/snapd.socket" {
		t.Errorf("socket_path = %s, want default", cfg.Daemon.SocketPath)
	}
}

func TestLoad_WithConfigVariable(t *testing.T) {
	clearOverrides(t)
	path := writeConfig(t, `
daemon:
  socket_path: /tmp/snapd-test.socket
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Daemon.SocketPath != "/tmp/snapd-test.socket" {
		t.Errorf("socket_path = %s, want /tmp/snapd-test.socket", cfg.Daemon.SocketPath)
	}
	if cfg.Log.Format != "auto" {
		t.Errorf("format = %s, want default auto", cfg.Log.Format)
	}
}

func TestLoadFile(t *testing.T) {
	clearOverrides(t)
	t.Setenv("HOME", "/home/tester")
	path := writeConfig(t, `
daemon:
  socket_path: /var/run/custom.socket

auth:
  file: ${HOME}/.config/snapctl/auth.json

log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Daemon.SocketPath != "/var/run/custom.socket" {
		t.Errorf("socket_path = %s", cfg.Daemon.SocketPath)
	}
	if cfg.Auth.File != "/home/tester/.config/snapctl/auth.json" {
		t.Errorf("auth file = %s", cfg.Auth.File)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format = %s, want json", cfg.Log.Format)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
daemon:
  socket_path: /tmp/from-file.socket
auth:
  file: /tmp/from-file.json
`)
	t.Setenv(EnvironmentVariable, path)
	t.Setenv(SocketEnvironment, "/tmp/from-env.socket")
	t.Setenv(AuthFileEnvironment, "/tmp/from-env.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Daemon.SocketPath != "/tmp/from-env.socket" {
		t.Errorf("socket_path = %s, want the SNAPD_SOCKET value", cfg.Daemon.SocketPath)
	}
	if cfg.Auth.File != "/tmp/from-env.json" {
		t.Errorf("auth file = %s, want the SNAPD_AUTH_FILE value", cfg.Auth.File)
	}
}

func TestLoad_RelativeSocketFromEnvironment(t *testing.T) {
	t.Setenv(EnvironmentVariable, writeConfig(t, ""))
	t.Setenv(SocketEnvironment, "relative.socket")
	t.Setenv(AuthFileEnvironment, "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "must be absolute") {
		t.Fatalf("Load() error = %v, want absolute path failure", err)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed on empty file: %v", err)
	}
	if cfg.Daemon.SocketPath != "/run/snapd.socket" {
		t.Errorf("socket_path = %s, want default", cfg.Daemon.SocketPath)
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
daemon:
  socket: /run/snapd.socket
`)

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "socket") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("SNAPCTL_TEST_VAR", "from-env")

	tests := []struct {
		input string
		vars  map[string]string
		want  string
	}{
		{"${HOME}/x", map[string]string{"HOME": "/h"}, "/h/x"},
		{"${SNAPCTL_TEST_VAR}", nil, "from-env"},
		{"${SNAPCTL_UNSET_VAR:-fallback}", nil, "fallback"},
		{"${SNAPCTL_UNSET_VAR}", nil, ""},
		{"/plain/path", nil, "/plain/path"},
	}

	for _, test := range tests {
		if got := expandVars(test.input, test.vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "relative socket",
			mutate:  func(c *Config) { c.Daemon.SocketPath = "snapd.socket" },
			wantErr: "must be absolute",
		},
		{
			name:    "empty auth file",
			mutate:  func(c *Config) { c.Auth.File = "" },
			wantErr: "auth.file is required",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}
