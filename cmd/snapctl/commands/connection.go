// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/config"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

// connectionParams are the flags every daemon-facing command accepts.
// Flags override the config file, which overrides the defaults.
type connectionParams struct {
	ConfigFile string `flag:"config" desc:"config file (default: $SNAPCTL_CONFIG)"`
	Socket     string `flag:"socket" desc:"snapd socket path (default: /run/snapd.socket or $SNAPD_SOCKET)"`
	AuthFile   string `flag:"auth-file" desc:"auth file path (default: ~/.snap/auth.json or $SNAPD_AUTH_FILE)"`
	LogLevel   string `flag:"log-level" desc:"log level: debug, info, warn, error"`
}

// session is a connected client plus the settings it was built from.
type session struct {
	client *snapd.Client
	config *config.Config
	logger *slog.Logger
}

// connect resolves configuration and builds a client for command.
func (env *Environment) connect(params *connectionParams, command string) (*session, error) {
	var cfg *config.Config
	var err error
	if params.ConfigFile != "" {
		cfg, err = config.LoadFile(params.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	if params.Socket != "" {
		cfg.Daemon.SocketPath = params.Socket
	}
	if params.AuthFile != "" {
		cfg.Auth.File = params.AuthFile
	}
	if params.LogLevel != "" {
		cfg.Log.Level = params.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}

	logger := cli.NewLogger(env.Stderr, cfg.SlogLevel(), cfg.Log.Format).With("command", command)
	logger.Debug("connecting to snapd",
		"socket", cfg.Daemon.SocketPath,
		"auth_file", cfg.Auth.File,
	)

	client := snapd.New(
		snapd.WithSocketPath(cfg.Daemon.SocketPath),
		snapd.WithAuthFile(cfg.Auth.File),
		snapd.WithLogger(logger),
	)
	return &session{client: client, config: cfg, logger: logger}, nil
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, minimum, maximum int, usage string) error {
	if len(args) < minimum || (maximum >= 0 && len(args) > maximum) {
		return cli.Validation("usage: %s", usage)
	}
	return nil
}

// printf writes to the environment's stdout.
func (env *Environment) printf(format string, args ...any) {
	fmt.Fprintf(env.Stdout, format, args...)
}
