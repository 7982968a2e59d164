// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the snapctl command tree. Every command maps
// onto one or two operations of the snapd client in lib/snapd and
// shares the connection flags defined in connection.go.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/version"
)

// Environment holds the process streams commands read from and write
// to. Tests substitute buffers.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessEnvironment returns the environment bound to the process's
// standard streams.
func ProcessEnvironment() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Root builds and returns the complete snapctl command tree.
func Root(env *Environment) *cli.Command {
	return &cli.Command{
		Name: "snapctl",
		Description: `snapctl: a client for the snapd control API.

Talks to the snap daemon over its local Unix socket to list, install,
refresh, and remove snaps, manage their configuration, inspect changes,
connect interfaces, and control services.`,
		HelpOutput: env.Stderr,
		Subcommands: []*cli.Command{
			loginCommand(env),
			logoutCommand(env),
			whoamiCommand(env),
			listCommand(env),
			infoCommand(env),
			modifyCommand(env, modifySpec{
				action:  "install",
				summary: "Install a snap",
				flags:   modifyChannel | modifyConfinement,
			}),
			modifyCommand(env, modifySpec{
				action:  "remove",
				summary: "Remove a snap",
			}),
			modifyCommand(env, modifySpec{
				action:  "switch",
				summary: "Switch the channel a snap tracks",
				flags:   modifyChannel,
			}),
			modifyCommand(env, modifySpec{
				action:  "refresh",
				summary: "Refresh a snap to the latest revision in its channel",
				flags:   modifyChannel | modifyConfinement,
			}),
			modifyCommand(env, modifySpec{
				action:  "revert",
				summary: "Revert a snap to its previous revision",
				flags:   modifyVersion | modifyConfinement,
			}),
			modifyCommand(env, modifySpec{
				action:  "enable",
				summary: "Enable a disabled snap",
			}),
			modifyCommand(env, modifySpec{
				action:  "disable",
				summary: "Disable a snap without removing it",
			}),
			getCommand(env),
			setCommand(env),
			changesCommand(env),
			changeCommand(env),
			abortCommand(env),
			interfacesCommand(env),
			interfaceCommand(env, "connect", "Connect a plug to a slot"),
			interfaceCommand(env, "disconnect", "Disconnect a plug from a slot"),
			appsCommand(env, "start", "Start services"),
			appsCommand(env, "stop", "Stop services"),
			appsCommand(env, "restart", "Restart services"),
			{
				Name:    "version",
				Summary: "Print version information",
				Usage:   "snapctl version",
				Run: func(_ context.Context, args []string) error {
					env.printf("snapctl %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
