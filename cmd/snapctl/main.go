// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// snapctl is a command-line client for the snapd control API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/cmd/snapctl/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own outcome (like "change" on a
		// failed change) return an ExitError with the desired code.
		// Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.Classify(err).ExitCode())
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.ProcessEnvironment()).Execute(ctx, os.Args[1:])
}
