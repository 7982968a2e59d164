// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for CLI command operations
// writing to w, normally the process's stderr. format is "text",
// "json", or "auto". Auto uses slog.TextHandler when w is a terminal
// and slog.JSONHandler when it is piped or redirected (CI, scripts,
// tests).
//
//	logger := cli.NewLogger(env.Stderr, cfg.SlogLevel(), cfg.Log.Format).With(
//	    "command", "install",
//	)
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	file, isFile := w.(*os.File)
	return newLogger(w, level, format, isFile && term.IsTerminal(int(file.Fd())))
}

func newLogger(w io.Writer, level slog.Level, format string, terminal bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options))
	case "json":
		return slog.New(slog.NewJSONHandler(w, options))
	}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
