// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

type listParams struct {
	connectionParams
	cli.JSONOutput
}

func listCommand(env *Environment) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List installed snaps",
		Usage:   "snapctl list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 0, 0, "snapctl list"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "list")
			if err != nil {
				return err
			}
			snaps, err := session.client.Snaps(ctx)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, snaps); done {
				return err
			}

			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "Name\tVersion\tRev\tTracking\tPublisher\tNotes")
			for _, snap := range snaps {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					snap.Name,
					snap.Version,
					snap.Revision,
					dash(tracking(snap)),
					dash(publisherName(snap)),
					dash(notes(snap)),
				)
			}
			return writer.Flush()
		},
	}
}

func tracking(snap snapd.Snap) string {
	if snap.TrackingChannel != "" {
		return snap.TrackingChannel
	}
	return snap.Channel
}

func publisherName(snap snapd.Snap) string {
	if snap.Publisher != nil {
		return snap.Publisher.Username
	}
	return snap.Developer
}

// notes summarizes the snap's confinement and state flags.
func notes(snap snapd.Snap) string {
	var flags []string
	if snap.Confinement == "classic" {
		flags = append(flags, "classic")
	}
	if snap.DevMode {
		flags = append(flags, "devmode")
	}
	if snap.JailMode {
		flags = append(flags, "jailmode")
	}
	if snap.TryMode {
		flags = append(flags, "try")
	}
	if snap.Status != "" && snap.Status != "active" {
		flags = append(flags, snap.Status)
	}
	return strings.Join(flags, ",")
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

type infoParams struct {
	connectionParams
	cli.JSONOutput
}

func infoCommand(env *Environment) *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Show details of an installed snap",
		Description: `Show details of an installed snap. With --json the daemon's result
object is printed unmodified, including fields this client does not
model.`,
		Usage: "snapctl info <snap> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 1, "snapctl info <snap>"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "info")
			if err != nil {
				return err
			}

			if params.OutputJSON {
				raw, err := session.client.InfoRaw(ctx, args[0])
				if err != nil {
					return err
				}
				var indented bytes.Buffer
				if err := json.Indent(&indented, raw, "", "  "); err != nil {
					return cli.Internal("formatting result: %w", err)
				}
				indented.WriteByte('\n')
				_, err = env.Stdout.Write(indented.Bytes())
				return err
			}

			snap, err := session.client.Info(ctx, args[0])
			if err != nil {
				return err
			}
			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 1, ' ', 0)
			fmt.Fprintf(writer, "name:\t%s\n", snap.Name)
			fmt.Fprintf(writer, "summary:\t%s\n", snap.Summary)
			fmt.Fprintf(writer, "publisher:\t%s\n", dash(publisherName(*snap)))
			fmt.Fprintf(writer, "version:\t%s\n", snap.Version)
			fmt.Fprintf(writer, "revision:\t%s\n", snap.Revision)
			fmt.Fprintf(writer, "tracking:\t%s\n", dash(tracking(*snap)))
			fmt.Fprintf(writer, "confinement:\t%s\n", snap.Confinement)
			if snap.InstallDate != nil {
				fmt.Fprintf(writer, "installed:\t%s\n", snap.InstallDate.Format("2006-01-02"))
			}
			for _, app := range snap.Apps {
				if app.Daemon != "" {
					fmt.Fprintf(writer, "service:\t%s.%s (%s)\n", snap.Name, app.Name, app.Daemon)
				} else {
					fmt.Fprintf(writer, "command:\t%s.%s\n", snap.Name, app.Name)
				}
			}
			return writer.Flush()
		},
	}
}
