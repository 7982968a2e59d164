// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

// timeLayout formats change timestamps in tables.
const timeLayout = "2006-01-02T15:04:05Z07:00"

type changesParams struct {
	connectionParams
	cli.JSONOutput
}

func changesCommand(env *Environment) *cli.Command {
	var params changesParams

	return &cli.Command{
		Name:    "changes",
		Summary: "List recent changes",
		Usage:   "snapctl changes [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("changes", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 0, 0, "snapctl changes"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "changes")
			if err != nil {
				return err
			}
			status, err := session.client.Status(ctx, nil)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, status.Changes); done {
				return err
			}

			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tStatus\tSpawn\tReady\tSummary")
			for _, change := range status.Changes {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					change.ID,
					change.Status,
					formatTime(&change.SpawnTime),
					formatTime(change.ReadyTime),
					change.Summary,
				)
			}
			return writer.Flush()
		},
	}
}

func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "-"
	}
	return value.Format(timeLayout)
}

type changeParams struct {
	connectionParams
	cli.JSONOutput
}

func changeCommand(env *Environment) *cli.Command {
	var params changeParams

	return &cli.Command{
		Name:    "change",
		Summary: "Show the tasks of one change",
		Description: `Show the tasks of one change. Exits 1 when the change finished in
the Error state, so scripts can check the outcome of an earlier
install or refresh.`,
		Usage: "snapctl change <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("change", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 1, "snapctl change <id>"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "change")
			if err != nil {
				return err
			}
			id := args[0]
			status, err := session.client.Status(ctx, &id)
			if err != nil {
				return err
			}
			change := status.Change

			if done, err := params.EmitJSON(env.Stdout, change); done {
				if err == nil {
					err = changeOutcome(change)
				}
				return err
			}

			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "Status\tSpawn\tReady\tSummary")
			for _, task := range change.Tasks {
				summary := task.Summary
				if task.Progress.Total > 1 && task.Status == "Doing" {
					summary = fmt.Sprintf("%s (%d/%d)", summary, task.Progress.Done, task.Progress.Total)
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					task.Status,
					formatTime(&task.SpawnTime),
					formatTime(task.ReadyTime),
					summary,
				)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			if change.Err != "" {
				fmt.Fprintf(env.Stdout, "\nerror: %s\n", change.Err)
			}
			return changeOutcome(change)
		},
	}
}

// changeOutcome maps a finished change in the Error state to exit 1.
func changeOutcome(change *snapd.Change) error {
	if change.Ready && change.Status == "Error" {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

type abortParams struct {
	connectionParams
	cli.JSONOutput
}

func abortCommand(env *Environment) *cli.Command {
	var params abortParams

	return &cli.Command{
		Name:    "abort",
		Summary: "Abort a pending change",
		Usage:   "snapctl abort <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("abort", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 1, "snapctl abort <id>"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "abort")
			if err != nil {
				return err
			}
			change, err := session.client.Abort(ctx, args[0], nil)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, change); done {
				return err
			}
			env.printf("%s\t%s\t%s\n", change.ID, change.Status, change.Summary)
			return nil
		},
	}
}
