// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

type interfacesParams struct {
	connectionParams
	cli.JSONOutput
}

func interfacesCommand(env *Environment) *cli.Command {
	var params interfacesParams

	return &cli.Command{
		Name:    "interfaces",
		Summary: "List interface slots and the plugs connected to them",
		Usage:   "snapctl interfaces [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("interfaces", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 0, 0, "snapctl interfaces"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "interfaces")
			if err != nil {
				return err
			}
			interfaces, err := session.client.Interfaces(ctx, nil)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, interfaces); done {
				return err
			}

			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "Slot\tPlug")
			for _, slot := range interfaces.Slots {
				var plugs []string
				for _, plug := range slot.Connections {
					plugs = append(plugs, plug.Snap+":"+plug.Plug)
				}
				fmt.Fprintf(writer, "%s:%s\t%s\n", slot.Snap, slot.Name, dash(strings.Join(plugs, ",")))
			}
			for _, plug := range interfaces.Plugs {
				if len(plug.Connections) == 0 {
					fmt.Fprintf(writer, "-\t%s:%s\n", plug.Snap, plug.Name)
				}
			}
			return writer.Flush()
		},
	}
}

type interfaceParams struct {
	connectionParams
	cli.JSONOutput
}

func interfaceCommand(env *Environment, action, summary string) *cli.Command {
	var params interfaceParams
	usage := "snapctl " + action + " <snap>:<plug> [<snap>[:<slot>]] [flags]"

	return &cli.Command{
		Name:    action,
		Summary: summary,
		Description: summary + `.

The slot may be omitted or given without a slot name; the daemon then
picks the matching slot.`,
		Usage: usage,
		Examples: []cli.Example{
			{
				Description: summary,
				Command:     "snapctl " + action + " hello:camera core:camera",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(action, &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 2, usage); err != nil {
				return err
			}
			plug, err := parsePlug(args[0])
			if err != nil {
				return err
			}
			var slot snapd.SlotRef
			if len(args) == 2 {
				slot.Snap, slot.Slot, _ = strings.Cut(args[1], ":")
			}

			session, err := env.connect(&params.connectionParams, action)
			if err != nil {
				return err
			}
			change, err := session.client.ModifyInterface(ctx, action, slot, plug, nil)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, changeOutput{Change: change}); done {
				return err
			}
			env.printf("%s\n", change)
			return nil
		},
	}
}

// parsePlug parses "<snap>:<plug>".
func parsePlug(value string) (snapd.PlugRef, error) {
	snap, plug, found := strings.Cut(value, ":")
	if !found || snap == "" || plug == "" {
		return snapd.PlugRef{}, cli.Validation("invalid plug %q: want <snap>:<plug>", value)
	}
	return snapd.PlugRef{Snap: snap, Plug: plug}, nil
}
