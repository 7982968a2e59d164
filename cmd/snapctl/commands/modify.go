// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

// modifyFlags selects which option flags a snap mutation accepts.
type modifyFlags int

const (
	modifyChannel modifyFlags = 1 << iota
	modifyVersion
	modifyConfinement
)

// modifySpec describes one snap mutation command.
type modifySpec struct {
	action  string
	summary string
	flags   modifyFlags
}

type modifyParams struct {
	connectionParams
	cli.JSONOutput
	Channel          string `flag:"channel" desc:"channel to track"`
	Version          string `flag:"version" desc:"version to revert to"`
	Classic          bool   `flag:"classic" desc:"put the snap in classic mode and disable security confinement"`
	DevMode          bool   `flag:"devmode" desc:"put the snap in development mode and disable security confinement"`
	JailMode         bool   `flag:"jailmode" desc:"put the snap in enforced confinement mode"`
	IgnoreValidation bool   `flag:"ignore-validation" desc:"ignore validation by other snaps blocking the operation"`
}

// changeOutput is the JSON output of commands that start a change.
type changeOutput struct {
	Change string `json:"change"`
}

func modifyCommand(env *Environment, spec modifySpec) *cli.Command {
	var params modifyParams
	usage := "snapctl " + spec.action + " <snap> [flags]"

	return &cli.Command{
		Name:    spec.action,
		Summary: spec.summary,
		Description: spec.summary + `.

The daemon performs the work asynchronously. The id of the change it
started is printed; follow it with "snapctl change <id>".`,
		Usage: usage,
		Flags: func() *pflag.FlagSet {
			flagSet := cli.FlagsFromParams(spec.action, &params)
			// Hide the option flags this action does not take.
			hide := func(name string, keep modifyFlags) {
				if spec.flags&keep == 0 {
					flagSet.MarkHidden(name)
				}
			}
			hide("channel", modifyChannel)
			hide("version", modifyVersion)
			hide("classic", modifyConfinement)
			hide("devmode", modifyConfinement)
			hide("jailmode", modifyConfinement)
			hide("ignore-validation", modifyChannel|modifyConfinement)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 1, usage); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, spec.action)
			if err != nil {
				return err
			}

			options := snapd.ModifyOptions{
				Classic:          params.Classic,
				DevMode:          params.DevMode,
				JailMode:         params.JailMode,
				IgnoreValidation: params.IgnoreValidation,
			}
			if params.Channel != "" {
				options.Channel = snapd.String(params.Channel)
			}
			if params.Version != "" {
				options.Version = snapd.String(params.Version)
			}

			change, err := session.client.Modify(ctx, spec.action, args[0], nil, options)
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
