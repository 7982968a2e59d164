// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

type appsParams struct {
	connectionParams
	cli.JSONOutput
	Enable  bool `flag:"enable" desc:"also enable the services to start on boot (start only)"`
	Disable bool `flag:"disable" desc:"also disable the services from starting on boot (stop only)"`
	Reload  bool `flag:"reload" desc:"reload the services instead of restarting them where supported (restart only)"`
}

func appsCommand(env *Environment, action, summary string) *cli.Command {
	var params appsParams
	usage := "snapctl " + action + " <snap>[.<app>]... [flags]"

	return &cli.Command{
		Name:        action,
		Summary:     summary,
		Description: summary + `. A bare snap name selects all of its services.`,
		Usage:       usage,
		Flags: func() *pflag.FlagSet {
			flagSet := cli.FlagsFromParams(action, &params)
			for flag, owner := range map[string]string{"enable": "start", "disable": "stop", "reload": "restart"} {
				if owner != action {
					flagSet.MarkHidden(flag)
				}
			}
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, -1, usage); err != nil {
				return err
			}
			if (params.Enable && action != snapd.AppActionStart) ||
				(params.Disable && action != snapd.AppActionStop) ||
				(params.Reload && action != snapd.AppActionRestart) {
				return cli.Validation("--enable, --disable, and --reload apply only to start, stop, and restart respectively")
			}

			session, err := env.connect(&params.connectionParams, action)
			if err != nil {
				return err
			}
			change, err := session.client.PostApps(ctx, snapd.AppsRequest{
				Action:  action,
				Names:   args,
				Enable:  params.Enable,
				Disable: params.Disable,
				Reload:  params.Reload,
			})
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
