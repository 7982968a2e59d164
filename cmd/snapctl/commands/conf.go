// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
)

type getParams struct {
	connectionParams
	cli.JSONOutput
}

func getCommand(env *Environment) *cli.Command {
	var params getParams

	return &cli.Command{
		Name:    "get",
		Summary: "Print snap configuration",
		Description: `Print configuration values of a snap. With a single key the value is
printed alone (strings unquoted, everything else as JSON). With no keys
or several keys a key/value table is printed.`,
		Usage: "snapctl get <snap> [key...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Print the refresh timer",
				Command:     "snapctl get core refresh.timer",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("get", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, -1, "snapctl get <snap> [key...]"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "get")
			if err != nil {
				return err
			}

			keys := args[1:]
			values, err := session.client.GetConf(ctx, args[0], keys)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, values); done {
				return err
			}

			if len(keys) == 1 {
				value, ok := values[keys[0]]
				if !ok {
					return &cli.ToolError{
						Category: cli.CategoryNotFound,
						Err:      fmt.Errorf("snap %q has no %q configuration option", args[0], keys[0]),
					}
				}
				formatted, err := formatValue(value)
				if err != nil {
					return err
				}
				env.printf("%s\n", formatted)
				return nil
			}

			writer := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "Key\tValue")
			for _, key := range slices.Sorted(maps.Keys(values)) {
				formatted, err := formatValue(values[key])
				if err != nil {
					return err
				}
				fmt.Fprintf(writer, "%s\t%s\n", key, formatted)
			}
			return writer.Flush()
		},
	}
}

// formatValue renders strings bare and anything else as compact JSON.
func formatValue(value any) (string, error) {
	if text, ok := value.(string); ok {
		return text, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", cli.Internal("formatting value: %w", err)
	}
	return string(data), nil
}

type setParams struct {
	connectionParams
	File string `flag:"file,f" desc:"read values from a JSON file (comments and trailing commas allowed)"`
}

func setCommand(env *Environment) *cli.Command {
	var params setParams

	return &cli.Command{
		Name:    "set",
		Summary: "Change snap configuration",
		Description: `Set configuration values of a snap.

Values given as key=value are parsed as JSON when possible and taken
as strings otherwise, so "retain=3" sets a number and "timer=4:00-7:00"
sets a string. With --file, values are read from a JSON object that may
contain comments; key=value arguments override entries from the file.`,
		Usage: "snapctl set <snap> [key=value...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Set the refresh timer",
				Command:     "snapctl set core refresh.timer=4:00-7:00",
			},
			{
				Description: "Apply a commented configuration file",
				Command:     "snapctl set lxd --file lxd-conf.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("set", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, -1, "snapctl set <snap> [key=value...]"); err != nil {
				return err
			}
			if len(args) == 1 && params.File == "" {
				return cli.Validation("no configuration given: pass key=value arguments or --file")
			}

			values := map[string]any{}
			if params.File != "" {
				fileValues, err := readValuesFile(params.File)
				if err != nil {
					return err
				}
				values = fileValues
			}
			for _, assignment := range args[1:] {
				key, value, err := parseAssignment(assignment)
				if err != nil {
					return err
				}
				values[key] = value
			}

			session, err := env.connect(&params.connectionParams, "set")
			if err != nil {
				return err
			}
			status, err := session.client.PutConf(ctx, args[0], values)
			if err != nil {
				return err
			}
			session.logger.Info("configuration applied", "snap", args[0], "keys", len(values), "status", status)
			return nil
		},
	}
}

// parseAssignment splits key=value and decodes value as JSON when it
// parses, falling back to the literal string.
func parseAssignment(assignment string) (string, any, error) {
	key, raw, found := strings.Cut(assignment, "=")
	if !found || key == "" {
		return "", nil, cli.Validation("invalid configuration %q: want key=value", assignment)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return key, raw, nil
	}
	return key, value, nil
}

// readValuesFile reads a JSON-with-comments object of configuration
// values.
func readValuesFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.Validation("reading %s: %w", path, err)
	}
	var values map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &values); err != nil {
		return nil, cli.Validation("parsing %s: %w", path, err)
	}
	if values == nil {
		return nil, cli.Validation("%s: expected a JSON object", path)
	}
	return values, nil
}
