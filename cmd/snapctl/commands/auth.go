// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/snapclient/cmd/snapctl/cli"
	"github.com/bureau-foundation/snapclient/lib/secret"
	"github.com/bureau-foundation/snapclient/lib/snapd"
)

type loginParams struct {
	connectionParams
	cli.JSONOutput
	PasswordFile string `flag:"password-file" desc:"read the password from a file (- for stdin) instead of prompting"`
	OTP          string `flag:"otp" desc:"one-time passkey for accounts with two-factor authentication"`
}

// loginOutput is the JSON output for login and whoami. The macaroon is
// never printed.
type loginOutput struct {
	Email    string `json:"email"`
	ID       int    `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	AuthFile string `json:"auth_file"`
}

func loginCommand(env *Environment) *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate to the store and save the credential",
		Description: `Log in to the snap store through the daemon.

The password is read from the terminal without echo, or from
--password-file. The daemon returns a macaroon which is saved to the
auth file (mode 0600) and used by later authenticated commands.`,
		Usage: "snapctl login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively",
				Command:     "snapctl login me@example.com",
			},
			{
				Description: "Log in from a script with a two-factor code",
				Command:     "snapctl login me@example.com --password-file - --otp 123456 < password.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 1, 1, "snapctl login <email>"); err != nil {
				return err
			}
			email := args[0]

			session, err := env.connect(&params.connectionParams, "login")
			if err != nil {
				return err
			}

			password, err := env.readPassword(params.PasswordFile, email)
			if err != nil {
				return err
			}
			defer password.Close()

			credential, err := session.client.Login(ctx, snapd.LoginRequest{
				Email:    email,
				Password: password.String(),
				OTP:      params.OTP,
			})
			if err != nil {
				if snapd.IsDaemonKind(err, "two-factor-required") && params.OTP == "" {
					return &cli.ToolError{
						Category: cli.CategoryForbidden,
						Err:      fmt.Errorf("%w: rerun with --otp", err),
					}
				}
				return err
			}

			authFile := session.client.AuthFile()
			if err := snapd.SaveCredential(authFile, credential); err != nil {
				return cli.Internal("%w", err)
			}
			session.logger.Info("saved credential", "email", credential.Email, "auth_file", authFile)

			output := loginOutput{
				Email:    credential.Email,
				ID:       credential.ID,
				Username: credential.Username,
				AuthFile: authFile,
			}
			if done, err := params.EmitJSON(env.Stdout, output); done {
				return err
			}
			env.printf("Logged in as %s\n", credential.Email)
			return nil
		},
	}
}

// readPassword reads the login password from path, or prompts on the
// terminal when path is empty.
func (env *Environment) readPassword(path, email string) (*secret.Buffer, error) {
	if path != "" {
		buffer, err := secret.ReadPasswordFrom(path, env.Stdin)
		if err != nil {
			return nil, cli.Validation("reading password: %w", err)
		}
		return buffer, nil
	}

	stdin, ok := env.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return nil, cli.Validation("stdin is not a terminal: use --password-file")
	}

	fmt.Fprintf(env.Stderr, "Password of %q: ", email)
	data, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(env.Stderr)
	if err != nil {
		return nil, cli.Internal("reading password: %w", err)
	}
	if len(data) == 0 {
		return nil, cli.Validation("empty password")
	}
	buffer, err := secret.NewFromBytes(data)
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	return buffer, nil
}

type logoutParams struct {
	connectionParams
}

func logoutCommand(env *Environment) *cli.Command {
	var params logoutParams

	return &cli.Command{
		Name:    "logout",
		Summary: "Log out and remove the saved credential",
		Description: `Tell the daemon to forget the stored credential, then remove the
local auth file.`,
		Usage: "snapctl logout [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("logout", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 0, 0, "snapctl logout"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "logout")
			if err != nil {
				return err
			}
			if err := session.client.Logout(ctx, nil); err != nil {
				return err
			}

			authFile := session.client.AuthFile()
			if err := os.Remove(authFile); err != nil && !os.IsNotExist(err) {
				return cli.Internal("removing auth file: %w", err)
			}
			session.logger.Info("removed credential", "auth_file", authFile)
			env.printf("Logged out\n")
			return nil
		},
	}
}

type whoamiParams struct {
	connectionParams
	cli.JSONOutput
}

func whoamiCommand(env *Environment) *cli.Command {
	var params whoamiParams

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the account of the saved credential",
		Description: `Display the email of the saved credential. Only the local auth file
is read; the daemon is not contacted.`,
		Usage: "snapctl whoami [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("whoami", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := requireArgs(args, 0, 0, "snapctl whoami"); err != nil {
				return err
			}
			session, err := env.connect(&params.connectionParams, "whoami")
			if err != nil {
				return err
			}
			credential, err := session.client.ReadAuth()
			if err != nil {
				return &cli.ToolError{Category: cli.CategoryForbidden, Err: err}
			}

			output := loginOutput{
				Email:    credential.Email,
				ID:       credential.ID,
				Username: credential.Username,
				AuthFile: session.client.AuthFile(),
			}
			if done, err := params.EmitJSON(env.Stdout, output); done {
				return err
			}
			env.printf("email: %s\n", credential.Email)
			return nil
		},
	}
}
