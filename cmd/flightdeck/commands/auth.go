// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
	"github.com/flightdeck-labs/flightdeck/lib/api"
)

// authTimeout bounds the HTTP round trips of the auth commands.
const authTimeout = 30 * time.Second

func loginCommand() *cli.Command {
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Log in and save the session",
		Description: `Log in to the booking backend and save the session locally.

After login, commands like "flightdeck flights" and "flightdeck book"
use the saved session transparently. The session file is stored at
~/.config/flightdeck/session.json (or $FLIGHTDECK_SESSION_FILE if
set, or $XDG_CONFIG_HOME/flightdeck/session.json) with mode 0600
since it contains an access token.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "flightdeck login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "flightdeck login ada@example.com",
			},
			{
				Description: "Log in with password from file",
				Command:     "flightdeck login ada@example.com --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&passwordFile, "password-file", "",
				"path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("email is required\n\nUsage: flightdeck login <email> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			logger := cli.NewCommandLogger().With("command", "login")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			if err := conn.Session.Login(ctx, email, password); err != nil {
				return fmt.Errorf("login failed: %s", api.Message(err, err.Error()))
			}

			user := conn.Session.User()
			fmt.Fprintf(os.Stderr, "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var name, email, phone, passwordFile string

	return &cli.Command{
		Name:    "register",
		Summary: "Create an account and log in",
		Description: `Create a new account on the booking backend.

Registration logs you in immediately and saves the session, the same
as "flightdeck login". Missing details are prompted for.`,
		Usage: "flightdeck register [flags]",
		Examples: []cli.Example{
			{
				Description: "Register with details on the command line",
				Command:     "flightdeck register --name 'Ada Lovelace' --email ada@example.com --phone 9876543210",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&name, "name", "", "full name")
			flagSet.StringVar(&email, "email", "", "email address")
			flagSet.StringVar(&phone, "phone", "", "phone number")
			flagSet.StringVar(&passwordFile, "password-file", "",
				"path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			var err error
			if name == "" {
				if name, err = cli.PromptLine("Name"); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = cli.PromptLine("Email"); err != nil {
					return err
				}
			}
			if phone == "" {
				if phone, err = cli.PromptLine("Phone"); err != nil {
					return err
				}
			}
			if name == "" || email == "" || phone == "" {
				return fmt.Errorf("name, email, and phone are all required")
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			logger := cli.NewCommandLogger().With("command", "register")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			request := api.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: string(password.Bytes()),
				Phone:    phone,
			}
			if err := conn.Session.Register(ctx, request); err != nil {
				return fmt.Errorf("registration failed: %s", api.Message(err, err.Error()))
			}

			user := conn.Session.User()
			fmt.Fprintf(os.Stderr, "Registered and logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Usage:   "flightdeck logout",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			logger := cli.NewCommandLogger().With("command", "logout")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := conn.Session.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in account",
		Usage:   "flightdeck whoami [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			logger := cli.NewCommandLogger().With("command", "whoami")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			if err := conn.Session.Restore(ctx); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
			user := conn.Session.User()
			if user == nil {
				fmt.Fprintln(os.Stderr, "Not logged in")
				return &cli.ExitError{Code: 1}
			}

			if asJSON {
				return cli.WriteJSON(user)
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}
