// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete flightdeck CLI command tree.
package commands

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Root builds and returns the complete flightdeck CLI command tree.
// Running the bare binary on a terminal launches the interactive
// interface; piped invocations get the help text instead.
func Root() *cli.Command {
	ui := uiCommand()
	root := &cli.Command{
		Name: "flightdeck",
		Description: `Flightdeck: terminal flight booking client.

Search flights, pick seats, and manage bookings from the terminal —
interactively with "flightdeck ui", or through scriptable subcommands
for pipelines and automation.`,
		Subcommands: []*cli.Command{
			ui,
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			flightsCommand(),
			bookingsCommand(),
			bookCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("flightdeck %s\n", Version)
					return nil
				},
			},
		},
	}
	root.Run = func(args []string) error {
		if len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
			return ui.Run(nil)
		}
		root.PrintHelp(os.Stderr)
		return fmt.Errorf("subcommand required")
	}
	return root
}
