// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
	"github.com/flightdeck-labs/flightdeck/lib/flightui"
)

func uiCommand() *cli.Command {
	return &cli.Command{
		Name:    "ui",
		Summary: "Launch the interactive interface",
		Description: `Launch the full-screen terminal interface.

The interface restores your saved session and lands on the flight
list; without one it shows the login form. From the flight list,
Enter opens the seat-map booking dialog, "/" filters the loaded
flights, "f" opens the server-side search form, and "2" switches to
your bookings.`,
		Usage: "flightdeck ui",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			logger := cli.NewCommandLogger().With("command", "ui")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			env := flightui.NewEnv(conn.Client, conn.Session)
			env.Logger = logger

			program := tea.NewProgram(flightui.NewApp(env), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run interface: %w", err)
			}
			return nil
		},
	}
}
