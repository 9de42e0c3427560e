// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
	"github.com/flightdeck-labs/flightdeck/lib/api"
)

func bookingsCommand() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:    "bookings",
		Summary: "List your bookings",
		Description: `List your confirmed bookings, newest first as returned by the
backend, with one line per passenger.`,
		Usage: "flightdeck bookings [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("bookings", pflag.ContinueOnError)
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			logger := cli.NewCommandLogger().With("command", "bookings")
			conn, err := connect(logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			if err := conn.requireLogin(ctx); err != nil {
				return err
			}

			bookings, err := conn.Client.Bookings(ctx, conn.Session.Token())
			if err != nil {
				return fmt.Errorf("list bookings: %s", api.Message(err, err.Error()))
			}

			if asJSON {
				return cli.WriteJSON(bookings)
			}

			if len(bookings) == 0 {
				fmt.Fprintln(os.Stderr, "No bookings yet")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			for _, booking := range bookings {
				flight := booking.Flight
				fmt.Fprintf(tw, "%s\t%s%s %s\t%s→%s\t%s\t%s\n",
					booking.ID,
					flight.AirlineCode, flight.FlightNumber, flight.Airline,
					flight.Origin, flight.Destination,
					formatStamp(flight.Departure),
					formatRupees(booking.TotalAmount))
				for _, passenger := range booking.Passengers {
					fmt.Fprintf(tw, "\tseat %s\t%s %s\t%d, %s\t\n",
						passenger.SeatNumber, passenger.FirstName, passenger.LastName,
						passenger.Age, passenger.Gender)
				}
			}
			return tw.Flush()
		},
	}
}
