// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
	"github.com/flightdeck-labs/flightdeck/lib/api"
)

func flightsCommand() *cli.Command {
	var (
		origin      string
		destination string
		date        string
		minPrice    int
		maxPrice    int
		airline     string
		sortBy      string
		asJSON      bool
	)

	return &cli.Command{
		Name:    "flights",
		Summary: "List and search flights",
		Description: `List available flights, optionally filtered server-side.

All filters combine. Dates use YYYY-MM-DD. Valid --sort values:
` + strings.Join(sortKeyStrings(), ", ") + `.`,
		Usage: "flightdeck flights [flags]",
		Examples: []cli.Example{
			{
				Description: "All flights from Delhi to Mumbai",
				Command:     "flightdeck flights --origin DEL --destination BOM",
			},
			{
				Description: "Cheapest flights under ₹8000, as JSON",
				Command:     "flightdeck flights --max-price 8000 --sort price_asc --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("flights", pflag.ContinueOnError)
			flagSet.StringVar(&origin, "origin", "", "origin airport code")
			flagSet.StringVar(&destination, "destination", "", "destination airport code")
			flagSet.StringVar(&date, "date", "", "departure date (YYYY-MM-DD)")
			flagSet.IntVar(&minPrice, "min-price", 0, "minimum price in rupees")
			flagSet.IntVar(&maxPrice, "max-price", 0, "maximum price in rupees")
			flagSet.StringVar(&airline, "airline", "", "airline name filter")
			flagSet.StringVar(&sortBy, "sort", "", "sort order")
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			query := api.FlightQuery{
				Origin:      origin,
				Destination: destination,
				Date:        date,
				MinPrice:    minPrice,
				MaxPrice:    maxPrice,
				Airline:     airline,
			}
			if date != "" {
				if _, err := time.Parse("2006-01-02", date); err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD, got %q", date)
				}
			}
			if sortBy != "" {
				key, err := api.ParseSortKey(sortBy)
				if err != nil {
					return fmt.Errorf("invalid --sort %q (valid: %s)",
						sortBy, strings.Join(sortKeyStrings(), ", "))
				}
				query.SortBy = key
			}

			logger := cli.NewCommandLogger().With("command", "flights")
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

			flights, err := conn.Client.SearchFlights(ctx, conn.Session.Token(), query)
			if err != nil {
				return fmt.Errorf("search flights: %s", api.Message(err, err.Error()))
			}

			if asJSON {
				return cli.WriteJSON(flights)
			}

			if len(flights) == 0 {
				fmt.Fprintln(os.Stderr, "No flights found")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tFLIGHT\tROUTE\tDEPART\tPRICE\tSEATS")
			for _, flight := range flights {
				seats := fmt.Sprintf("%d", flight.AvailableSeats)
				if flight.AvailableSeats == 0 {
					seats = "full"
				}
				fmt.Fprintf(tw, "%s\t%s%s %s\t%s→%s\t%s\t%s\t%s\n",
					flight.ID,
					flight.AirlineCode, flight.FlightNumber, flight.Airline,
					flight.Origin, flight.Destination,
					formatStamp(flight.Departure),
					formatRupees(flight.Price),
					seats)
			}
			return tw.Flush()
		},
	}
}

func sortKeyStrings() []string {
	keys := make([]string, len(api.SortKeys))
	for i, key := range api.SortKeys {
		keys[i] = string(key)
	}
	return keys
}
