// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/flightdeck-labs/flightdeck/cmd/flightdeck/cli"
	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/booking"
	"github.com/flightdeck-labs/flightdeck/lib/clock"
)

func bookCommand() *cli.Command {
	var passengerSpecs []string
	var asJSON bool

	return &cli.Command{
		Name:    "book",
		Summary: "Book a flight",
		Description: `Book seats on a flight without the interactive interface.

Each --passenger takes "first,last,age,gender,seat", one flag per
traveler. Seats use the row-number-plus-column-letter labels shown in
the interface (rows 1-` + strconv.Itoa(booking.SeatRows) + `, columns A-F), and are checked against
the flight's already-booked seats before submitting.`,
		Usage: "flightdeck book <flight-id> --passenger <first,last,age,gender,seat> [flags]",
		Examples: []cli.Example{
			{
				Description: "Book one seat",
				Command:     "flightdeck book 64f1c9 --passenger 'Ada,Lovelace,30,Female,2B'",
			},
			{
				Description: "Book two seats together",
				Command:     "flightdeck book 64f1c9 --passenger 'Ada,Lovelace,30,Female,2B' --passenger 'Grace,Hopper,40,Female,2C'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
			flagSet.StringArrayVar(&passengerSpecs, "passenger", nil,
				"passenger as first,last,age,gender,seat (repeatable)")
			flagSet.BoolVar(&asJSON, "json", false, "output the confirmed booking as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("flight ID is required\n\nUsage: flightdeck book <flight-id> --passenger <first,last,age,gender,seat>")
			}
			flightID := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}
			if len(passengerSpecs) == 0 {
				return fmt.Errorf("at least one --passenger is required")
			}

			passengers := make([]api.Passenger, len(passengerSpecs))
			for i, spec := range passengerSpecs {
				passenger, err := parsePassenger(spec)
				if err != nil {
					return fmt.Errorf("--passenger %q: %w", spec, err)
				}
				passengers[i] = passenger
			}

			logger := cli.NewCommandLogger().With("command", "book")
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

			flight, err := findFlight(ctx, conn, flightID)
			if err != nil {
				return err
			}
			if flight.AvailableSeats == 0 {
				return fmt.Errorf("flight %s is sold out", flightID)
			}
			if len(passengers) > flight.AvailableSeats {
				return fmt.Errorf("%d passengers requested but only %d seats available",
					len(passengers), flight.AvailableSeats)
			}

			bookedSeats, err := conn.Client.BookedSeats(ctx, conn.Session.Token(), flightID)
			if err != nil {
				return fmt.Errorf("fetch booked seats: %s", api.Message(err, err.Error()))
			}

			// Run the request through the same draft used by the
			// interactive dialog so seat conflicts and field validation
			// behave identically.
			draft := booking.NewDraft(flight, clock.Real())
			draft.SetBookedSeats(bookedSeats.Seats)
			for i, passenger := range passengers {
				if i > 0 {
					draft.AddPassenger()
				}
				draft.SetFirstName(i, passenger.FirstName)
				draft.SetLastName(i, passenger.LastName)
				draft.SetAge(i, passenger.Age)
				draft.SetGender(i, passenger.Gender)

				switch draft.SeatState(i, passenger.SeatNumber) {
				case booking.SeatBooked:
					return fmt.Errorf("seat %s is already booked", passenger.SeatNumber)
				case booking.SeatSelectedByOther:
					return fmt.Errorf("seat %s is assigned to another passenger in this booking", passenger.SeatNumber)
				}
				draft.SelectSeat(i, passenger.SeatNumber)
			}

			confirmed, err := draft.BeginSubmit()
			if err != nil {
				return err
			}

			result, err := conn.Client.CreateBooking(ctx, conn.Session.Token(), flightID, confirmed)
			if err != nil {
				return fmt.Errorf("create booking: %s", api.Message(err, err.Error()))
			}

			if asJSON {
				return cli.WriteJSON(result)
			}
			fmt.Fprintf(os.Stderr, "Booking confirmed: %s%s %s→%s, %d passenger(s), %s\n",
				flight.AirlineCode, flight.FlightNumber, flight.Origin, flight.Destination,
				len(confirmed), formatRupees(result.TotalAmount))
			return nil
		},
	}
}

// parsePassenger parses a "first,last,age,gender,seat" spec.
func parsePassenger(spec string) (api.Passenger, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 5 {
		return api.Passenger{}, fmt.Errorf("want first,last,age,gender,seat")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	age, err := strconv.Atoi(parts[2])
	if err != nil || age <= 0 {
		return api.Passenger{}, fmt.Errorf("age must be a positive number, got %q", parts[2])
	}

	gender := parts[3]
	switch gender {
	case api.GenderMale, api.GenderFemale, api.GenderOther:
	default:
		return api.Passenger{}, fmt.Errorf("gender must be %s, %s, or %s",
			api.GenderMale, api.GenderFemale, api.GenderOther)
	}

	seat := strings.ToUpper(parts[4])
	if !booking.ValidSeat(seat) {
		return api.Passenger{}, fmt.Errorf("invalid seat %q", parts[4])
	}

	if parts[0] == "" || parts[1] == "" {
		return api.Passenger{}, fmt.Errorf("first and last name are required")
	}

	return api.Passenger{
		FirstName:  parts[0],
		LastName:   parts[1],
		Age:        age,
		Gender:     gender,
		SeatNumber: seat,
	}, nil
}

// findFlight resolves a flight ID against the full flight list; the
// backend has no single-flight endpoint.
func findFlight(ctx context.Context, conn *connection, flightID string) (api.Flight, error) {
	flights, err := conn.Client.Flights(ctx, conn.Session.Token())
	if err != nil {
		return api.Flight{}, fmt.Errorf("list flights: %s", api.Message(err, err.Error()))
	}
	for _, flight := range flights {
		if flight.ID == flightID {
			return flight, nil
		}
	}
	return api.Flight{}, fmt.Errorf("flight %s not found", flightID)
}
