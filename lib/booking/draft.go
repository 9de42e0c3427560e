// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/clock"
)

// NoticeTTL is how long a transient seat-conflict notice stays
// visible. Selecting another seat (or hitting another conflict)
// replaces the notice and restarts the window.
const NoticeTTL = 3 * time.Second

// Validation failure messages shown above the booking form.
var (
	ErrMissingFields = errors.New("Please fill in all fields")
	ErrMissingSeats  = errors.New("Please select seats for all passengers")
)

// Draft is an in-progress booking for one flight. It starts with a
// single blank passenger and accumulates passenger details and seat
// assignments until Validate passes and the caller submits.
type Draft struct {
	flight api.Flight
	clk    clock.Clock

	booked     map[string]bool
	passengers []api.Passenger

	notice         string
	noticeDeadline time.Time

	submitting bool
}

// NewDraft opens a draft for flight with one blank passenger. A nil
// clk uses the real clock.
func NewDraft(flight api.Flight, clk clock.Clock) *Draft {
	if clk == nil {
		clk = clock.Real()
	}
	return &Draft{
		flight:     flight,
		clk:        clk,
		booked:     make(map[string]bool),
		passengers: []api.Passenger{blankPassenger()},
	}
}

func blankPassenger() api.Passenger {
	return api.Passenger{Gender: api.GenderMale}
}

// Flight returns the flight being booked.
func (d *Draft) Flight() api.Flight {
	return d.flight
}

// SetBookedSeats records the seats other bookings already hold,
// replacing any previous set. Called with the booked-seats fetch
// result when the dialog opens.
func (d *Draft) SetBookedSeats(seats []string) {
	d.booked = make(map[string]bool, len(seats))
	for _, seat := range seats {
		d.booked[seat] = true
	}
}

// PassengerCount returns the number of passengers in the draft.
func (d *Draft) PassengerCount() int {
	return len(d.passengers)
}

// Passengers returns a copy of the passenger list.
func (d *Draft) Passengers() []api.Passenger {
	passengers := make([]api.Passenger, len(d.passengers))
	copy(passengers, d.passengers)
	return passengers
}

// Passenger returns the passenger at index.
func (d *Draft) Passenger(index int) api.Passenger {
	return d.passengers[index]
}

// CanAddPassenger reports whether the draft is below the flight's
// remaining capacity.
func (d *Draft) CanAddPassenger() bool {
	return len(d.passengers) < d.flight.AvailableSeats
}

// AddPassenger appends a blank passenger. No-op at the flight's
// capacity.
func (d *Draft) AddPassenger() {
	if !d.CanAddPassenger() {
		return
	}
	d.passengers = append(d.passengers, blankPassenger())
}

// RemovePassenger deletes the passenger at index, releasing their
// seat. No-op for the last remaining passenger or an out-of-range
// index.
func (d *Draft) RemovePassenger(index int) {
	if len(d.passengers) <= 1 || index < 0 || index >= len(d.passengers) {
		return
	}
	d.passengers = append(d.passengers[:index], d.passengers[index+1:]...)
}

// SetFirstName sets a passenger's first name.
func (d *Draft) SetFirstName(index int, name string) {
	if index < 0 || index >= len(d.passengers) {
		return
	}
	d.passengers[index].FirstName = name
}

// SetLastName sets a passenger's last name.
func (d *Draft) SetLastName(index int, name string) {
	if index < 0 || index >= len(d.passengers) {
		return
	}
	d.passengers[index].LastName = name
}

// SetAge sets a passenger's age.
func (d *Draft) SetAge(index, age int) {
	if index < 0 || index >= len(d.passengers) {
		return
	}
	d.passengers[index].Age = age
}

// SetGender sets a passenger's gender.
func (d *Draft) SetGender(index int, gender string) {
	if index < 0 || index >= len(d.passengers) {
		return
	}
	d.passengers[index].Gender = gender
}

// SelectSeat assigns a seat to the passenger at index. Booked seats
// are locked: selecting one is a no-op. A seat held by a different
// passenger in this draft is not reassigned; the holder keeps it and a
// transient notice names the seat. A successful selection replaces the
// passenger's previous seat and clears any visible notice.
func (d *Draft) SelectSeat(index int, seat string) {
	if index < 0 || index >= len(d.passengers) || !ValidSeat(seat) {
		return
	}
	if d.booked[seat] {
		return
	}
	for i, passenger := range d.passengers {
		if i != index && passenger.SeatNumber == seat {
			d.notice = fmt.Sprintf("Seat %s is already selected by another passenger in this booking", seat)
			d.noticeDeadline = d.clk.Now().Add(NoticeTTL)
			return
		}
	}
	d.passengers[index].SeatNumber = seat
	d.notice = ""
}

// SeatState classifies seat for rendering, from the perspective of the
// passenger at index.
func (d *Draft) SeatState(index int, seat string) SeatState {
	if d.booked[seat] {
		return SeatBooked
	}
	for i, passenger := range d.passengers {
		if passenger.SeatNumber != seat {
			continue
		}
		if i == index {
			return SeatSelected
		}
		return SeatSelectedByOther
	}
	return SeatAvailable
}

// Notice returns the current transient notice, or "" once its window
// has passed.
func (d *Draft) Notice() string {
	if d.notice == "" || !d.clk.Now().Before(d.noticeDeadline) {
		return ""
	}
	return d.notice
}

// Validate checks the draft is submittable: every passenger has a
// first name, last name, positive age, and gender, and every passenger
// has a seat.
func (d *Draft) Validate() error {
	for _, passenger := range d.passengers {
		if strings.TrimSpace(passenger.FirstName) == "" ||
			strings.TrimSpace(passenger.LastName) == "" ||
			passenger.Age < 1 ||
			passenger.Gender == "" {
			return ErrMissingFields
		}
	}
	for _, passenger := range d.passengers {
		if passenger.SeatNumber == "" {
			return ErrMissingSeats
		}
	}
	return nil
}

// TotalAmount is the fare for the whole draft: price per person times
// passenger count.
func (d *Draft) TotalAmount() int {
	return d.flight.Price * len(d.passengers)
}

// BeginSubmit validates the draft and marks it in flight, returning
// the passenger list to send to the backend. A second call before
// FinishSubmit fails, so a double-press can't create two bookings.
func (d *Draft) BeginSubmit() ([]api.Passenger, error) {
	if d.submitting {
		return nil, errors.New("booking submission already in progress")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.submitting = true
	return d.Passengers(), nil
}

// FinishSubmit clears the in-flight flag after the backend call
// returns, whether it succeeded or failed.
func (d *Draft) FinishSubmit() {
	d.submitting = false
}

// Submitting reports whether a submission is in flight.
func (d *Draft) Submitting() bool {
	return d.submitting
}
