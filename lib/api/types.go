// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "time"

// Flight is one bookable flight as returned by the backend. Flights
// are immutable from the client's perspective: fetched, rendered,
// booked against, never mutated locally.
type Flight struct {
	ID             string    `json:"_id"`
	Airline        string    `json:"airline"`
	AirlineCode    string    `json:"airlineCode"`
	FlightNumber   string    `json:"flightNumber"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	Price          int       `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
}

// Duration returns the scheduled flight time, or zero if either
// timestamp is missing.
func (f Flight) Duration() time.Duration {
	if f.Departure.IsZero() || f.Arrival.IsZero() {
		return 0
	}
	return f.Arrival.Sub(f.Departure)
}

// User is the authenticated account.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Gender values accepted by the backend for a passenger.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Passenger is one traveler in a booking, with a committed seat label.
type Passenger struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	SeatNumber string `json:"seatNumber"`
}

// Booking is a confirmed booking as returned by GET /bookings. The
// total is computed server-side; the client never recomputes it for
// display here.
type Booking struct {
	ID          string      `json:"_id"`
	Flight      Flight      `json:"flight"`
	Passengers  []Passenger `json:"passengers"`
	TotalAmount int         `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the account-creation payload. All fields are
// required by the backend; the forms validate presence before calling.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// BookedSeats is the set of seat labels already consumed by other
// bookings on one flight, fetched fresh each time the booking dialog
// opens.
type BookedSeats struct {
	Seats       []string `json:"bookedSeats"`
	TotalBooked int      `json:"totalBooked"`
}
