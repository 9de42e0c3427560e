// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import "fmt"

// The cabin is a fixed 10-row, A–F grid of 60 seats. The grid shape is
// independent of the flight's availableSeats count: the backend tracks
// remaining capacity as a number, and the grid always renders all 60
// positions with booked ones locked.
const (
	SeatRows    = 10
	SeatColumns = 6
)

// seatColumnLetters are the column labels in cabin order.
const seatColumnLetters = "ABCDEF"

// SeatLabel builds the label for a grid position. Rows are 1-based
// (1..10), columns 0-based (0..5), so SeatLabel(3, 2) is "3C".
func SeatLabel(row, column int) string {
	return fmt.Sprintf("%d%c", row, seatColumnLetters[column])
}

// AllSeats returns the 60 seat labels in row-major cabin order:
// "1A".."1F", "2A".."2F", through "10F".
func AllSeats() []string {
	seats := make([]string, 0, SeatRows*SeatColumns)
	for row := 1; row <= SeatRows; row++ {
		for column := 0; column < SeatColumns; column++ {
			seats = append(seats, SeatLabel(row, column))
		}
	}
	return seats
}

// ValidSeat reports whether label names a position in the grid.
func ValidSeat(label string) bool {
	if len(label) < 2 {
		return false
	}
	column := label[len(label)-1]
	row := 0
	for _, digit := range label[:len(label)-1] {
		if digit < '0' || digit > '9' {
			return false
		}
		row = row*10 + int(digit-'0')
	}
	if row < 1 || row > SeatRows {
		return false
	}
	for i := 0; i < SeatColumns; i++ {
		if seatColumnLetters[i] == column {
			return true
		}
	}
	return false
}

// SeatState classifies one grid position for rendering and input
// handling.
type SeatState int

const (
	// SeatAvailable is an open seat.
	SeatAvailable SeatState = iota
	// SeatBooked is held by another booking on the backend. Locked:
	// selecting it is a no-op.
	SeatBooked
	// SeatSelected is held by the draft's active passenger.
	SeatSelected
	// SeatSelectedByOther is held by a different passenger in this
	// draft. Selecting it raises a transient notice instead of
	// reassigning the seat.
	SeatSelectedByOther
)

func (s SeatState) String() string {
	switch s {
	case SeatAvailable:
		return "available"
	case SeatBooked:
		return "booked"
	case SeatSelected:
		return "selected"
	case SeatSelectedByOther:
		return "selected-by-other"
	default:
		return fmt.Sprintf("SeatState(%d)", int(s))
	}
}
