// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/booking"
)

func dialogFlight() api.Flight {
	return api.Flight{
		ID: "f1", Airline: "IndiGo", AirlineCode: "6E", FlightNumber: "101",
		Origin: "DEL", Destination: "BOM", Price: 5000, AvailableSeats: 3,
	}
}

func newTestDialog(t *testing.T) (DialogModel, *Env) {
	t.Helper()
	env, _ := loginTestEnv(t, backendHandler(t))
	dialog := NewDialogModel(env, dialogFlight(), 100, 40)
	return dialog, env
}

func pressKey(t *testing.T, dialog DialogModel, msg tea.KeyMsg) (DialogModel, tea.Cmd) {
	t.Helper()
	updated, cmd := dialog.Update(msg)
	return updated, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tabToGrid tabs from the current focus position to the seat grid.
func tabToGrid(t *testing.T, dialog DialogModel) DialogModel {
	t.Helper()
	for i := 0; i < fieldCount+2 && dialog.focus != focusGrid; i++ {
		dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	}
	if dialog.focus != focusGrid {
		t.Fatalf("focus = %v after tabbing, want grid", dialog.focus)
	}
	return dialog
}

func TestBookedSeatsLockTheGrid(t *testing.T) {
	dialog, _ := newTestDialog(t)

	msg := dialog.FetchBookedSeats()()
	seats, ok := msg.(bookedSeatsMsg)
	if !ok {
		t.Fatalf("fetch produced %T", msg)
	}
	dialog, _ = dialog.Update(seats)

	// Cursor starts at 1A, which the backend reports as booked.
	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})
	if got := dialog.Draft().Passenger(0).SeatNumber; got != "" {
		t.Errorf("selecting a booked seat assigned %q", got)
	}
}

func TestSeatSelectionThroughGrid(t *testing.T) {
	dialog, _ := newTestDialog(t)
	dialog = tabToGrid(t, dialog)

	// Move to 2B and select it.
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyDown})
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyRight})
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})

	if got := dialog.Draft().Passenger(0).SeatNumber; got != "2B" {
		t.Errorf("seat = %q, want 2B", got)
	}
}

func TestSeatConflictShowsTransientNotice(t *testing.T) {
	dialog, env := newTestDialog(t)
	clk := env.Clock.(interface{ Advance(time.Duration) })

	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyDown})
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyRight})
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})

	// Add a second passenger and try to take the same seat. The grid
	// cursor is still parked on 2B from the first selection.
	dialog, _ = pressKey(t, dialog, runeKey("+"))
	dialog = tabToGrid(t, dialog)
	dialog, fadeCmd := pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})

	want := "Seat 2B is already selected by another passenger in this booking"
	if dialog.currentNotice() != want {
		t.Errorf("notice = %q, want %q", dialog.currentNotice(), want)
	}
	if fadeCmd == nil {
		t.Error("expected a fade tick to be scheduled")
	}
	if got := dialog.Draft().Passenger(0).SeatNumber; got != "2B" {
		t.Errorf("first passenger lost seat: %q", got)
	}
	if got := dialog.Draft().Passenger(1).SeatNumber; got != "" {
		t.Errorf("second passenger stole seat: %q", got)
	}

	clk.Advance(booking.NoticeTTL)
	if dialog.currentNotice() != "" {
		t.Errorf("notice still visible after TTL: %q", dialog.currentNotice())
	}
}

func TestBookedSeatsFetchFailureLeavesGridUsable(t *testing.T) {
	dialog, _ := newTestDialog(t)

	dialog, _ = dialog.Update(bookedSeatsMsg{flightID: "f1", err: errors.New("backend down")})
	if notice := dialog.currentNotice(); notice != "" {
		t.Errorf("notice = %q, want none", notice)
	}
	view := strings.Join(dialog.OverlayLines(), "\n")
	if strings.Contains(view, "loading booked seats") {
		t.Error("loading placeholder still shown after the fetch settled")
	}

	// With an empty booked set even 1A is selectable; the backend is
	// the final authority on taken seats.
	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})
	if got := dialog.Draft().Passenger(0).SeatNumber; got != "1A" {
		t.Errorf("seat = %q, want 1A", got)
	}
}

func TestAddAndRemovePassenger(t *testing.T) {
	dialog, _ := newTestDialog(t)
	dialog = tabToGrid(t, dialog)

	dialog, _ = pressKey(t, dialog, runeKey("+"))
	dialog, _ = pressKey(t, dialog, runeKey("+"))
	if dialog.Draft().PassengerCount() != 3 {
		t.Fatalf("passenger count = %d, want 3", dialog.Draft().PassengerCount())
	}
	if dialog.activePassenger != 2 {
		t.Errorf("active passenger = %d, want 2", dialog.activePassenger)
	}

	// At availableSeats the add is refused.
	dialog, _ = pressKey(t, dialog, runeKey("+"))
	if dialog.Draft().PassengerCount() != 3 {
		t.Errorf("passenger count grew past capacity: %d", dialog.Draft().PassengerCount())
	}

	dialog, _ = pressKey(t, dialog, runeKey("-"))
	if dialog.Draft().PassengerCount() != 2 {
		t.Errorf("passenger count = %d after remove, want 2", dialog.Draft().PassengerCount())
	}
}

func TestPassengerFormFillsDraft(t *testing.T) {
	dialog, _ := newTestDialog(t)

	for _, r := range "Ada" {
		dialog, _ = pressKey(t, dialog, runeKey(string(r)))
	}
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "Lovelace" {
		dialog, _ = pressKey(t, dialog, runeKey(string(r)))
	}
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "30" {
		dialog, _ = pressKey(t, dialog, runeKey(string(r)))
	}
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	// Gender selector: right cycles Male → Female.
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyRight})

	passenger := dialog.Draft().Passenger(0)
	if passenger.FirstName != "Ada" || passenger.LastName != "Lovelace" {
		t.Errorf("name = %q %q", passenger.FirstName, passenger.LastName)
	}
	if passenger.Age != 30 {
		t.Errorf("age = %d", passenger.Age)
	}
	if passenger.Gender != api.GenderFemale {
		t.Errorf("gender = %q", passenger.Gender)
	}
}

func TestSubmitWithoutSeatsShowsValidation(t *testing.T) {
	dialog, _ := newTestDialog(t)

	// Fill the form but pick no seat, then confirm.
	for _, r := range "Ada" {
		dialog, _ = pressKey(t, dialog, runeKey(string(r)))
	}
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "L" {
		dialog, _ = pressKey(t, dialog, runeKey(string(r)))
	}
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	dialog, _ = pressKey(t, dialog, runeKey("30"))
	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	if dialog.focus != focusConfirm {
		t.Fatalf("focus = %v, want confirm", dialog.focus)
	}

	dialog, cmd := pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("invalid draft produced a submit command")
	}
	if dialog.currentNotice() != "Please select seats for all passengers" {
		t.Errorf("notice = %q", dialog.currentNotice())
	}
}

func TestSubmitBookingRoundTrip(t *testing.T) {
	dialog, _ := newTestDialog(t)

	draft := dialog.Draft()
	draft.SetFirstName(0, "Ada")
	draft.SetLastName(0, "Lovelace")
	draft.SetAge(0, 30)
	draft.SelectSeat(0, "2B")
	dialog.loadFields()

	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyTab})
	dialog, cmd := pressKey(t, dialog, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !dialog.Draft().Submitting() {
		t.Error("draft not marked submitting")
	}

	// The batch contains the spinner tick and the HTTP call; execute
	// the messages and find the submission result.
	msg := tea.BatchMsg{}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		msg = batch
	} else {
		t.Fatal("expected a batched command")
	}
	var result *bookingSubmittedMsg
	for _, sub := range msg {
		if sub == nil {
			continue
		}
		if submitted, ok := sub().(bookingSubmittedMsg); ok {
			result = &submitted
		}
	}
	if result == nil {
		t.Fatal("no bookingSubmittedMsg in batch")
	}
	if result.err != nil {
		t.Fatalf("submission failed: %v", result.err)
	}
	if result.booking == nil || result.booking.ID != "b1" {
		t.Errorf("booking = %+v", result.booking)
	}
}

func TestDialogViewShowsSixtySeats(t *testing.T) {
	dialog, _ := newTestDialog(t)

	// The grid is always the full 10×6 cabin, regardless of the
	// flight's availableSeats count (3 here).
	view := strings.Join(dialog.OverlayLines(), "\n")
	for _, seat := range booking.AllSeats() {
		if !strings.Contains(view, seat) {
			t.Errorf("seat %s missing from dialog view", seat)
		}
	}
}

func TestTotalUpdatesWithPassengerCount(t *testing.T) {
	dialog, _ := newTestDialog(t)
	dialog = tabToGrid(t, dialog)
	dialog, _ = pressKey(t, dialog, runeKey("+"))
	dialog, _ = pressKey(t, dialog, runeKey("+"))

	view := strings.Join(dialog.OverlayLines(), "\n")
	if !strings.Contains(view, "₹15,000") {
		t.Error("total ₹15,000 not shown for 3 passengers at ₹5,000")
	}
}
