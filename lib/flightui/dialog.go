// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/booking"
)

// bookedSeatsMsg delivers the booked-seat fetch for the dialog's
// flight.
type bookedSeatsMsg struct {
	flightID string
	seats    []string
	err      error
}

// dialogNoticeFadeMsg triggers a redraw when a transient seat-conflict
// notice's window has passed. The notice itself expires by clock
// deadline inside the draft; this message only forces the frame that
// makes the expiry visible. The generation guard drops ticks scheduled
// for notices that have since been replaced.
type dialogNoticeFadeMsg struct {
	generation int
}

// dialogFocus identifies which region of the dialog has keyboard
// focus.
type dialogFocus int

const (
	// focusFields is the passenger detail form.
	focusFields dialogFocus = iota
	// focusGrid is the seat grid.
	focusGrid
	// focusConfirm is the confirm button.
	focusConfirm
)

// Indexes into the passenger field row: first name, last name, age,
// gender. Gender is a cycling selector rather than a text input.
const (
	fieldFirstName = iota
	fieldLastName
	fieldAge
	fieldGender
	fieldCount
)

var genders = []string{api.GenderMale, api.GenderFemale, api.GenderOther}

// DialogModel is the booking dialog: passenger details, the seat
// grid, and the confirm flow for one flight. It owns a booking.Draft
// and is rendered as an overlay above the flights page.
type DialogModel struct {
	env   *Env
	draft *booking.Draft

	width  int
	height int

	focus           dialogFocus
	fieldIndex      int
	activePassenger int

	firstName textinput.Model
	lastName  textinput.Model
	age       textinput.Model

	gridRow    int // 0-based row in the seat grid.
	gridColumn int

	seatsLoaded bool
	spinner     spinner.Model

	// notice holds submit-path errors (validation, backend rejection).
	// Transient seat-conflict notices live in the draft and expire on
	// their own.
	notice           string
	noticeGeneration int
}

// NewDialogModel opens the booking dialog for a flight. Booked seats
// arrive asynchronously via FetchBookedSeats.
func NewDialogModel(env *Env, flight api.Flight, width, height int) DialogModel {
	firstName := textinput.New()
	firstName.Placeholder = "first name"
	firstName.CharLimit = 60
	firstName.Width = 14
	firstName.Focus()

	lastName := textinput.New()
	lastName.Placeholder = "last name"
	lastName.CharLimit = 60
	lastName.Width = 14

	age := textinput.New()
	age.Placeholder = "age"
	age.CharLimit = 3
	age.Width = 4

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(env.Theme.AccentForeground)

	return DialogModel{
		env:       env,
		draft:     booking.NewDraft(flight, env.Clock),
		width:     width,
		height:    height,
		firstName: firstName,
		lastName:  lastName,
		age:       age,
		spinner:   sp,
	}
}

// Resize records the terminal dimensions.
func (m DialogModel) Resize(width, height int) DialogModel {
	m.width = width
	m.height = height
	return m
}

// Draft exposes the underlying draft. Used by tests.
func (m DialogModel) Draft() *booking.Draft {
	return m.draft
}

// FetchBookedSeats fetches the seats other bookings already hold on
// this flight. The grid renders immediately; booked seats lock in
// when the response lands.
func (m DialogModel) FetchBookedSeats() tea.Cmd {
	env := m.env
	flightID := m.draft.Flight().ID
	return func() tea.Msg {
		result, err := env.Client.BookedSeats(context.Background(), env.Session.Token(), flightID)
		if err != nil {
			return bookedSeatsMsg{flightID: flightID, err: err}
		}
		return bookedSeatsMsg{flightID: flightID, seats: result.Seats}
	}
}

func (m DialogModel) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookedSeatsMsg:
		if msg.flightID != m.draft.Flight().ID {
			return m, nil
		}
		if msg.err != nil {
			// The dialog stays usable with an empty booked set; the
			// backend rejects any seat that was actually taken.
			m.env.Logger.Warn("booked seats fetch failed", "flight", msg.flightID, "error", msg.err)
			m.seatsLoaded = true
			return m, nil
		}
		m.seatsLoaded = true
		m.draft.SetBookedSeats(msg.seats)
		return m, nil

	case dialogNoticeFadeMsg:
		// Redraw only; the draft notice has already expired by clock
		// deadline. Stale generations were replaced by a newer notice
		// whose own tick is still pending.
		return m, nil

	case bookingSubmittedMsg:
		m.draft.FinishSubmit()
		if msg.err != nil {
			m.notice = api.Message(msg.err, "Booking failed")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.draft.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DialogModel) handleKey(msg tea.KeyMsg) (DialogModel, tea.Cmd) {
	keys := m.env.Keys

	if m.draft.Submitting() {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Dismiss):
		return m, func() tea.Msg { return closeDialogMsg{} }

	case key.Matches(msg, keys.FocusNext):
		m.advanceFocus(1)
		return m, m.applyFieldFocus()

	case key.Matches(msg, keys.FocusPrevious):
		m.advanceFocus(-1)
		return m, m.applyFieldFocus()

	case key.Matches(msg, keys.NextPassenger):
		m.switchPassenger((m.activePassenger + 1) % m.draft.PassengerCount())
		return m, nil

	case key.Matches(msg, keys.PreviousPassenger):
		count := m.draft.PassengerCount()
		m.switchPassenger((m.activePassenger + count - 1) % count)
		return m, nil
	}

	switch m.focus {
	case focusFields:
		return m.handleFieldKey(msg)
	case focusGrid:
		return m.handleGridKey(msg)
	case focusConfirm:
		if key.Matches(msg, keys.Select) {
			return m.submit()
		}
		if key.Matches(msg, keys.AddPassenger) {
			return m.addPassenger(), nil
		}
		if key.Matches(msg, keys.RemovePassenger) {
			return m.removePassenger(), nil
		}
	}
	return m, nil
}

// advanceFocus steps through the focus ring: the four passenger
// fields, then the grid, then confirm.
func (m *DialogModel) advanceFocus(direction int) {
	// Positions 0..3 are fields, 4 is the grid, 5 is confirm.
	position := m.fieldIndex
	switch m.focus {
	case focusGrid:
		position = fieldCount
	case focusConfirm:
		position = fieldCount + 1
	}
	position = (position + direction + fieldCount + 2) % (fieldCount + 2)

	switch {
	case position < fieldCount:
		m.focus = focusFields
		m.fieldIndex = position
	case position == fieldCount:
		m.focus = focusGrid
	default:
		m.focus = focusConfirm
	}
}

// applyFieldFocus synchronizes textinput focus with the focus ring.
func (m *DialogModel) applyFieldFocus() tea.Cmd {
	m.firstName.Blur()
	m.lastName.Blur()
	m.age.Blur()
	if m.focus != focusFields {
		return nil
	}
	switch m.fieldIndex {
	case fieldFirstName:
		return m.firstName.Focus()
	case fieldLastName:
		return m.lastName.Focus()
	case fieldAge:
		return m.age.Focus()
	}
	return nil
}

// switchPassenger saves the visible field values and loads another
// passenger into the form.
func (m *DialogModel) switchPassenger(index int) {
	m.storeFields()
	m.activePassenger = index
	m.loadFields()
}

// storeFields writes the form inputs into the draft's active
// passenger. A non-numeric age stores as zero and is caught by
// validation at submit.
func (m *DialogModel) storeFields() {
	m.draft.SetFirstName(m.activePassenger, strings.TrimSpace(m.firstName.Value()))
	m.draft.SetLastName(m.activePassenger, strings.TrimSpace(m.lastName.Value()))
	age, _ := strconv.Atoi(strings.TrimSpace(m.age.Value()))
	m.draft.SetAge(m.activePassenger, age)
}

// loadFields fills the form inputs from the draft's active passenger.
func (m *DialogModel) loadFields() {
	passenger := m.draft.Passenger(m.activePassenger)
	m.firstName.SetValue(passenger.FirstName)
	m.lastName.SetValue(passenger.LastName)
	if passenger.Age > 0 {
		m.age.SetValue(strconv.Itoa(passenger.Age))
	} else {
		m.age.SetValue("")
	}
}

func (m DialogModel) handleFieldKey(msg tea.KeyMsg) (DialogModel, tea.Cmd) {
	keys := m.env.Keys

	if m.fieldIndex == fieldGender {
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right), key.Matches(msg, keys.Select):
			current := m.draft.Passenger(m.activePassenger).Gender
			index := 0
			for i, gender := range genders {
				if gender == current {
					index = i
				}
			}
			step := 1
			if key.Matches(msg, keys.Left) {
				step = len(genders) - 1
			}
			m.draft.SetGender(m.activePassenger, genders[(index+step)%len(genders)])
		}
		return m, nil
	}

	if key.Matches(msg, keys.Select) {
		m.advanceFocus(1)
		return m, m.applyFieldFocus()
	}

	var cmd tea.Cmd
	switch m.fieldIndex {
	case fieldFirstName:
		m.firstName, cmd = m.firstName.Update(msg)
	case fieldLastName:
		m.lastName, cmd = m.lastName.Update(msg)
	case fieldAge:
		m.age, cmd = m.age.Update(msg)
	}
	m.storeFields()
	return m, cmd
}

func (m DialogModel) handleGridKey(msg tea.KeyMsg) (DialogModel, tea.Cmd) {
	keys := m.env.Keys
	switch {
	case key.Matches(msg, keys.Up):
		if m.gridRow > 0 {
			m.gridRow--
		}
	case key.Matches(msg, keys.Down):
		if m.gridRow < booking.SeatRows-1 {
			m.gridRow++
		}
	case key.Matches(msg, keys.Left):
		if m.gridColumn > 0 {
			m.gridColumn--
		}
	case key.Matches(msg, keys.Right):
		if m.gridColumn < booking.SeatColumns-1 {
			m.gridColumn++
		}
	case key.Matches(msg, keys.AddPassenger):
		return m.addPassenger(), nil
	case key.Matches(msg, keys.RemovePassenger):
		return m.removePassenger(), nil
	case key.Matches(msg, keys.Select), msg.String() == " ":
		seat := booking.SeatLabel(m.gridRow+1, m.gridColumn)
		m.draft.SelectSeat(m.activePassenger, seat)
		if m.draft.Notice() != "" {
			m.noticeGeneration++
			generation := m.noticeGeneration
			return m, tea.Tick(booking.NoticeTTL, func(time.Time) tea.Msg {
				return dialogNoticeFadeMsg{generation: generation}
			})
		}
	}
	return m, nil
}

// addPassenger appends a blank passenger and makes it active.
func (m DialogModel) addPassenger() DialogModel {
	if !m.draft.CanAddPassenger() {
		m.notice = "No more seats available on this flight"
		return m
	}
	m.storeFields()
	m.draft.AddPassenger()
	m.activePassenger = m.draft.PassengerCount() - 1
	m.loadFields()
	m.notice = ""
	return m
}

// removePassenger drops the active passenger.
func (m DialogModel) removePassenger() DialogModel {
	if m.draft.PassengerCount() <= 1 {
		return m
	}
	m.draft.RemovePassenger(m.activePassenger)
	if m.activePassenger >= m.draft.PassengerCount() {
		m.activePassenger = m.draft.PassengerCount() - 1
	}
	m.loadFields()
	return m
}

// submit validates and fires the booking request.
func (m DialogModel) submit() (DialogModel, tea.Cmd) {
	m.storeFields()
	passengers, err := m.draft.BeginSubmit()
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}

	m.notice = ""
	env := m.env
	flightID := m.draft.Flight().ID
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		booked, err := env.Client.CreateBooking(context.Background(), env.Session.Token(), flightID, passengers)
		return bookingSubmittedMsg{booking: booked, err: err}
	})
}

// OverlayLines renders the dialog as equal-width lines for overlay
// splicing.
func (m DialogModel) OverlayLines() []string {
	theme := m.env.Theme
	flight := m.draft.Flight()

	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	accent := lipgloss.NewStyle().Foreground(theme.AccentForeground)

	var lines []string
	lines = append(lines,
		titleStyle.Render("Book flight"),
		fmt.Sprintf("%s%s %s  %s → %s", flight.AirlineCode, flight.FlightNumber,
			flight.Airline, flight.Origin, flight.Destination),
		faint.Render(fmt.Sprintf("%s %s → %s  ·  %s/person",
			formatDate(flight.Departure), formatTime(flight.Departure),
			formatTime(flight.Arrival), formatPrice(flight.Price))),
		"")

	if notice := m.currentNotice(); notice != "" {
		lines = append(lines, errorStyle.Render(notice), "")
	}

	lines = append(lines, m.renderPassengerForm()...)
	lines = append(lines, "")
	lines = append(lines, m.renderSeatGrid()...)
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Passengers: %d  ·  %s/person  ·  Total %s",
		m.draft.PassengerCount(), formatPrice(flight.Price),
		accent.Render(formatPrice(m.draft.TotalAmount()))))

	confirm := "[ Confirm booking ]"
	if m.draft.Submitting() {
		confirm = m.spinner.View() + " Processing..."
	} else if m.focus == focusConfirm {
		confirm = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Render(confirm)
	}
	lines = append(lines, "", confirm, "",
		lipgloss.NewStyle().Foreground(theme.HelpText).
			Render("Tab fields/seats/confirm · C-n/C-p passenger · + add · - remove · Esc cancel"))

	return boxLines(lines, theme.BorderColor)
}

// currentNotice picks the message to show: submit errors win over
// transient seat-conflict notices.
func (m DialogModel) currentNotice() string {
	if m.notice != "" {
		return m.notice
	}
	return m.draft.Notice()
}

func (m DialogModel) renderPassengerForm() []string {
	theme := m.env.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	passenger := m.draft.Passenger(m.activePassenger)

	header := fmt.Sprintf("Passenger %d of %d", m.activePassenger+1, m.draft.PassengerCount())
	if seat := passenger.SeatNumber; seat != "" {
		header += "  ·  seat " + seat
	}

	gender := "‹ " + passenger.Gender + " ›"
	genderLabel := faint.Render("gender ")
	if m.focus == focusFields && m.fieldIndex == fieldGender {
		gender = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Render(gender)
	}

	return []string{
		faint.Render(header),
		m.firstName.View() + " " + m.lastName.View(),
		m.age.View() + "  " + genderLabel + gender,
	}
}

func (m DialogModel) renderSeatGrid() []string {
	theme := m.env.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	lines := []string{faint.Render("     A   B   C   D   E   F")}
	for row := 0; row < booking.SeatRows; row++ {
		var cells []string
		for column := 0; column < booking.SeatColumns; column++ {
			cells = append(cells, m.renderSeat(row, column))
		}
		lines = append(lines, fmt.Sprintf("%s %s", faint.Render(fmt.Sprintf("%2d", row+1)), strings.Join(cells, "")))
	}

	if !m.seatsLoaded {
		lines = append(lines, faint.Render("loading booked seats..."))
	} else {
		lines = append(lines, faint.Render("■ booked  ■ yours  ■ other passenger"))
	}
	return lines
}

func (m DialogModel) renderSeat(row, column int) string {
	theme := m.env.Theme
	seat := booking.SeatLabel(row+1, column)
	state := m.draft.SeatState(m.activePassenger, seat)

	foreground, background := theme.SeatColors(state)
	style := lipgloss.NewStyle().Foreground(foreground)
	if background != "" {
		style = style.Background(background)
	}

	cell := fmt.Sprintf(" %-3s", seat)
	if m.focus == focusGrid && row == m.gridRow && column == m.gridColumn {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(cell)
}

// boxLines wraps content lines in a rounded border and splits the
// result back into equal-width lines for the overlay splicer.
func boxLines(lines []string, borderColor lipgloss.Color) []string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return strings.Split(box, "\n")
}
