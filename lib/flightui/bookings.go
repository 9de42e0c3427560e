// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/api"
)

// bookingsLoadedMsg delivers a bookings fetch result, tagged with the
// request generation so stale responses are dropped.
type bookingsLoadedMsg struct {
	generation int
	bookings   []api.Booking
	err        error
}

// BookingsModel is the booking history view. The highlighted booking
// expands in place to show its passengers and seats.
type BookingsModel struct {
	env *Env

	width  int
	height int

	bookings []api.Booking
	cursor   int

	generation int
	loading    bool
	spinner    spinner.Model

	notice    string
	confirmed string
}

// NewBookingsModel creates an empty bookings view; call Reload to
// fetch.
func NewBookingsModel(env *Env) BookingsModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(env.Theme.AccentForeground)
	return BookingsModel{env: env, spinner: sp}
}

// Resize records the terminal dimensions.
func (m BookingsModel) Resize(width, height int) BookingsModel {
	m.width = width
	m.height = height
	return m
}

// NoteConfirmed records a just-confirmed booking so the view can greet
// the user with it when they land here after checkout.
func (m BookingsModel) NoteConfirmed(booking api.Booking) BookingsModel {
	flight := booking.Flight
	m.confirmed = fmt.Sprintf("Booking confirmed: %s%s %s→%s, %d passenger(s), %s",
		flight.AirlineCode, flight.FlightNumber, flight.Origin, flight.Destination,
		len(booking.Passengers), formatPrice(booking.TotalAmount))
	return m
}

// Reload starts a bookings fetch.
func (m BookingsModel) Reload() (BookingsModel, tea.Cmd) {
	m.generation++
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, fetchBookings(m.env, m.generation))
}

func fetchBookings(env *Env, generation int) tea.Cmd {
	return func() tea.Msg {
		bookings, err := env.Client.Bookings(context.Background(), env.Session.Token())
		return bookingsLoadedMsg{generation: generation, bookings: bookings, err: err}
	}
}

func (m BookingsModel) Update(msg tea.Msg) (BookingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = api.Message(msg.err, "Failed to load bookings")
			return m, nil
		}
		m.notice = ""
		m.bookings = msg.bookings
		if m.cursor >= len(m.bookings) {
			m.cursor = len(m.bookings) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		keys := m.env.Keys
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.bookings)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Home):
			m.cursor = 0
		case key.Matches(msg, keys.End):
			m.cursor = len(m.bookings) - 1
		case key.Matches(msg, keys.Refresh):
			return m.Reload()
		}
		return m, nil
	}
	return m, nil
}

func (m BookingsModel) View() string {
	theme := m.env.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	header := m.renderHeader()

	var body []string
	if m.confirmed != "" {
		body = append(body,
			lipgloss.NewStyle().Foreground(theme.SuccessForeground).Render(" ✓ "+m.confirmed),
			"")
	}
	if m.notice != "" {
		body = append(body, lipgloss.NewStyle().Foreground(theme.ErrorForeground).Render(" "+m.notice), "")
	}

	switch {
	case m.loading && len(m.bookings) == 0:
		body = append(body, faint.Render("  "+m.spinner.View()+" Loading bookings..."))
	case len(m.bookings) == 0:
		body = append(body, faint.Render("  No bookings yet — press 1 and book a flight"))
	default:
		for i, booking := range m.bookings {
			body = append(body, m.renderBooking(booking, i == m.cursor)...)
		}
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render(" 1 flights · r refresh · C-l log out · q quit")

	content := lipgloss.JoinVertical(lipgloss.Left, body...)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, help)
}

func (m BookingsModel) renderHeader() string {
	theme := m.env.Theme
	active := lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1)
	tabs := inactive.Render("1 Flights") + active.Render("2 Bookings")

	var account string
	if user := m.env.Session.User(); user != nil {
		account = lipgloss.NewStyle().Foreground(theme.FaintText).Render(user.Email + " ")
	}

	gap := m.width - lipgloss.Width(tabs) - lipgloss.Width(account)
	if gap < 1 {
		gap = 1
	}
	return tabs + strings.Repeat(" ", gap) + account
}

// renderBooking renders one booking row; the selected booking expands
// to show its passenger list.
func (m BookingsModel) renderBooking(booking api.Booking, selected bool) []string {
	theme := m.env.Theme
	flight := booking.Flight

	summary := fmt.Sprintf(" %s%s %s  %s→%s  %s %s  %d passenger(s)  %s",
		flight.AirlineCode, flight.FlightNumber, flight.Airline,
		flight.Origin, flight.Destination,
		formatDate(flight.Departure), formatTime(flight.Departure),
		len(booking.Passengers), formatPrice(booking.TotalAmount))

	if !selected {
		return []string{lipgloss.NewStyle().Foreground(theme.NormalText).Render(summary)}
	}

	lines := []string{
		lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Render(summary),
	}
	detail := lipgloss.NewStyle().Foreground(theme.FaintText)
	for _, passenger := range booking.Passengers {
		lines = append(lines, detail.Render(fmt.Sprintf("    seat %-4s %s %s, %d, %s",
			passenger.SeatNumber, passenger.FirstName, passenger.LastName,
			passenger.Age, passenger.Gender)))
	}
	if !booking.CreatedAt.IsZero() {
		lines = append(lines, detail.Render("    booked "+formatDateTime(booking.CreatedAt)))
	}
	return lines
}

// Bookings returns the loaded bookings. Used by tests.
func (m BookingsModel) Bookings() []api.Booking {
	return m.bookings
}
