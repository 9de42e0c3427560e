// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/clock"
	"github.com/flightdeck-labs/flightdeck/lib/session"
	"github.com/flightdeck-labs/flightdeck/lib/tui"
)

// Env bundles the services every page needs: the API client, the
// session store, the clock, and the visual configuration. Pages hold a
// shared pointer; none of them own any of it.
type Env struct {
	Client  *api.Client
	Session *session.Store
	Clock   clock.Clock
	Theme   tui.Theme
	Keys    KeyMap
	Logger  *slog.Logger
}

// NewEnv fills in defaults for optional fields: real clock, default
// theme and key map, slog.Default.
func NewEnv(client *api.Client, store *session.Store) *Env {
	return &Env{
		Client:  client,
		Session: store,
		Clock:   clock.Real(),
		Theme:   tui.DefaultTheme,
		Keys:    DefaultKeyMap,
		Logger:  slog.Default(),
	}
}

// Page identifies which view is active.
type Page int

const (
	// PageLoading is shown while the persisted session is being
	// restored at startup.
	PageLoading Page = iota
	// PageLogin is the email/password form.
	PageLogin
	// PageRegister is the account creation form.
	PageRegister
	// PageDashboard is the landing page after login.
	PageDashboard
	// PageFlights is the flight search view.
	PageFlights
	// PageBookings is the user's booking history.
	PageBookings
)

// sessionRestoredMsg reports the outcome of the startup session
// restore. A failed restore is not an error: it lands on the login
// page.
type sessionRestoredMsg struct {
	authenticated bool
}

// openDialogMsg asks the app to open the booking dialog for a flight.
// Emitted by the flights page when the user books the highlighted row.
type openDialogMsg struct {
	flight api.Flight
}

// closeDialogMsg asks the app to dismiss the booking dialog.
type closeDialogMsg struct{}

// bookingSubmittedMsg reports the outcome of a booking submission.
type bookingSubmittedMsg struct {
	booking *api.Booking
	err     error
}

// App is the top-level bubbletea model: page router, session guard,
// and booking dialog host.
type App struct {
	env *Env

	page   Page
	width  int
	height int

	login     LoginModel
	register  RegisterModel
	dashboard DashboardModel
	flights   FlightsModel
	bookings  BookingsModel
	dialog    *DialogModel
}

// NewApp creates the application model. The first frame shows the
// loading page until the session restore completes.
func NewApp(env *Env) App {
	return App{
		env:       env,
		page:      PageLoading,
		login:     NewLoginModel(env),
		register:  NewRegisterModel(env),
		dashboard: NewDashboardModel(env),
		flights:   NewFlightsModel(env),
		bookings:  NewBookingsModel(env),
	}
}

// Init kicks off the session restore.
func (a App) Init() tea.Cmd {
	return restoreSession(a.env)
}

func restoreSession(env *Env) tea.Cmd {
	return func() tea.Msg {
		if err := env.Session.Restore(context.Background()); err != nil {
			env.Logger.Warn("session restore failed", "error", err)
		}
		return sessionRestoredMsg{authenticated: env.Session.Authenticated()}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard = a.dashboard.Resize(msg.Width, msg.Height)
		a.flights = a.flights.Resize(msg.Width, msg.Height)
		a.bookings = a.bookings.Resize(msg.Width, msg.Height)
		if a.dialog != nil {
			dialog := a.dialog.Resize(msg.Width, msg.Height)
			a.dialog = &dialog
		}
		return a, nil

	case sessionRestoredMsg:
		if msg.authenticated {
			a.page = PageDashboard
			return a, nil
		}
		a.page = PageLogin
		return a, a.login.Focus()

	case loginResultMsg:
		if msg.err == nil {
			a.login = NewLoginModel(a.env)
			a.page = PageDashboard
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case registerResultMsg:
		if msg.err == nil {
			a.register = NewRegisterModel(a.env)
			a.page = PageDashboard
			return a, nil
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case openDialogMsg:
		dialog := NewDialogModel(a.env, msg.flight, a.width, a.height)
		a.dialog = &dialog
		return a, a.dialog.FetchBookedSeats()

	case closeDialogMsg:
		a.dialog = nil
		return a, nil

	case bookingSubmittedMsg:
		if msg.err == nil && msg.booking != nil {
			a.dialog = nil
			a.page = PageBookings
			a.bookings = a.bookings.NoteConfirmed(*msg.booking)
			var cmd tea.Cmd
			a.bookings, cmd = a.bookings.Reload()
			return a, cmd
		}
		if a.dialog != nil {
			dialog, cmd := a.dialog.Update(msg)
			a.dialog = &dialog
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.route(msg)
}

// handleKey routes keyboard input. The dialog captures everything
// while open; otherwise input goes to the active page, with the
// app-level bindings (page switching, logout, quit) handled here when
// the page isn't consuming raw typing.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := a.env.Keys

	// Ctrl+C always quits, even mid-typing.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.dialog != nil {
		dialog, cmd := a.dialog.Update(msg)
		a.dialog = &dialog
		return a, cmd
	}

	switch a.page {
	case PageLoading:
		return a, nil

	case PageLogin:
		if msg.String() == "ctrl+r" {
			a.page = PageRegister
			return a, a.register.Focus()
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case PageRegister:
		if key.Matches(msg, keys.Dismiss) {
			a.page = PageLogin
			return a, a.login.Focus()
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd
	}

	// Authenticated pages. Global bindings apply only while the page
	// isn't capturing text input.
	typing := (a.page == PageFlights && a.flights.Typing())
	if !typing {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Logout):
			if err := a.env.Session.Logout(); err != nil {
				a.env.Logger.Warn("logout failed", "error", err)
			}
			a.page = PageLogin
			a.login = NewLoginModel(a.env)
			return a, a.login.Focus()
		case key.Matches(msg, keys.PageFlights):
			if a.page != PageFlights {
				a.page = PageFlights
				var cmd tea.Cmd
				a.flights, cmd = a.flights.Reload()
				return a, cmd
			}
			return a, nil
		case key.Matches(msg, keys.PageBookings):
			if a.page != PageBookings {
				a.page = PageBookings
				var cmd tea.Cmd
				a.bookings, cmd = a.bookings.Reload()
				return a, cmd
			}
			return a, nil
		}
	}

	switch a.page {
	case PageFlights:
		var cmd tea.Cmd
		a.flights, cmd = a.flights.Update(msg)
		return a, cmd
	case PageBookings:
		var cmd tea.Cmd
		a.bookings, cmd = a.bookings.Update(msg)
		return a, cmd
	}
	return a, nil
}

// route delivers non-key messages to whichever model owns them.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case flightsLoadedMsg, searchNoticeFadeMsg:
		a.flights, cmd = a.flights.Update(msg)
		return a, cmd
	case bookingsLoadedMsg:
		a.bookings, cmd = a.bookings.Update(msg)
		return a, cmd
	case bookedSeatsMsg, dialogNoticeFadeMsg:
		if a.dialog != nil {
			dialog, cmd := a.dialog.Update(msg)
			a.dialog = &dialog
			return a, cmd
		}
		return a, nil
	}

	// Spinner ticks and other component messages fan out to the pages
	// that animate.
	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.register, cmd = a.register.Update(msg)
	cmds = append(cmds, cmd)
	a.flights, cmd = a.flights.Update(msg)
	cmds = append(cmds, cmd)
	a.bookings, cmd = a.bookings.Update(msg)
	cmds = append(cmds, cmd)
	if a.dialog != nil {
		dialog, cmd := a.dialog.Update(msg)
		a.dialog = &dialog
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	var view string
	switch a.page {
	case PageLoading:
		style := lipgloss.NewStyle().Foreground(a.env.Theme.FaintText)
		view = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			style.Render("Loading..."))
	case PageLogin:
		view = a.login.View(a.width, a.height)
	case PageRegister:
		view = a.register.View(a.width, a.height)
	case PageDashboard:
		view = a.dashboard.View()
	case PageFlights:
		view = a.flights.View()
	case PageBookings:
		view = a.bookings.View()
	}

	if a.dialog != nil {
		view = tui.CenterOverlay(view, a.dialog.OverlayLines(), a.width, a.height)
	}
	return view
}

// Page returns the active page. Used by tests to assert routing.
func (a App) Page() Page {
	return a.page
}
