// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package flightui implements the interactive flight-booking terminal
// UI: login and registration forms, the flight search view, the
// booking dialog with its seat grid, and the bookings list.
//
// The top-level [App] model owns the page router and the session
// guard: unauthenticated users see the login form no matter which page
// they ask for, and a persisted session is restored (and revalidated)
// before the first real page renders. Individual pages are value
// models in the bubbletea style; all backend I/O runs in tea.Cmd
// closures that deliver typed messages back into Update, tagged with
// generation counters where a stale response could otherwise
// overwrite newer state.
package flightui
