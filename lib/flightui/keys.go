// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the flightdeck TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement, form field
	// movement, or seat grid movement depending on focus).
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Select is enter: submit a form, book the highlighted flight,
	// pick a seat, confirm the booking.
	Select key.Binding

	// Focus switching within forms and the booking dialog.
	FocusNext     key.Binding
	FocusPrevious key.Binding

	// Page switching (authenticated pages only).
	PageFlights  key.Binding
	PageBookings key.Binding

	// Flight search.
	FilterActivate key.Binding // Quick fuzzy filter over the loaded list.
	SearchForm     key.Binding // Open the server-side search form.
	SortCycle      key.Binding
	Refresh        key.Binding

	// Booking dialog passenger management.
	AddPassenger      key.Binding
	RemovePassenger   key.Binding
	NextPassenger     key.Binding
	PreviousPassenger key.Binding

	// Dismiss closes the booking dialog, the search form, or clears
	// the quick filter.
	Dismiss key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	FocusPrevious: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	PageFlights: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "flights"),
	),
	PageBookings: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "bookings"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	SearchForm: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "search"),
	),
	SortCycle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	AddPassenger: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "add passenger"),
	),
	RemovePassenger: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "remove passenger"),
	),
	NextPassenger: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "next passenger"),
	),
	PreviousPassenger: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "previous passenger"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
