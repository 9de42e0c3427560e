// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/booking"
)

// Theme defines the color palette for the flightdeck terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// semantic categories the views share: seat states in the booking
// grid, notice severities, and the accent used for prices and totals.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Seat grid.
	SeatAvailable          lipgloss.Color
	SeatBookedForeground   lipgloss.Color
	SeatBookedBackground   lipgloss.Color
	SeatSelectedForeground lipgloss.Color
	SeatSelectedBackground lipgloss.Color
	SeatOtherForeground    lipgloss.Color
	SeatOtherBackground    lipgloss.Color

	// Notices.
	ErrorForeground   lipgloss.Color
	SuccessForeground lipgloss.Color

	// Prices and totals.
	AccentForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Search and filter match highlighting.
	SearchHighlightBackground lipgloss.Color
}

// SeatColors returns the foreground and background for a seat state.
// Available seats have no background; the zero color leaves the
// terminal default in place.
func (theme Theme) SeatColors(state booking.SeatState) (foreground, background lipgloss.Color) {
	switch state {
	case booking.SeatBooked:
		return theme.SeatBookedForeground, theme.SeatBookedBackground
	case booking.SeatSelected:
		return theme.SeatSelectedForeground, theme.SeatSelectedBackground
	case booking.SeatSelectedByOther:
		return theme.SeatOtherForeground, theme.SeatOtherBackground
	default:
		return theme.SeatAvailable, ""
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeatAvailable:          lipgloss.Color("252"),
	SeatBookedForeground:   lipgloss.Color("240"), // dim gray on
	SeatBookedBackground:   lipgloss.Color("236"), // darker gray: locked
	SeatSelectedForeground: lipgloss.Color("255"),
	SeatSelectedBackground: lipgloss.Color("27"), // blue: your seat
	SeatOtherForeground:    lipgloss.Color("233"),
	SeatOtherBackground:    lipgloss.Color("220"), // amber: another passenger's seat

	ErrorForeground:   lipgloss.Color("196"), // bright red
	SuccessForeground: lipgloss.Color("114"), // green

	AccentForeground: lipgloss.Color("75"), // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber
}
