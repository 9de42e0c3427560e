// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel is the landing page after login: a welcome line and
// the route to everything else. It holds no state beyond the terminal
// size; navigation is handled by the app-level key bindings.
type DashboardModel struct {
	env *Env

	width  int
	height int
}

func NewDashboardModel(env *Env) DashboardModel {
	return DashboardModel{env: env}
}

// Resize records the terminal dimensions.
func (m DashboardModel) Resize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

func (m DashboardModel) View() string {
	theme := m.env.Theme

	name := "traveller"
	if user := m.env.Session.User(); user != nil && user.Name != "" {
		name = user.Name
	}

	title := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("Welcome, " + name)

	menu := lipgloss.NewStyle().Foreground(theme.NormalText).Render(
		"1  Search flights\n" +
			"2  My bookings")

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("C-l log out · q quit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", menu, "", help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
