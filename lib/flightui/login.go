// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// loginResultMsg reports the outcome of a login attempt. A nil err
// means the session store now holds a validated session.
type loginResultMsg struct {
	err error
}

// loginFieldCount is the number of focusable fields on the login form:
// email, password.
const loginFieldCount = 2

// LoginModel is the email/password form.
type LoginModel struct {
	env *Env

	email      textinput.Model
	password   textinput.Model
	focusIndex int

	submitting bool
	spinner    spinner.Model
	notice     string
}

// NewLoginModel creates a blank login form.
func NewLoginModel(env *Env) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 32

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(env.Theme.AccentForeground)

	return LoginModel{
		env:      env,
		email:    email,
		password: password,
		spinner:  sp,
	}
}

// Focus puts the cursor in the email field.
func (m LoginModel) Focus() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = api.Message(msg.err, "Login failed")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		keys := m.env.Keys
		switch {
		case key.Matches(msg, keys.Select):
			return m.submit()
		case key.Matches(msg, keys.FocusNext), key.Matches(msg, keys.Down):
			m.focusIndex = (m.focusIndex + 1) % loginFieldCount
			return m, m.applyFocus()
		case key.Matches(msg, keys.FocusPrevious), key.Matches(msg, keys.Up):
			m.focusIndex = (m.focusIndex + loginFieldCount - 1) % loginFieldCount
			return m, m.applyFocus()
		}
	}

	var cmd tea.Cmd
	switch m.focusIndex {
	case 0:
		m.email, cmd = m.email.Update(msg)
	case 1:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// applyFocus moves textinput focus to match focusIndex.
func (m *LoginModel) applyFocus() tea.Cmd {
	m.email.Blur()
	m.password.Blur()
	switch m.focusIndex {
	case 0:
		return m.email.Focus()
	case 1:
		return m.password.Focus()
	}
	return nil
}

// submit validates locally, then fires the login command. Validation
// failures never reach the backend.
func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	email := m.email.Value()
	password := m.password.Value()
	if email == "" || password == "" {
		m.notice = "Please enter both email and password"
		return m, nil
	}

	m.notice = ""
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, login(m.env, email, password))
}

func login(env *Env, email, password string) tea.Cmd {
	return func() tea.Msg {
		buffer, err := secret.NewFromBytes([]byte(password))
		if err != nil {
			return loginResultMsg{err: err}
		}
		defer buffer.Close()
		return loginResultMsg{err: env.Session.Login(context.Background(), email, buffer)}
	}
}

func (m LoginModel) View(width, height int) string {
	theme := m.env.Theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	lines := []string{
		titleStyle.Render("Flightdeck"),
		labelStyle.Render("Sign in to book flights"),
		"",
		m.email.View(),
		m.password.View(),
	}

	if m.submitting {
		lines = append(lines, "", m.spinner.View()+" Signing in...")
	} else if m.notice != "" {
		lines = append(lines, "", errorStyle.Render(m.notice))
	}

	lines = append(lines, "", helpStyle.Render("Enter sign in · Ctrl+R create account · Ctrl+C quit"))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
