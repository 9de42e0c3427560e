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
)

// registerResultMsg reports the outcome of an account creation
// attempt. A nil err means the session store now holds the new
// account's session.
type registerResultMsg struct {
	err error
}

// registerFieldCount is the number of focusable fields on the
// registration form: name, email, password, phone.
const registerFieldCount = 4

// RegisterModel is the account creation form.
type RegisterModel struct {
	env *Env

	fields     [registerFieldCount]textinput.Model
	focusIndex int

	submitting bool
	spinner    spinner.Model
	notice     string
}

// NewRegisterModel creates a blank registration form.
func NewRegisterModel(env *Env) RegisterModel {
	placeholders := [registerFieldCount]string{"name", "email", "password", "phone"}

	var fields [registerFieldCount]textinput.Model
	for i, placeholder := range placeholders {
		field := textinput.New()
		field.Placeholder = placeholder
		field.CharLimit = 120
		field.Width = 32
		fields[i] = field
	}
	fields[2].EchoMode = textinput.EchoPassword

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(env.Theme.AccentForeground)

	return RegisterModel{env: env, fields: fields, spinner: sp}
}

// Focus puts the cursor in the name field.
func (m RegisterModel) Focus() tea.Cmd {
	return textinput.Blink
}

func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = api.Message(msg.err, "Registration failed")
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
			m.focusIndex = (m.focusIndex + 1) % registerFieldCount
			return m, m.applyFocus()
		case key.Matches(msg, keys.FocusPrevious), key.Matches(msg, keys.Up):
			m.focusIndex = (m.focusIndex + registerFieldCount - 1) % registerFieldCount
			return m, m.applyFocus()
		}
	}

	var cmd tea.Cmd
	m.fields[m.focusIndex], cmd = m.fields[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *RegisterModel) applyFocus() tea.Cmd {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	return m.fields[m.focusIndex].Focus()
}

// submit validates locally, then fires the registration command.
func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	request := api.RegisterRequest{
		Name:     m.fields[0].Value(),
		Email:    m.fields[1].Value(),
		Password: m.fields[2].Value(),
		Phone:    m.fields[3].Value(),
	}
	if request.Name == "" || request.Email == "" || request.Password == "" || request.Phone == "" {
		m.notice = "Please fill in all fields"
		return m, nil
	}

	m.notice = ""
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, register(m.env, request))
}

func register(env *Env, request api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: env.Session.Register(context.Background(), request)}
	}
}

func (m RegisterModel) View(width, height int) string {
	theme := m.env.Theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	lines := []string{
		titleStyle.Render("Create account"),
		"",
	}
	for i := range m.fields {
		lines = append(lines, m.fields[i].View())
	}

	if m.submitting {
		lines = append(lines, "", m.spinner.View()+" Creating account...")
	} else if m.notice != "" {
		lines = append(lines, "", errorStyle.Render(m.notice))
	}

	lines = append(lines, "", helpStyle.Render("Enter register · Esc back to sign in"))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
