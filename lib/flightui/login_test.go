// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	env, _ := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("validation failure reached the backend: %s %s", r.Method, r.URL.Path)
	})
	form := NewLoginModel(env)

	// Email filled, password blank: validation happens locally, no
	// command fires.
	form.email.SetValue("ada@example.com")
	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an incomplete form")
	}
	want := "Please enter both email and password"
	if form.notice != want {
		t.Errorf("notice = %q, want %q", form.notice, want)
	}
	if form.submitting {
		t.Error("incomplete form marked submitting")
	}

	// Both blank gets the same treatment.
	form = NewLoginModel(env)
	form, cmd = form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for a blank form")
	}
	if form.notice != want {
		t.Errorf("notice = %q, want %q", form.notice, want)
	}
}

func TestLoginSubmitClearsNotice(t *testing.T) {
	env, _ := newTestEnv(t, backendHandler(t))
	form := NewLoginModel(env)

	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if form.notice == "" {
		t.Fatal("expected a validation notice first")
	}

	form.email.SetValue("ada@example.com")
	form.password.SetValue("hunter2")
	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a login command for a complete form")
	}
	if form.notice != "" {
		t.Errorf("stale notice survived submit: %q", form.notice)
	}
	if !form.submitting {
		t.Error("form not marked submitting")
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	env, _ := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("validation failure reached the backend: %s %s", r.Method, r.URL.Path)
	})
	form := NewRegisterModel(env)

	// Phone left blank; every field is required.
	form.fields[0].SetValue("Ada Lovelace")
	form.fields[1].SetValue("ada@example.com")
	form.fields[2].SetValue("hunter2")
	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an incomplete form")
	}
	want := "Please fill in all fields"
	if form.notice != want {
		t.Errorf("notice = %q, want %q", form.notice, want)
	}
	if form.submitting {
		t.Error("incomplete form marked submitting")
	}

	form.fields[3].SetValue("9999999999")
	_, cmd = form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a register command once every field is filled")
	}
}
