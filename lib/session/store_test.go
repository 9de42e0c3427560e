// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// newTestStore builds a Store backed by an httptest server and a
// session file in a temp directory.
func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(StoreConfig{Client: client, Path: path})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Close)
	return store, path
}

func authHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login", "/api/auth/register":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"token": "fresh-token",
					"user":  map[string]string{"_id": "u1", "name": "Ada", "email": "ada@example.com"},
				},
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid token"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"user": map[string]string{"_id": "u1", "name": "Ada", "email": "ada@example.com"}},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestLoginPersistsSession(t *testing.T) {
	store, path := newTestStore(t, authHandler(t))

	password, _ := secret.NewFromBytes([]byte("hunter2"))
	defer password.Close()

	if err := store.Login(context.Background(), "ada@example.com", password); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !store.Authenticated() {
		t.Fatal("not authenticated after login")
	}
	if user := store.User(); user == nil || user.Name != "Ada" {
		t.Errorf("user = %+v", user)
	}
	if token := store.Token(); token == nil || token.String() != "fresh-token" {
		t.Error("token not held after login")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode = %o, want 0600", mode)
	}
}

func TestRestoreValidToken(t *testing.T) {
	store, path := newTestStore(t, authHandler(t))

	persisted := persistedSession{
		Token: "fresh-token",
		User:  api.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}
	if err := saveFile(path, &persisted); err != nil {
		t.Fatalf("seeding session file: %v", err)
	}

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !store.Authenticated() {
		t.Fatal("not authenticated after restore")
	}
	if user := store.User(); user == nil || user.Email != "ada@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestRestoreRejectedTokenClearsFile(t *testing.T) {
	store, path := newTestStore(t, authHandler(t))

	if err := saveFile(path, &persistedSession{Token: "stale-token"}); err != nil {
		t.Fatalf("seeding session file: %v", err)
	}

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("authenticated with a rejected token")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected session file was not removed")
	}
}

func TestRestoreCorruptFileClearsFile(t *testing.T) {
	store, path := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected for a corrupt session file, got %s", r.URL.Path)
	})

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("authenticated from a corrupt session file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt session file was not removed")
	}
}

func TestRestoreWithoutFile(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected without a session file, got %s", r.URL.Path)
	})

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("authenticated without a session file")
	}
}

func TestLogoutRemovesFile(t *testing.T) {
	store, path := newTestStore(t, authHandler(t))

	password, _ := secret.NewFromBytes([]byte("hunter2"))
	defer password.Close()
	if err := store.Login(context.Background(), "ada@example.com", password); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("still authenticated after logout")
	}
	if store.Token() != nil {
		t.Error("token still held after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file survived logout")
	}
}

func TestFilePathEnvOverride(t *testing.T) {
	t.Setenv("FLIGHTDECK_SESSION_FILE", "/tmp/custom-session.json")
	if got := FilePath(); got != "/tmp/custom-session.json" {
		t.Errorf("FilePath = %q", got)
	}

	t.Setenv("FLIGHTDECK_SESSION_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := FilePath(); got != "/tmp/xdg/flightdeck/session.json" {
		t.Errorf("FilePath = %q", got)
	}
}
