// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightdeck-labs/flightdeck/lib/api"
)

// persistedSession is the on-disk session format. The user snapshot is
// stored alongside the token so the UI can render the account name
// immediately at startup, before the restore round-trip confirms the
// token is still valid.
type persistedSession struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// FilePath returns the path of the session file. Checks the
// FLIGHTDECK_SESSION_FILE environment variable first, then falls back
// to ~/.config/flightdeck/session.json.
func FilePath() string {
	if envPath := os.Getenv("FLIGHTDECK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "flightdeck-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "flightdeck", "session.json")
}

// loadFile reads a persisted session. A missing file is not an error:
// it returns (nil, nil), meaning "not logged in".
func loadFile(path string) (*persistedSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var persisted persistedSession
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if persisted.Token == "" {
		return nil, fmt.Errorf("session file %s has no token", path)
	}
	return &persisted, nil
}

// saveFile writes a session to disk. Creates the parent directory with
// mode 0700 if it doesn't exist. The file is written with mode 0600
// (owner-only read/write) since it contains a bearer token.
func saveFile(path string, persisted *persistedSession) error {
	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// removeFile deletes the session file. A missing file is fine.
func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}
