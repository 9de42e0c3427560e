// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flightdeck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.API.Timeout)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:5000/api
  timeout: 5s
session_file: /tmp/flightdeck-test-session.json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.SessionFile != "/tmp/flightdeck-test-session.json" {
		t.Errorf("session_file = %q", cfg.SessionFile)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:5000/api
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want the default 30s", cfg.API.Timeout)
	}
}

func TestLoadFileRejectsBadBaseURL(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: localhost:5000
`)

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("LoadFile = %v, want base_url validation error", err)
	}
}

func TestLoadWithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("FLIGHTDECK_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
}

func TestLoadWithEnv(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:9000/api
`)
	t.Setenv("FLIGHTDECK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9000/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
}
