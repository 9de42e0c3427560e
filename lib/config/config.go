// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the flightdeck
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - FLIGHTDECK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// Every field has a working default, so no config file is needed for
// the common case. Environment variables do not override file values;
// the file is the single source of truth when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the flightdeck client configuration.
type Config struct {
	// API configures the backend connection.
	API APIConfig `yaml:"api"`

	// SessionFile is where the login session is persisted. Empty means
	// the default path (~/.config/flightdeck/session.json, or
	// FLIGHTDECK_SESSION_FILE).
	SessionFile string `yaml:"session_file"`
}

// APIConfig configures the backend API connection.
type APIConfig struct {
	// BaseURL is the root of the backend API, including the /api
	// prefix.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request. Zero means the default.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration: the public backend with
// a 30-second request timeout.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://tentwenty-backend.onrender.com/api",
			Timeout: 30 * time.Second,
		},
	}
}

// Load loads configuration from the FLIGHTDECK_CONFIG environment
// variable, falling back to the built-in defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("FLIGHTDECK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applied on
// top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %v", c.API.Timeout)
	}
	return nil
}
