// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/config"
	"github.com/flightdeck-labs/flightdeck/lib/session"
)

// connection bundles the API client and session store that every
// command needs, built from the loaded configuration.
type connection struct {
	Config  *config.Config
	Client  *api.Client
	Session *session.Store
}

// connect loads configuration and wires up the API client and session
// store. The session is not restored; call restore or requireLogin.
func connect(logger *slog.Logger) (*connection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}

	store, err := session.NewStore(session.StoreConfig{
		Client: client,
		Path:   cfg.SessionFile,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	return &connection{Config: cfg, Client: client, Session: store}, nil
}

// requireLogin restores the saved session and fails if no valid login
// is available.
func (c *connection) requireLogin(ctx context.Context) error {
	if err := c.Session.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !c.Session.Authenticated() {
		return fmt.Errorf("not logged in (run 'flightdeck login')")
	}
	return nil
}

// Close releases the session store's locked token memory.
func (c *connection) Close() {
	c.Session.Close()
}
