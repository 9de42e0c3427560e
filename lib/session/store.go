// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// StoreConfig holds configuration for creating a Store.
type StoreConfig struct {
	// Client is the backend API client used for login, registration,
	// and token validation.
	Client *api.Client
	// Path is the session file location. If empty, FilePath() is used.
	Path string
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Store holds the authenticated session and keeps it synchronized with
// the session file. The bearer token lives in a locked secret buffer
// for the Store's lifetime; callers borrow it via Token and must not
// close it.
type Store struct {
	client *api.Client
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	token *secret.Buffer
	user  *api.User
}

// NewStore creates a session store. It does not touch the session
// file; call Restore to pick up a persisted login.
func NewStore(config StoreConfig) (*Store, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("session: Client is required")
	}

	path := config.Path
	if path == "" {
		path = FilePath()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client: config.Client,
		path:   path,
		logger: logger,
	}, nil
}

// Restore loads the persisted session, if any, and revalidates its
// token against the backend. Any failure — missing file, corrupt file,
// rejected or unreachable token — degrades to the logged-out state and
// clears the session file, so the next startup doesn't retry a token
// that is known bad. Restore never returns an error for a failed
// restore; the caller checks Authenticated afterward.
func (s *Store) Restore(ctx context.Context) error {
	persisted, err := loadFile(s.path)
	if err != nil {
		s.logger.Warn("discarding unreadable session file", "error", err)
		return s.clear()
	}
	if persisted == nil {
		return nil
	}

	token, err := secret.NewFromBytes([]byte(persisted.Token))
	if err != nil {
		return fmt.Errorf("session: allocating token buffer: %w", err)
	}

	user, err := s.client.Me(ctx, token)
	if err != nil {
		token.Close()
		if api.IsUnauthorized(err) {
			s.logger.Info("persisted session expired, logging out")
		} else {
			s.logger.Warn("session validation failed, logging out", "error", err)
		}
		return s.clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(token, user)
	s.logger.Info("session restored", "user", user.Email)
	return nil
}

// Login authenticates and persists the resulting session. The password
// buffer is read but not closed — the caller retains ownership.
func (s *Store) Login(ctx context.Context, email string, password *secret.Buffer) error {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(result)
}

// Register creates an account and persists its first session.
func (s *Store) Register(ctx context.Context, request api.RegisterRequest) error {
	result, err := s.client.Register(ctx, request)
	if err != nil {
		return err
	}
	return s.adopt(result)
}

// adopt moves an auth result into the store and writes the session
// file.
func (s *Store) adopt(result *api.AuthResult) error {
	token, err := secret.NewFromBytes([]byte(result.Token))
	if err != nil {
		return fmt.Errorf("session: allocating token buffer: %w", err)
	}

	if err := saveFile(s.path, &persistedSession{Token: result.Token, User: result.User}); err != nil {
		token.Close()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := result.User
	s.replaceLocked(token, &user)
	return nil
}

// Logout discards the in-memory session and removes the session file.
func (s *Store) Logout() error {
	return s.clear()
}

// clear drops any in-memory session and removes the session file.
func (s *Store) clear() error {
	s.mu.Lock()
	s.replaceLocked(nil, nil)
	s.mu.Unlock()
	return removeFile(s.path)
}

// replaceLocked swaps in a new token and user, closing the old token
// buffer. Callers hold s.mu.
func (s *Store) replaceLocked(token *secret.Buffer, user *api.User) {
	if s.token != nil {
		s.token.Close()
	}
	s.token = token
	s.user = user
}

// Authenticated reports whether a validated session is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

// User returns a copy of the authenticated account, or nil when logged
// out.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the bearer token buffer for API calls, or nil when
// logged out. The Store owns the buffer; callers must not close it,
// and must not retain it across a Logout.
func (s *Store) Token() *secret.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Close releases the token buffer. The Store is unusable afterward.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(nil, nil)
}
