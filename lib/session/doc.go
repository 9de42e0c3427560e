// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the authenticated user state: the bearer token,
// the account it belongs to, and the session file that makes logins
// survive restarts.
//
// The Store is the only component that touches the token. Views ask it
// for identity ([Store.User]) and hand its token to API calls
// ([Store.Token]); they never see the raw credential as a string. On
// startup, [Store.Restore] revalidates the persisted token against the
// backend and silently discards it when the backend no longer accepts
// it, so a stale session degrades to the login form instead of a
// half-authenticated UI.
package session
