// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the flight-booking backend.
//
// The backend wraps every response in a {success, data, message}
// envelope. This package unwraps the envelope at the client boundary:
// callers receive either typed data or an error. Backend-reported
// failures (success=false, or a 4xx/5xx status) surface as *APIError
// carrying the backend's human-readable message and the HTTP status;
// transport failures wrap the underlying error. Nothing is retried
// and nothing is cached — every call is a single request whose result
// the caller owns.
package api
