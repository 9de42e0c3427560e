// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a business failure reported by the backend:
// either an HTTP error status or a {success:false} envelope. Callers
// can use errors.As to extract the structured information:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) {
//	    show(apiErr.Message)
//	}
type APIError struct {
	// StatusCode is the HTTP status of the response. Zero when the
	// backend returned 200 with a success:false envelope.
	StatusCode int
	// Message is the backend's human-readable message, or a generic
	// fallback when the backend supplied none.
	Message string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return "api: " + e.Message
}

// IsUnauthorized reports whether err is a backend rejection of the
// bearer token (401). The session store clears the persisted token
// when startup validation fails this way.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Message returns the backend-supplied message from err when err is an
// *APIError, otherwise the given fallback. Views use this to render
// inline failure notices without caring about the error's shape.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
