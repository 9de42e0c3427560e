// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/flightdeck-labs/flightdeck/lib/netutil"
	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the root of the backend API, including the /api
	// prefix (e.g., "https://bookings.example.com/api").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client issues requests to the flight-booking backend. It is
// stateless apart from the transport: the bearer token is passed into
// each authenticated call by the session store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs are built by direct
	// concatenation.
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Login authenticates with email and password. The password Buffer is
// read but not closed — the caller retains ownership.
func (c *Client) Login(ctx context.Context, email string, password *secret.Buffer) (*AuthResult, error) {
	if email == "" {
		return nil, fmt.Errorf("api: email is required for login")
	}
	if password == nil {
		return nil, fmt.Errorf("api: password is required for login")
	}

	// Password is converted to string at the JSON serialization
	// boundary. The heap copy is short-lived — it exists only during
	// the HTTP call.
	request := map[string]string{
		"email":    email,
		"password": password.String(),
	}

	var result AuthResult
	if err := c.call(ctx, http.MethodPost, "/auth/login", nil, request, nil, &result); err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	c.logger.Info("logged in", "user", result.User.Email)
	return &result, nil
}

// Register creates a new account and returns its first session.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*AuthResult, error) {
	if request.Name == "" || request.Email == "" || request.Password == "" || request.Phone == "" {
		return nil, fmt.Errorf("api: name, email, password, and phone are all required for registration")
	}

	var result AuthResult
	if err := c.call(ctx, http.MethodPost, "/auth/register", nil, request, nil, &result); err != nil {
		return nil, fmt.Errorf("api: registration failed: %w", err)
	}

	c.logger.Info("registered account", "user", result.User.Email)
	return &result, nil
}

// Me validates the bearer token and returns the account it belongs to.
// Used by session restore at startup.
func (c *Client) Me(ctx context.Context, token *secret.Buffer) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, "/auth/me", token, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("api: identity check failed: %w", err)
	}
	return &result.User, nil
}

// Flights lists all flights.
func (c *Client) Flights(ctx context.Context, token *secret.Buffer) ([]Flight, error) {
	var flights []Flight
	if err := c.call(ctx, http.MethodGet, "/flights", token, nil, nil, &flights); err != nil {
		return nil, fmt.Errorf("api: listing flights failed: %w", err)
	}
	return flights, nil
}

// SearchFlights lists flights matching the query filters. A zero
// query is equivalent to Flights.
func (c *Client) SearchFlights(ctx context.Context, token *secret.Buffer, query FlightQuery) ([]Flight, error) {
	if query.IsZero() {
		return c.Flights(ctx, token)
	}

	var flights []Flight
	if err := c.call(ctx, http.MethodGet, "/flights/search", token, nil, query.Values(), &flights); err != nil {
		return nil, fmt.Errorf("api: flight search failed: %w", err)
	}
	return flights, nil
}

// BookedSeats fetches the seat labels already consumed by other
// bookings on one flight.
func (c *Client) BookedSeats(ctx context.Context, token *secret.Buffer, flightID string) (*BookedSeats, error) {
	if flightID == "" {
		return nil, fmt.Errorf("api: flight ID is required")
	}

	var result BookedSeats
	path := "/flights/" + url.PathEscape(flightID) + "/booked-seats"
	if err := c.call(ctx, http.MethodGet, path, token, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("api: fetching booked seats failed: %w", err)
	}
	return &result, nil
}

// CreateBooking submits a booking for the flight with the finalized
// passenger list. Every passenger must already carry a seat label;
// the booking dialog enforces that before calling. The authoritative
// seat-conflict check happens server-side — a seat taken between the
// booked-seats fetch and this call comes back as an *APIError.
func (c *Client) CreateBooking(ctx context.Context, token *secret.Buffer, flightID string, passengers []Passenger) (*Booking, error) {
	if flightID == "" {
		return nil, fmt.Errorf("api: flight ID is required")
	}
	if len(passengers) == 0 {
		return nil, fmt.Errorf("api: at least one passenger is required")
	}

	request := map[string]any{
		"flightId":   flightID,
		"passengers": passengers,
	}

	var booking Booking
	if err := c.call(ctx, http.MethodPost, "/bookings", token, request, nil, &booking); err != nil {
		return nil, fmt.Errorf("api: creating booking failed: %w", err)
	}

	c.logger.Info("booking created",
		"flight", flightID,
		"passengers", len(passengers),
	)
	return &booking, nil
}

// Bookings lists the current user's bookings.
func (c *Client) Bookings(ctx context.Context, token *secret.Buffer) ([]Booking, error) {
	var bookings []Booking
	if err := c.call(ctx, http.MethodGet, "/bookings", token, nil, nil, &bookings); err != nil {
		return nil, fmt.Errorf("api: listing bookings failed: %w", err)
	}
	return bookings, nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// call performs one request and unwraps the response envelope into
// result. token may be nil for the unauthenticated auth endpoints;
// query may be nil. result may be nil for calls whose data payload
// the caller ignores.
//
// A 2xx response with success=true decodes data into result. Anything
// else becomes a *APIError carrying the backend's message (or a
// generic fallback) and the HTTP status.
func (c *Client) call(ctx context.Context, method, path string, token *secret.Buffer, requestBody any, query url.Values, result any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		request.Header.Set("Authorization", "Bearer "+token.String())
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	var wrapped envelope
	if jsonErr := json.Unmarshal(responseBody, &wrapped); jsonErr != nil {
		// Non-JSON response. Expected only from intermediaries
		// (gateways, load balancers) — surface the status and the
		// raw body.
		return &APIError{
			StatusCode: response.StatusCode,
			Message:    genericMessage(response.StatusCode, string(responseBody)),
		}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 || !wrapped.Success {
		message := wrapped.Message
		if message == "" {
			message = genericMessage(response.StatusCode, "")
		}
		return &APIError{StatusCode: response.StatusCode, Message: message}
	}

	if result == nil || len(wrapped.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(wrapped.Data, result); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// genericMessage builds a fallback message for responses with no
// backend-supplied one.
func genericMessage(statusCode int, rawBody string) string {
	trimmed := strings.TrimSpace(rawBody)
	if trimmed != "" {
		if len(trimmed) > 200 {
			trimmed = trimmed[:200]
		}
		return trimmed
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "request failed"
}
