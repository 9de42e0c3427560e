// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// newTestClient points a Client at an httptest server running handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func testToken(t *testing.T) *secret.Buffer {
	t.Helper()
	token, err := secret.NewFromBytes([]byte("test-token"))
	if err != nil {
		t.Fatalf("creating token buffer: %v", err)
	}
	t.Cleanup(func() { token.Close() })
	return token
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a bearer token")
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding login body: %v", err)
		}
		if body["email"] != "ada@example.com" || body["password"] != "hunter2" {
			t.Errorf("login body = %v", body)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "issued-token",
				"user":  map[string]string{"_id": "u1", "name": "Ada", "email": "ada@example.com"},
			},
		})
	})

	password, err := secret.NewFromBytes([]byte("hunter2"))
	if err != nil {
		t.Fatalf("password buffer: %v", err)
	}
	defer password.Close()

	result, err := client.Login(context.Background(), "ada@example.com", password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "issued-token" {
		t.Errorf("token = %q", result.Token)
	}
	if result.User.Name != "Ada" {
		t.Errorf("user = %+v", result.User)
	}
}

func TestLoginBackendFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	})

	password, _ := secret.NewFromBytes([]byte("wrong"))
	defer password.Close()

	_, err := client.Login(context.Background(), "ada@example.com", password)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *APIError: %v", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized = false for a 401")
	}
}

func TestSuccessFalseWithoutStatus(t *testing.T) {
	// Some backend failures come back as 200 + success:false.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Seat 1A is already booked",
		})
	})

	_, err := client.CreateBooking(context.Background(), testToken(t), "f1", []Passenger{
		{FirstName: "Ada", LastName: "L", Age: 30, Gender: GenderFemale, SeatNumber: "1A"},
	})
	if Message(err, "fallback") != "Seat 1A is already booked" {
		t.Errorf("Message = %q", Message(err, "fallback"))
	}
}

func TestMeSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"user": map[string]string{"_id": "u1", "name": "Ada"}},
		})
	})

	user, err := client.Me(context.Background(), testToken(t))
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("user = %+v", user)
	}
}

func TestSearchFlightsEncodesFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/flights/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("origin") != "DEL" || query.Get("destination") != "BOM" {
			t.Errorf("route filters = %v", query)
		}
		if query.Get("minPrice") != "1000" || query.Get("maxPrice") != "9000" {
			t.Errorf("price filters = %v", query)
		}
		if query.Get("sortBy") != "price_asc" {
			t.Errorf("sortBy = %q", query.Get("sortBy"))
		}
		if query.Has("date") || query.Has("airline") {
			t.Errorf("unset filters leaked into query: %v", query)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, err := client.SearchFlights(context.Background(), testToken(t), FlightQuery{
		Origin:      "DEL",
		Destination: "BOM",
		MinPrice:    1000,
		MaxPrice:    9000,
		SortBy:      SortPriceAscending,
	})
	if err != nil {
		t.Fatalf("SearchFlights: %v", err)
	}
}

func TestSearchFlightsZeroQueryListsAll(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/flights" {
			t.Errorf("zero query should hit /flights, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"_id": "f1", "airline": "IndiGo", "flightNumber": "6E101", "price": 5000, "availableSeats": 3},
			},
		})
	})

	flights, err := client.SearchFlights(context.Background(), testToken(t), FlightQuery{})
	if err != nil {
		t.Fatalf("SearchFlights: %v", err)
	}
	if len(flights) != 1 || flights[0].Airline != "IndiGo" {
		t.Errorf("flights = %+v", flights)
	}
}

func TestBookedSeats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/flights/f1/booked-seats" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"bookedSeats": []string{"1A", "2B"}, "totalBooked": 2},
		})
	})

	seats, err := client.BookedSeats(context.Background(), testToken(t), "f1")
	if err != nil {
		t.Fatalf("BookedSeats: %v", err)
	}
	if len(seats.Seats) != 2 || seats.TotalBooked != 2 {
		t.Errorf("seats = %+v", seats)
	}
}

func TestCreateBookingPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FlightID   string      `json:"flightId"`
			Passengers []Passenger `json:"passengers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding booking body: %v", err)
		}
		if body.FlightID != "f1" || len(body.Passengers) != 2 {
			t.Errorf("booking body = %+v", body)
		}
		if body.Passengers[0].SeatNumber != "1A" {
			t.Errorf("first passenger = %+v", body.Passengers[0])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "b1", "totalAmount": 10000},
		})
	})

	booking, err := client.CreateBooking(context.Background(), testToken(t), "f1", []Passenger{
		{FirstName: "Ada", LastName: "L", Age: 30, Gender: GenderFemale, SeatNumber: "1A"},
		{FirstName: "Brie", LastName: "K", Age: 28, Gender: GenderFemale, SeatNumber: "1B"},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.TotalAmount != 10000 {
		t.Errorf("totalAmount = %d", booking.TotalAmount)
	}
}

func TestNonJSONErrorResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := client.Flights(context.Background(), testToken(t))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *APIError: %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", "", false},
		{"price_asc", SortPriceAscending, false},
		{"duration", SortDuration, false},
		{"alphabetical", "", true},
	}
	for _, test := range tests {
		got, err := ParseSortKey(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseSortKey(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}
