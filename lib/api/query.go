// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/url"
)

// SortKey orders flight search results server-side.
type SortKey string

const (
	SortPriceAscending      SortKey = "price_asc"
	SortPriceDescending     SortKey = "price_desc"
	SortDepartureAscending  SortKey = "departure_asc"
	SortDepartureDescending SortKey = "departure_desc"
	SortDuration            SortKey = "duration"
)

// SortKeys lists the valid sort keys in display order.
var SortKeys = []SortKey{
	SortPriceAscending,
	SortPriceDescending,
	SortDepartureAscending,
	SortDepartureDescending,
	SortDuration,
}

// ParseSortKey validates a sort key string. The empty string is valid
// and means "backend default order".
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return "", nil
	}
	for _, key := range SortKeys {
		if string(key) == value {
			return key, nil
		}
	}
	return "", fmt.Errorf("api: unknown sort key %q", value)
}

// FlightQuery holds the flight search filters. Zero-valued fields are
// omitted from the request, matching the backend's optional-parameter
// contract.
type FlightQuery struct {
	Origin      string
	Destination string
	// Date filters on the departure day, formatted YYYY-MM-DD.
	Date     string
	MinPrice int
	MaxPrice int
	Airline  string
	SortBy   SortKey
}

// IsZero reports whether no filter is set. An all-zero query lists
// every flight via GET /flights instead of the search endpoint.
func (q FlightQuery) IsZero() bool {
	return q == FlightQuery{}
}

// Values encodes the non-zero filters as URL query parameters.
func (q FlightQuery) Values() url.Values {
	values := url.Values{}
	if q.Origin != "" {
		values.Set("origin", q.Origin)
	}
	if q.Destination != "" {
		values.Set("destination", q.Destination)
	}
	if q.Date != "" {
		values.Set("date", q.Date)
	}
	if q.MinPrice > 0 {
		values.Set("minPrice", fmt.Sprintf("%d", q.MinPrice))
	}
	if q.MaxPrice > 0 {
		values.Set("maxPrice", fmt.Sprintf("%d", q.MaxPrice))
	}
	if q.Airline != "" {
		values.Set("airline", q.Airline)
	}
	if q.SortBy != "" {
		values.Set("sortBy", string(q.SortBy))
	}
	return values
}
