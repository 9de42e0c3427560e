// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{5000, "₹5,000"},
		{15000, "₹15,000"},
		{1234567, "₹1,234,567"},
		{-2500, "-₹2,500"},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.amount); got != tc.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "—"},
		{-time.Hour, "—"},
		{45 * time.Minute, "45m"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{3 * time.Hour, "3h 0m"},
		{90*time.Minute + 30*time.Second, "1h 30m"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatDateHandlesZeroTime(t *testing.T) {
	if got := formatDate(time.Time{}); got != "—" {
		t.Errorf("formatDate(zero) = %q", got)
	}
	if got := formatTime(time.Time{}); got != "—" {
		t.Errorf("formatTime(zero) = %q", got)
	}

	stamp := time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC)
	if got := formatDate(stamp.UTC()); got == "" {
		t.Error("formatDate returned empty string")
	}
}
