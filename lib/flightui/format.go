// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"fmt"
	"strconv"
	"time"
)

// Display formatting follows en-GB conventions: day-first dates,
// 24-hour times.

// formatDate renders a timestamp as "31 Aug 2026" in local time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("02 Jan 2006")
}

// formatTime renders a timestamp as "15:04" in local time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("15:04")
}

// formatDateTime renders "31 Aug 2026 15:04" in local time.
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("02 Jan 2006 15:04")
}

// formatDuration renders a flight duration as "2h 15m". Sub-minute
// remainders are dropped; a zero duration (missing timestamps) renders
// as a dash.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "—"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// formatPrice renders a rupee amount with thousands separators:
// "₹15,000".
func formatPrice(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var grouped []byte
	for i, digit := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, digit)
	}
	if negative {
		return "-₹" + string(grouped)
	}
	return "₹" + string(grouped)
}
