// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strconv"
	"time"
)

// formatStamp renders a timestamp for table output, day-first, in
// local time.
func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006 15:04")
}

// formatRupees renders a rupee amount with thousands separators.
func formatRupees(amount int) string {
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
