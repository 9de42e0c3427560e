// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the current time for testability. Production code
// injects Real(); tests inject Fake() and advance it explicitly.
//
// Flightdeck uses deadline comparison rather than background timers
// for transient state (the booking dialog's auto-expiring error), so
// the only operation a Clock needs is Now. Keeping the interface this
// small means every expiry check is a pure function of the injected
// clock and can be tested without sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
