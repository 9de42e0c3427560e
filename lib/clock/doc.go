// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code takes a clock.Clock and calls Now instead of
// time.Now. Tests construct a FakeClock with a fixed start time and
// move it forward with Advance, making time-dependent behavior (such
// as the booking dialog's three-second transient error) fully
// deterministic.
package clock
