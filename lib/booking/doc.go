// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package booking implements the in-progress booking draft: the seat
// grid, the passenger list, seat selection with its conflict rules,
// and the validation gate in front of submission.
//
// A [Draft] is plain state driven by a single goroutine (the UI event
// loop). It performs no I/O: the caller fetches the flight's booked
// seats before opening the draft and submits the finished passenger
// list afterward. Transient notices (like picking a seat another
// passenger in the same draft already holds) expire by comparing
// against an injected clock rather than with background timers, so
// tests control time exactly and nothing races the event loop.
package booking
