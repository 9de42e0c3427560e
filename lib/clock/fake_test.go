// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if !fake.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), start)
	}

	fake.Advance(3 * time.Second)
	want := start.Add(3 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("after Advance, Now() = %v, want %v", fake.Now(), want)
	}
}

func TestFakeClockSet(t *testing.T) {
	fake := Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	target := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	fake.Set(target)
	if !fake.Now().Equal(target) {
		t.Fatalf("after Set, Now() = %v, want %v", fake.Now(), target)
	}
}

func TestRealClockTicksForward(t *testing.T) {
	real := Real()
	first := real.Now()
	second := real.Now()
	if second.Before(first) {
		t.Fatalf("real clock went backward: %v then %v", first, second)
	}
}
