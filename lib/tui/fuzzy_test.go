// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("IndiGo 6E101 DEL BOM", []rune("indigo"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) == 0 {
		t.Fatal("expected non-empty match positions")
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	// "dlbm" should match "DEL BOM" across the word boundary.
	result := FuzzyMatch("DEL BOM", []rune("dlbm"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous fuzzy match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("Air India AI202", []rune("xyz"), nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for no match, got %d", result.Score)
	}
	if len(result.Positions) != 0 {
		t.Errorf("expected empty positions for no match, got %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	result := FuzzyMatch("VISTARA UK955", []rune("vistara"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
	result = FuzzyMatch("SpiceJet SG8194", []rune("SPICE"), nil)
	if result.Score <= 0 {
		t.Fatalf("expected uppercase pattern to match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", []rune{}, nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func TestFuzzyMatchSharedSlab(t *testing.T) {
	slab := NewSlab()
	for _, text := range []string{"IndiGo 6E101", "Air India AI202", "Vistara UK955"} {
		result := FuzzyMatch(text, []rune("ia"), slab)
		if result.Score <= 0 {
			t.Errorf("expected match against %q with shared slab", text)
		}
	}
}
