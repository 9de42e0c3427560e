// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's scoring tables must be built before the first FuzzyMatchV2
// call; without this every match scores zero.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one piece
// of text. Score is zero for no match; Positions holds the rune
// indices of the matched characters for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// NewSlab allocates a scratch slab for a batch of FuzzyMatch calls.
// Reusing one slab across a whole filter pass avoids re-allocating
// fzf's internal scoring buffers per candidate. Not safe for
// concurrent use.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores pattern against text using fzf's V2 algorithm.
// Matching is case-insensitive: both sides are lowercased. An empty
// pattern matches nothing. A nil slab allocates scratch space per
// call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}
