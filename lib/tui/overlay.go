// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content, leaving the view visible around it. The overlay
// lines are placed starting at (anchorX, anchorY) in screen
// coordinates. Uses ANSI-aware truncation so escape sequences in the
// original view survive on both sides of the overlay. The booking
// dialog renders this way: the flight list stays on screen behind the
// modal.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// Build: prefix + reset + overlay + reset + suffix.
		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices overlayLines into the middle of a view of the
// given dimensions. Overlays taller or wider than the view are
// anchored at the top-left edge instead of clipping negative.
func CenterOverlay(view string, overlayLines []string, viewWidth, viewHeight int) string {
	if len(overlayLines) == 0 {
		return view
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])
	anchorX := (viewWidth - overlayWidth) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY := (viewHeight - len(overlayLines)) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return SpliceOverlay(view, overlayLines, anchorX, anchorY)
}

// PadOverlayLine takes styled content for the inner area of an overlay
// and pads it to the full width with background-colored spaces.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	rightPad := innerWidth - contentWidth
	if rightPad < 0 {
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
