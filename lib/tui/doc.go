// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface building blocks
// for the flightdeck client. Built on bubbletea (Elm architecture),
// it covers the theme, modal overlay splicing, scrollbars, and fuzzy
// matching used by the interactive views.
//
// The flight views in lib/flightui import this package for consistent
// look and behavior; they own their own data, layout, and rendering.
package tui
