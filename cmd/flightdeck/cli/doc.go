// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the flightdeck binary: a
// [Command] tree with optional nested [Command.Subcommands], a
// [pflag.FlagSet] factory, structured help output, and typo
// suggestions for unknown commands and flags. It also carries the
// shared plumbing commands need: terminal prompts, JSON output, and
// the command logger.
package cli
