// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/flightdeck-labs/flightdeck/lib/secret"
)

// PromptLine prints label to stderr and reads one line from stdin.
// The returned value is trimmed of surrounding whitespace.
func PromptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptPassword reads a password from the terminal with echo disabled
// and returns it in a locked buffer. Fails when stdin is not a terminal
// so a piped invocation never silently swallows unrelated input (use
// --password-file in scripts).
func PromptPassword(label string) (*secret.Buffer, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, err
	}
	return buffer, nil
}

// ReadSecretFile reads a secret from a file path into a locked buffer,
// stripping trailing newlines (common with echo/printf pipelines).
func ReadSecretFile(path string) (*secret.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}

	if len(data) == 0 {
		secret.Zero(data)
		return nil, fmt.Errorf("file %s is empty (after stripping trailing newlines)", path)
	}

	buffer, err := secret.NewFromBytes(data)
	if err != nil {
		secret.Zero(data)
		return nil, err
	}
	return buffer, nil
}

// ReadPassword resolves a password from passwordFile, or prompts
// interactively when it is empty or "-".
func ReadPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" && passwordFile != "-" {
		return ReadSecretFile(passwordFile)
	}
	return PromptPassword("Password")
}
