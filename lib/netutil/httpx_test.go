// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	data, err := ReadResponse(strings.NewReader(`{"success":true}`))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if string(data) != `{"success":true}` {
		t.Errorf("body = %q", data)
	}
}

func TestReadResponseEmptyBody(t *testing.T) {
	data, err := ReadResponse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("body = %q, want empty", data)
	}
}
