// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewFromBytesZerosSource(t *testing.T) {
	source := []byte("bearer-token-value")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "bearer-token-value" {
		t.Errorf("String() = %q, want %q", got, "bearer-token-value")
	}

	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d not zeroed after NewFromBytes", index)
		}
	}
}

func TestBufferBytes(t *testing.T) {
	buffer, err := NewFromBytes([]byte("abc"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if !bytes.Equal(buffer.Bytes(), []byte("abc")) {
		t.Errorf("Bytes() = %q, want %q", buffer.Bytes(), "abc")
	}
	if buffer.Len() != 3 {
		t.Errorf("Len() = %d, want 3", buffer.Len())
	}
}

func TestBufferCloseIdempotent(t *testing.T) {
	buffer, err := NewFromBytes([]byte("abc"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestBufferPanicsAfterClose(t *testing.T) {
	buffer, err := NewFromBytes([]byte("abc"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	buffer.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading from closed buffer")
		}
	}()
	_ = buffer.String()
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewFromBytes(nil); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3}
	Zero(data)
	if !bytes.Equal(data, []byte{0, 0, 0}) {
		t.Errorf("Zero left data as %v", data)
	}
}
