package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestBoundedStringLimits(t *testing.T) {
	s, err := NewBoundedString(strings.Repeat("x", MaxBoundedLen))
	if err != nil {
		t.Fatalf("255 bytes should fit: %v", err)
	}
	if s.Len() != MaxBoundedLen {
		t.Fatalf("unexpected len: %d", s.Len())
	}

	_, err = NewBoundedString(strings.Repeat("x", MaxBoundedLen+1))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
}

func TestBoundedStringCountsBytesNotRunes(t *testing.T) {
	// 128 two-byte runes is 256 bytes.
	_, err := NewBoundedString(strings.Repeat("é", 128))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	s, err := NewBoundedString("héllo")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Len() != 6 || s.String() != "héllo" {
		t.Fatalf("unexpected value: len=%d text=%q", s.Len(), s.String())
	}
}

func TestBoundedStringRejectsInvalidUTF8(t *testing.T) {
	_, err := NewBoundedString(string([]byte{0xff, 0xfe}))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestBoundedStringZeroValue(t *testing.T) {
	var s BoundedString
	if s.Len() != 0 || s.String() != "" {
		t.Fatalf("zero value should be empty")
	}
}
