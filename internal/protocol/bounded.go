package protocol

import (
	"fmt"
	"unicode/utf8"
)

// MaxBoundedLen is the largest byte length a one-byte prefix can describe.
const MaxBoundedLen = 255

// BoundedString is UTF-8 text short enough for a single length byte.
// The zero value is the empty string.
type BoundedString struct {
	s string
}

// NewBoundedString validates text and wraps it.
func NewBoundedString(text string) (BoundedString, error) {
	if len(text) > MaxBoundedLen {
		return BoundedString{}, fmt.Errorf("%w: %d bytes", ErrTooLong, len(text))
	}
	if !utf8.ValidString(text) {
		return BoundedString{}, ErrInvalidUTF8
	}
	return BoundedString{s: text}, nil
}

// MustBoundedString panics if text is not a valid BoundedString.
func MustBoundedString(text string) BoundedString {
	b, err := NewBoundedString(text)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BoundedString) String() string {
	return b.s
}

// Len returns the UTF-8 byte length, which is also the wire prefix value.
func (b BoundedString) Len() int {
	return len(b.s)
}
