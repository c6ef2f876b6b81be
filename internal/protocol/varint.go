package protocol

import (
	"fmt"
	"io"

	"github.com/multiformats/go-varint"
)

// WriteUvarint writes v as an unsigned LEB128 quantity.
func WriteUvarint(w io.Writer, v uint64) error {
	if v > varint.MaxValueUvarint63 {
		return fmt.Errorf("%w: %w", ErrMalformedVarint, varint.ErrOverflow)
	}
	if _, err := w.Write(varint.ToUvarint(v)); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ReadUvarint consumes one unsigned LEB128 quantity from c.
// Nothing is consumed on failure.
func ReadUvarint(c *Cursor) (uint64, error) {
	if c.Remaining() == 0 {
		return 0, ErrUnexpectedEOF
	}
	v, n, err := varint.FromUvarint(c.rest())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedVarint, err)
	}
	c.off += n
	return v, nil
}

// UvarintSize is the encoded length of v.
func UvarintSize(v uint64) int {
	return varint.UvarintSize(v)
}
