package protocol

// Cursor is a forward-only reader over one decode buffer.
type Cursor struct {
	buf []byte
	off int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining is the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// ReadByte implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Next consumes n bytes and returns a view of them; it does not copy.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	return out, nil
}

func (c *Cursor) rest() []byte {
	return c.buf[c.off:]
}
