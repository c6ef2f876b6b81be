package protocol

import "unicode/utf8"

// DecodeResponse decodes a peer reply from data. Decoding stops after the
// peer name; the address field and any read-buffer padding are ignored.
func DecodeResponse(data []byte) (*HandshakeMessage, error) {
	msg, _, err := DecodeResponseN(data)
	return msg, err
}

// DecodeResponseN is DecodeResponse that also reports bytes consumed.
func DecodeResponseN(data []byte) (*HandshakeMessage, int, error) {
	c := NewCursor(data)
	msg, err := decodeFrom(c)
	if err != nil {
		return nil, 0, err
	}
	return msg, c.Offset(), nil
}

func decodeFrom(c *Cursor) (*HandshakeMessage, error) {
	// Only the shape of the timestamp is checked.
	if _, err := ReadUvarint(c); err != nil {
		return nil, &FieldError{Field: "timestamp", Err: err}
	}

	agent, err := readBounded(c)
	if err != nil {
		return nil, &FieldError{Field: "agent_name", Err: err}
	}

	raw, err := c.Next(VersionSize)
	if err != nil {
		return nil, &FieldError{Field: "version", Err: err}
	}
	var version [VersionSize]byte
	copy(version[:], raw)

	peer, err := readBounded(c)
	if err != nil {
		return nil, &FieldError{Field: "peer_name", Err: err}
	}

	return &HandshakeMessage{
		AgentName: agent,
		Version:   VersionFromBytes(version),
		PeerName:  peer,
	}, nil
}

func readBounded(c *Cursor) (BoundedString, error) {
	n, err := c.ReadByte()
	if err != nil {
		return BoundedString{}, err
	}
	raw, err := c.Next(int(n))
	if err != nil {
		return BoundedString{}, err
	}
	if !utf8.Valid(raw) {
		return BoundedString{}, ErrUTF8Decode
	}
	// A single length byte cannot exceed MaxBoundedLen.
	return BoundedString{s: string(raw)}, nil
}
