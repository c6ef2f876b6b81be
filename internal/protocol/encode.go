package protocol

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// Encode writes msg to w as a request stamped with timestampMS.
func Encode(w io.Writer, msg *HandshakeMessage, timestampMS uint64) error {
	if msg == nil {
		return ErrNilMessage
	}
	if err := WriteUvarint(w, timestampMS); err != nil {
		return err
	}

	buf := make([]byte, 0, msg.bodyLen())
	buf = appendBounded(buf, msg.AgentName)
	version := msg.Version.Bytes()
	buf = append(buf, version[:]...)
	buf = appendBounded(buf, msg.PeerName)
	buf = append(buf, AddressPlaceholder)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// EncodeForRequest encodes msg stamped with the current wall clock.
func EncodeForRequest(msg *HandshakeMessage) ([]byte, error) {
	return EncodeForRequestAt(msg, time.Now())
}

// EncodeForRequestAt encodes msg stamped with now.
func EncodeForRequestAt(msg *HandshakeMessage, now time.Time) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	ts := UnixMillis(now)
	var buf bytes.Buffer
	buf.Grow(msg.EncodedLen(ts))
	if err := Encode(&buf, msg, ts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnixMillis converts t to unsigned milliseconds since the epoch, clamping
// pre-epoch times to zero.
func UnixMillis(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

func appendBounded(buf []byte, s BoundedString) []byte {
	buf = append(buf, byte(s.Len()))
	return append(buf, s.String()...)
}
