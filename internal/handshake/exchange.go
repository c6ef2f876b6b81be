package handshake

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/danmuck/ergoshake/internal/protocol"
)

// Stages of one greeting, used in StageError.
const (
	StageDial   = "dial"
	StageWrite  = "write"
	StageRead   = "read"
	StageDecode = "decode"
)

var ErrEmptyReply = errors.New("handshake: peer closed without reply")

// StageError records where a greeting failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("handshake: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Stats counts the bytes moved by one exchange.
type Stats struct {
	Sent     int
	Received int
	// Consumed is the part of Received the decoder used.
	Consumed int
}

// Exchange writes req stamped with now, performs one read of at most
// bufSize bytes and decodes the reply.
func Exchange(rw io.ReadWriter, req *protocol.HandshakeMessage, now time.Time, bufSize int) (*protocol.HandshakeMessage, Stats, error) {
	var stats Stats
	if bufSize <= 0 {
		return nil, stats, ErrInvalidReadBuffer
	}

	payload, err := protocol.EncodeForRequestAt(req, now)
	if err != nil {
		return nil, stats, &StageError{Stage: StageWrite, Err: err}
	}
	n, err := rw.Write(payload)
	stats.Sent = n
	if err != nil {
		return nil, stats, &StageError{Stage: StageWrite, Err: err}
	}

	buf := make([]byte, bufSize)
	n, err = rw.Read(buf)
	stats.Received = n
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			err = ErrEmptyReply
		}
		return nil, stats, &StageError{Stage: StageRead, Err: err}
	}
	// Bytes that arrived alongside a read error are still decoded.

	reply, used, err := protocol.DecodeResponseN(buf[:n])
	if err != nil {
		return nil, stats, &StageError{Stage: StageDecode, Err: err}
	}
	stats.Consumed = used
	return reply, stats, nil
}
