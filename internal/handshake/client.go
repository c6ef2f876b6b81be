package handshake

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/danmuck/ergoshake/internal/observability"
	"github.com/danmuck/ergoshake/internal/protocol"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrTimeout = errors.New("handshake: timed out")

// Dialer is satisfied by *net.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// AcceptFunc receives the live connection and the decoded reply. The
// connection is closed once it returns.
type AcceptFunc func(conn net.Conn, reply *protocol.HandshakeMessage) error

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithClock overrides the wall clock used for the request timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// Client greets a single peer address with a fixed request.
type Client struct {
	cfg     Config
	request *protocol.HandshakeMessage
	dialer  Dialer
	log     zerolog.Logger
	now     func() time.Time
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	req, err := protocol.NewHandshakeMessage(cfg.AgentName, cfg.Version, cfg.PeerName)
	if err != nil {
		return nil, fmt.Errorf("handshake: build request: %w", err)
	}
	c := &Client{
		cfg:     cfg,
		request: req,
		dialer:  &net.Dialer{},
		log:     log.Logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "handshake").Str("addr", cfg.Address).Logger()
	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// Request returns the message this client sends.
func (c *Client) Request() *protocol.HandshakeMessage {
	return c.request
}

// Greet dials the peer, exchanges greetings and calls onAccept with the live
// connection. Connect, write and read share one deadline of cfg.Timeout;
// onAccept runs without a connection deadline but is still bound by ctx.
func (c *Client) Greet(ctx context.Context, onAccept AcceptFunc) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	attempt := uuid.NewString()
	ctx, span, endSpan := observability.StartHandshakeSpan(ctx, attempt, c.cfg.Address, c.cfg.AgentName, c.cfg.Version.String())
	logger := c.log.With().Str("attempt", attempt).Logger()

	logger.Debug().
		Str("agent", c.cfg.AgentName).
		Stringer("version", c.cfg.Version).
		Dur("timeout", c.cfg.Timeout).
		Msg("dialing peer")

	conn, reply, stats, err := c.exchange(ctx)
	elapsed := time.Since(start)
	observability.RecordBytes(observability.DirectionSent, stats.Sent)
	observability.RecordBytes(observability.DirectionReceived, stats.Received)
	if err != nil {
		outcome, err := c.classify(ctx, err)
		observability.RecordHandshake(outcome, elapsed)
		logger.Warn().Err(err).Str("outcome", outcome).Msg("handshake failed")
		endSpan(err)
		return err
	}
	defer conn.Close()

	observability.RecordPeer(c.cfg.Address, reply.AgentName.String(), reply.Version.String())
	observability.AnnotateReply(span, reply.AgentName.String(), reply.Version.String(), reply.PeerName.String(), stats.Consumed)
	logger.Info().
		Str("peer_agent", reply.AgentName.String()).
		Stringer("peer_version", reply.Version).
		Str("peer_name", reply.PeerName.String()).
		Int("sent", stats.Sent).
		Int("received", stats.Received).
		Int("consumed", stats.Consumed).
		Dur("elapsed", elapsed).
		Msg("handshake accepted")

	if onAccept != nil {
		if err := onAccept(conn, reply); err != nil {
			err = fmt.Errorf("handshake: on accept: %w", err)
			observability.RecordHandshake(observability.OutcomeCallback, elapsed)
			logger.Warn().Err(err).Msg("accept callback failed")
			endSpan(err)
			return err
		}
	}
	observability.RecordHandshake(observability.OutcomeSuccess, elapsed)
	endSpan(nil)
	return nil
}

func (c *Client) exchange(ctx context.Context) (net.Conn, *protocol.HandshakeMessage, Stats, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.cfg.Address)
	if err != nil {
		return nil, nil, Stats{}, &StageError{Stage: StageDial, Err: err}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Cancellation of ctx unblocks pending I/O.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})

	reply, stats, err := Exchange(conn, c.request, c.now(), c.cfg.ReadBufferSize)
	if !stop() && err == nil {
		err = &StageError{Stage: StageRead, Err: ctx.Err()}
	}
	if err != nil {
		_ = conn.Close()
		return nil, nil, stats, err
	}
	_ = conn.SetDeadline(time.Time{})
	return conn, reply, stats, nil
}

// classify maps a failed exchange to a metrics outcome and the error
// returned to the caller.
func (c *Client) classify(ctx context.Context, err error) (string, error) {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return observability.OutcomeCanceled, fmt.Errorf("%w: %w", context.Canceled, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err):
		return observability.OutcomeTimeout, fmt.Errorf("%w after %s: %w", ErrTimeout, c.cfg.Timeout, err)
	}
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case StageDial:
			return observability.OutcomeDial, err
		case StageDecode:
			return observability.OutcomeDecode, err
		}
	}
	return observability.OutcomeIO, err
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Handshake greets address once with default settings.
func Handshake(ctx context.Context, address, agentName string, version protocol.Version, onAccept AcceptFunc) error {
	cfg := DefaultConfig()
	cfg.Address = address
	cfg.AgentName = agentName
	cfg.Version = version
	client, err := NewClient(cfg)
	if err != nil {
		return err
	}
	return client.Greet(ctx, onAccept)
}
