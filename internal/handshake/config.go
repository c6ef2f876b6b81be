package handshake

import (
	"errors"
	"strings"
	"time"

	"github.com/danmuck/ergoshake/internal/protocol"
)

const (
	// DefaultTimeout matches the reference node's handshake timeout.
	DefaultTimeout        = 30 * time.Second
	DefaultReadBufferSize = 1024
	DefaultPeerName       = "ergoshake"
)

// DefaultVersion is declared when the caller does not pick one.
var DefaultVersion = protocol.Version{Major: 3, Minor: 3, Patch: 6}

var (
	ErrAddressRequired   = errors.New("handshake: address required")
	ErrAgentNameRequired = errors.New("handshake: agent name required")
	ErrInvalidTimeout    = errors.New("handshake: timeout must be positive")
	ErrInvalidReadBuffer = errors.New("handshake: read buffer size must be positive")
)

// Config describes one greeting.
type Config struct {
	Address        string
	AgentName      string
	Version        protocol.Version
	PeerName       string
	Timeout        time.Duration
	ReadBufferSize int
}

func DefaultConfig() Config {
	return Config{
		Version:        DefaultVersion,
		PeerName:       DefaultPeerName,
		Timeout:        DefaultTimeout,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

// WithDefaults fills unset durations and sizes. Version is left alone; the
// zero version is a legal value.
func (c Config) WithDefaults() Config {
	c.Address = strings.TrimSpace(c.Address)
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	if strings.TrimSpace(c.PeerName) == "" {
		c.PeerName = DefaultPeerName
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(c.AgentName) == "" {
		return ErrAgentNameRequired
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.ReadBufferSize < 0 {
		return ErrInvalidReadBuffer
	}
	return nil
}
