package handshake

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.Timeout)
	}
	if cfg.Version.String() != "3.3.6" {
		t.Fatalf("unexpected default version: %s", cfg.Version)
	}
	if cfg.PeerName != DefaultPeerName || cfg.ReadBufferSize != DefaultReadBufferSize {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestWithDefaultsFillsOnlyUnsetFields(t *testing.T) {
	cfg := Config{Address: " 127.0.0.1:4370 ", AgentName: "evan", Timeout: time.Second}.WithDefaults()
	if cfg.Address != "127.0.0.1:4370" {
		t.Fatalf("address not trimmed: %q", cfg.Address)
	}
	if cfg.Timeout != time.Second {
		t.Fatalf("explicit timeout overwritten: %s", cfg.Timeout)
	}
	if cfg.ReadBufferSize != DefaultReadBufferSize || cfg.PeerName != DefaultPeerName {
		t.Fatalf("unset fields not filled: %+v", cfg)
	}
	if cfg.Version.String() != "0.0.0" {
		t.Fatalf("version must not be defaulted here: %s", cfg.Version)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Address: "127.0.0.1:4370", AgentName: "evan"}
	if err := base.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "address", mutate: func(c *Config) { c.Address = "  " }, want: ErrAddressRequired},
		{name: "agent", mutate: func(c *Config) { c.AgentName = "" }, want: ErrAgentNameRequired},
		{name: "timeout", mutate: func(c *Config) { c.Timeout = -1 }, want: ErrInvalidTimeout},
		{name: "buffer", mutate: func(c *Config) { c.ReadBufferSize = -1 }, want: ErrInvalidReadBuffer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
