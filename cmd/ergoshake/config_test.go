package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/ergoshake/internal/handshake"
	"github.com/danmuck/ergoshake/internal/protocol"
)

func TestResolveConfigDefaults(t *testing.T) {
	opts, err := parseFlags([]string{"-target", "127.0.0.1:4370", "-name", "evan"}, io.Discard)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Handshake.Version != handshake.DefaultVersion {
		t.Fatalf("expected default version, got %s", cfg.Handshake.Version)
	}
	if cfg.Handshake.Timeout != handshake.DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Handshake.Timeout)
	}
	if cfg.Handshake.Address != "127.0.0.1:4370" || cfg.Handshake.AgentName != "evan" {
		t.Fatalf("flags not applied: %+v", cfg.Handshake)
	}
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ergoshake.toml")
	body := `target = "10.0.0.1:4370"
agent_name = "from-file"
version = "2.0.0"
peer_name = "file-node"
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts, err := parseFlags([]string{"-config", path, "-name", "from-flag", "-timeout", "2s"}, io.Discard)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Handshake.AgentName != "from-flag" {
		t.Fatalf("flag did not override file: %q", cfg.Handshake.AgentName)
	}
	if cfg.Handshake.Timeout != 2*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Handshake.Timeout)
	}
	// Flags left at their defaults must not clobber file values.
	if cfg.Handshake.Version.String() != "2.0.0" {
		t.Fatalf("default -version overrode file: %s", cfg.Handshake.Version)
	}
	if cfg.Handshake.PeerName != "file-node" || cfg.Handshake.Address != "10.0.0.1:4370" {
		t.Fatalf("file values lost: %+v", cfg.Handshake)
	}
}

func TestResolveConfigBadVersionFlag(t *testing.T) {
	opts, err := parseFlags([]string{"-version", "1.2.x"}, io.Discard)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	_, err = resolveConfig(opts)
	var compErr *protocol.VersionComponentError
	if !errors.As(err, &compErr) || compErr.Component != "x" {
		t.Fatalf("expected component error for %q, got %v", "x", err)
	}
}

func TestParseFlagsRejectsPositionalArgs(t *testing.T) {
	if _, err := parseFlags([]string{"-name", "evan", "extra"}, io.Discard); err == nil {
		t.Fatalf("expected positional argument error")
	}
}
