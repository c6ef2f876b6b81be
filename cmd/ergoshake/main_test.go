package main

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/ergoshake/internal/config"
	"github.com/danmuck/ergoshake/internal/protocol"
	"github.com/danmuck/ergoshake/internal/testutil/testlog"
)

func TestRunPrintsReplyAndWritesMetrics(t *testing.T) {
	testlog.Start(t)

	addr := startReplyingPeer(t, "ergo-ref", "3.3.6", "ref-node")
	metrics := filepath.Join(t.TempDir(), "ergoshake.prom")

	var stdout bytes.Buffer
	err := run([]string{"-target", addr, "-name", "evan", "-timeout", "2s", "-metrics-file", metrics}, &stdout, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "Handshake Reply: agent=ergo-ref version=3.3.6 peer=ref-node\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n got=%q\nwant=%q", stdout.String(), want)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `ergoshake_handshake_attempts_total{outcome="success"}`) {
		t.Fatalf("metrics textfile missing success series:\n%s", data)
	}
}

func TestRunRequiresTarget(t *testing.T) {
	testlog.Start(t)

	err := run([]string{"-name", "evan"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "address required") {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestRunInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ergoshake.toml")

	var stdout bytes.Buffer
	if err := run([]string{"-init-config", "-config", path}, &stdout, io.Discard); err != nil {
		t.Fatalf("init config: %v", err)
	}
	if !strings.Contains(stdout.String(), path) {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if string(data) != config.Template() {
		t.Fatalf("template contents differ")
	}
	if err := run([]string{"-init-config", "-config", path}, io.Discard, io.Discard); err == nil {
		t.Fatalf("expected refusal without -force")
	}
	if err := run([]string{"-init-config", "-force", "-config", path}, io.Discard, io.Discard); err != nil {
		t.Fatalf("forced init config: %v", err)
	}
}

func TestRunHelpIsNotAnError(t *testing.T) {
	if err := run([]string{"-h"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("help: %v", err)
	}
}

func startReplyingPeer(t *testing.T, agent, version, peer string) string {
	t.Helper()
	msg, err := protocol.NewHandshakeMessage(agent, protocol.MustParseVersion(version), peer)
	if err != nil {
		t.Fatalf("reply message: %v", err)
	}
	reply, err := protocol.EncodeForRequestAt(msg, time.Now())
	if err != nil {
		t.Fatalf("encode reply: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		_, _ = conn.Write(reply)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
	})
	return ln.Addr().String()
}
