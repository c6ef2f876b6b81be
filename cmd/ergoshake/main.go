package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/ergoshake/internal/config"
	"github.com/danmuck/ergoshake/internal/handshake"
	"github.com/danmuck/ergoshake/internal/logging"
	"github.com/danmuck/ergoshake/internal/observability"
	"github.com/danmuck/ergoshake/internal/protocol"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ergoshake: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.initConfig {
		path := opts.configPath
		if path == "" {
			path = defaultConfigPath
		}
		if err := config.WriteTemplate(path, opts.force); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote config template to %s\n", path)
		return nil
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	logging.ConfigureWith(cfg.Log)
	if err := config.ValidateClientConfig(cfg); err != nil {
		return err
	}

	client, err := handshake.NewClient(cfg.Handshake)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = client.Greet(ctx, func(_ net.Conn, reply *protocol.HandshakeMessage) error {
		_, err := fmt.Fprintf(stdout, "Handshake Reply: agent=%s version=%s peer=%s\n",
			reply.AgentName, reply.Version, reply.PeerName)
		return err
	})

	if cfg.MetricsFile != "" {
		if werr := observability.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("metrics textfile not written")
			if err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}
	}
	return err
}
