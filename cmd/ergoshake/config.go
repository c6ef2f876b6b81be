package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danmuck/ergoshake/internal/config"
	"github.com/danmuck/ergoshake/internal/handshake"
	"github.com/danmuck/ergoshake/internal/protocol"
)

const defaultConfigPath = "ergoshake.toml"

type cliOptions struct {
	configPath  string
	target      string
	name        string
	version     string
	peerName    string
	timeout     time.Duration
	metricsFile string
	initConfig  bool
	force       bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("ergoshake", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML client config")
	fs.StringVar(&opts.target, "target", "", "peer address host:port")
	fs.StringVar(&opts.name, "name", "", "agent name sent to the peer")
	fs.StringVar(&opts.version, "version", handshake.DefaultVersion.String(), "protocol version major.minor.patch")
	fs.StringVar(&opts.peerName, "peer-name", handshake.DefaultPeerName, "peer name sent to the peer")
	fs.DurationVar(&opts.timeout, "timeout", handshake.DefaultTimeout, "deadline for connect, write and read")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write handshake metrics in Prometheus textfile format")
	fs.BoolVar(&opts.initConfig, "init-config", false, "write a config template to -config (default "+defaultConfigPath+") and exit")
	fs.BoolVar(&opts.force, "force", false, "overwrite an existing config with -init-config")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// resolveConfig layers defaults, then the config file, then explicit flags.
func resolveConfig(opts cliOptions) (config.ClientConfig, error) {
	cfg := config.DefaultClientConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadClientConfig(opts.configPath)
		if err != nil {
			return config.ClientConfig{}, err
		}
		cfg = loaded
	}

	if opts.set["target"] {
		cfg.Handshake.Address = strings.TrimSpace(opts.target)
	}
	if opts.set["name"] {
		cfg.Handshake.AgentName = opts.name
	}
	if opts.set["version"] {
		v, err := protocol.ParseVersion(strings.TrimSpace(opts.version))
		if err != nil {
			return config.ClientConfig{}, fmt.Errorf("parse -version: %w", err)
		}
		cfg.Handshake.Version = v
	}
	if opts.set["peer-name"] {
		cfg.Handshake.PeerName = opts.peerName
	}
	if opts.set["timeout"] {
		cfg.Handshake.Timeout = opts.timeout
	}
	if opts.set["metrics-file"] {
		cfg.MetricsFile = strings.TrimSpace(opts.metricsFile)
	}
	return cfg, nil
}
