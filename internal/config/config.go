package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/ergoshake/internal/handshake"
	"github.com/danmuck/ergoshake/internal/logging"
	"github.com/danmuck/ergoshake/internal/protocol"
)

var ErrUnknownKey = errors.New("config: unknown key")

// ClientConfig is everything the ergoshake binary needs for one run.
type ClientConfig struct {
	Handshake   handshake.Config
	MetricsFile string
	Log         logging.Config
}

type fileConfig struct {
	Target         string        `toml:"target"`
	AgentName      string        `toml:"agent_name"`
	Version        string        `toml:"version"`
	PeerName       string        `toml:"peer_name"`
	Timeout        string        `toml:"timeout"`
	TimeoutMS      int64         `toml:"timeout_ms"`
	ReadBufferSize int           `toml:"read_buffer_size"`
	MetricsFile    string        `toml:"metrics_file"`
	Log            fileLogConfig `toml:"log"`
}

type fileLogConfig struct {
	Level     string `toml:"level"`
	JSON      bool   `toml:"json"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Handshake: handshake.DefaultConfig(),
		Log:       logging.DefaultConfig(logging.ProfileRuntime),
	}
}

// LoadClientConfig overlays the keys present in path onto the defaults.
// The result is not validated; callers merge flags first.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return ClientConfig{}, fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0])
	}

	if meta.IsDefined("target") {
		cfg.Handshake.Address = strings.TrimSpace(raw.Target)
	}
	if meta.IsDefined("agent_name") {
		cfg.Handshake.AgentName = raw.AgentName
	}
	if meta.IsDefined("version") {
		v, err := protocol.ParseVersion(strings.TrimSpace(raw.Version))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse version: %w", err)
		}
		cfg.Handshake.Version = v
	}
	if meta.IsDefined("peer_name") {
		cfg.Handshake.PeerName = raw.PeerName
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Handshake.Timeout = d
	}
	if meta.IsDefined("timeout_ms") {
		cfg.Handshake.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("read_buffer_size") {
		cfg.Handshake.ReadBufferSize = raw.ReadBufferSize
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	if meta.IsDefined("log", "level") {
		lvl, ok := logging.ParseLevel(raw.Log.Level)
		if !ok {
			return ClientConfig{}, fmt.Errorf("parse log.level: unknown level %q", raw.Log.Level)
		}
		cfg.Log.Level = lvl
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}

	return cfg, nil
}

// ValidateClientConfig checks a fully merged config.
func ValidateClientConfig(cfg ClientConfig) error {
	hs := cfg.Handshake.WithDefaults()
	if err := hs.Validate(); err != nil {
		return fmt.Errorf("client config invalid: %w", err)
	}
	if _, err := protocol.NewBoundedString(hs.AgentName); err != nil {
		return fmt.Errorf("client config invalid: agent_name: %w", err)
	}
	if _, err := protocol.NewBoundedString(hs.PeerName); err != nil {
		return fmt.Errorf("client config invalid: peer_name: %w", err)
	}
	return nil
}
