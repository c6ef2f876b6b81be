package main

import (
	"flag"

	"github.com/danmuck/ergoshake/internal/config"
	"github.com/danmuck/ergoshake/internal/logging"
	"github.com/rs/zerolog/log"
)

const defaultPath = "ergoshake.toml"

func main() {
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		cfg, err := config.LoadClientConfig(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		if err := config.ValidateClientConfig(cfg); err != nil {
			log.Fatal().Err(err).Str("path", *input).Msg("validate config")
		}
		log.Info().
			Str("path", *input).
			Str("target", cfg.Handshake.Address).
			Stringer("version", cfg.Handshake.Version).
			Msg("validated client config")
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal().Err(err).Msg("write template")
	}
	log.Info().Str("path", *output).Msg("wrote client config template")
}
