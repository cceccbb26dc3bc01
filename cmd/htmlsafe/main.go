package main

import (
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute command")
	}
}
