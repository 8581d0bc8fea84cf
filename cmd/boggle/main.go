// Command boggle prints boards, checks words and solves boards from the
// command line. Boards are generated exactly like the server does, so a seed
// printed by the API reproduces the same board here.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("boggle")
		os.Exit(1)
	}
}
