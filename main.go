// main.go
//
// Entrypoint for the Boggle HTTP server.
// Loads .env, configures zerolog, loads the dictionary, opens + migrates
// SQLite, and serves the JSON API.

package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/config"
	"github.com/robalobadob/boggle/internal/database"
	"github.com/robalobadob/boggle/internal/httpserver"
	"github.com/robalobadob/boggle/internal/store"
	"github.com/robalobadob/boggle/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Stats()).Msg("dictionary loaded")

	db, err := database.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	// keep finished rounds around long enough for late /game/{id} lookups
	mem := store.NewMemoryStore(cfg.RoundTime + time.Hour)
	srv := httpserver.New(cfg, mem, db, words.Default())

	log.Info().
		Str("port", cfg.Port).
		Int("height", cfg.BoardHeight).
		Int("width", cfg.BoardWidth).
		Int("letterMax", cfg.LetterMax).
		Msg("starting boggle server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
