// internal/config/config.go
//
// Environment-driven configuration for the server and CLI.
// Values come from the process environment (optionally seeded from a .env
// file by godotenv in main); unset or empty variables use the defaults below.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/boggle/internal/board"
)

// Config holds every tunable of the service.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	WordsFile    string // empty = embedded list
	BoardHeight  int
	BoardWidth   int
	LetterMax    int
	MinWordLen   int
	RoundTime    time.Duration
	JWTSecret    string
	JWTExpires   time.Duration
	CookieName   string
	ClientOrigin string
	DailySalt    string
	Production   bool
}

// Load reads the configuration and validates the board parameters.
func Load() (Config, error) {
	c := Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/boggle.db"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:   getEnv("COOKIE_NAME", "boggle_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		Production:   os.Getenv("NODE_ENV") == "production",
	}
	var err error
	if c.BoardHeight, err = envInt("BOARD_HEIGHT", 5); err != nil {
		return c, err
	}
	if c.BoardWidth, err = envInt("BOARD_WIDTH", 5); err != nil {
		return c, err
	}
	if c.LetterMax, err = envInt("LETTER_MAX", 4); err != nil {
		return c, err
	}
	if c.MinWordLen, err = envInt("MIN_WORD_LEN", 3); err != nil {
		return c, err
	}
	secs, err := envInt("ROUND_SECONDS", 180)
	if err != nil {
		return c, err
	}
	c.RoundTime = time.Duration(secs) * time.Second
	days, err := envInt("JWT_EXPIRES_DAYS", 14)
	if err != nil {
		return c, err
	}
	c.JWTExpires = time.Duration(days) * 24 * time.Hour

	if err := board.Validate(c.BoardHeight, c.BoardWidth, c.LetterMax); err != nil {
		return c, err
	}
	if c.MinWordLen < 1 || c.RoundTime <= 0 {
		return c, fmt.Errorf("config: MIN_WORD_LEN and ROUND_SECONDS must be positive")
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", k, v, err)
	}
	return n, nil
}
