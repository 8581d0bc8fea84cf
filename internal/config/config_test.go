package config

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/boggle/internal/board"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "BOARD_HEIGHT", "BOARD_WIDTH", "LETTER_MAX", "ROUND_SECONDS", "MIN_WORD_LEN", "JWT_EXPIRES_DAYS"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "5175" || c.BoardHeight != 5 || c.BoardWidth != 5 || c.LetterMax != 4 {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.RoundTime != 180*time.Second || c.MinWordLen != 3 {
		t.Fatalf("unexpected round defaults %+v", c)
	}
}

func TestLoadRejectsUnsatisfiableBoard(t *testing.T) {
	t.Setenv("BOARD_HEIGHT", "10")
	t.Setenv("BOARD_WIDTH", "10")
	t.Setenv("LETTER_MAX", "1")
	if _, err := Load(); !errors.Is(err, board.ErrConfig) {
		t.Fatalf("expected board.ErrConfig, got %v", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("ROUND_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric ROUND_SECONDS")
	}
}
