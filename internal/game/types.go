// internal/game/types.go
//
// Core type definitions for a Boggle round.
// Defines:
//   - State: coarse round state (playing/expired/finished).
//   - WordResult: per-word verdict at the end of a round.
//   - Summary: everything reported when a round is finished.
//   - Round: state for a single in-progress or finished round.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/boggle/internal/board"
)

// State is the coarse state of a round.
type State string

const (
	StatePlaying  State = "playing"
	StateExpired  State = "expired" // time is up but results were not computed yet
	StateFinished State = "finished"
)

// WordResult is the verdict for one submitted word.
type WordResult struct {
	Word         string        `json:"word"`
	OnBoard      bool          `json:"onBoard"`
	InDictionary bool          `json:"inDictionary"`
	Valid        bool          `json:"valid"`
	Points       int           `json:"points"`
	Path         []board.Coord `json:"path,omitempty"`
}

// Summary is produced once when a round finishes.
type Summary struct {
	Results []WordResult `json:"results"`
	Score   int          `json:"score"`
	Missed  []string     `json:"missed"` // dictionary words on the board nobody submitted
}

// Round holds the state of a single Boggle round.
type Round struct {
	mu sync.Mutex

	ID        string      // Unique round identifier (random hex string).
	Grid      *board.Grid // The board; never changes after New.
	Seed      int64       // Seed the board was generated from.
	Daily     string      // Date key for daily rounds, empty otherwise.
	Owner     string      // User or guest ID that started the round.
	MinLen    int         // Shortest word accepted.
	StartedAt time.Time
	Deadline  time.Time
	Words     []string // Submitted words, lowercased, in order.
	Finished  bool
	Summary   *Summary // Set once Finished.
}

// View is a read-only snapshot of a round, safe to encode.
type View struct {
	ID        string     `json:"gameId"`
	Board     [][]string `json:"board"`
	Height    int        `json:"height"`
	Width     int        `json:"width"`
	Seed      int64      `json:"seed"`
	Daily     string     `json:"daily,omitempty"`
	Words     []string   `json:"words"`
	State     State      `json:"state"`
	Deadline  time.Time  `json:"deadline"`
	Remaining int        `json:"remaining"` // whole seconds left
	Summary   *Summary   `json:"summary,omitempty"`
}
