// internal/game/engine.go
//
// Round engine for a single Boggle game.
// Responsibilities:
//   - Create rounds with a freshly generated (or seeded) board.
//   - Collect submitted words (minimum length, no duplicates, before the deadline).
//   - Finish a round: check each word against the board and the dictionary,
//     score it, and list the dictionary words the player missed.
//
// Notes:
//   - Scoring is len(word)-2 per valid word (3 letters = 1 point).
//   - The dictionary is any value with Contains; if it also lists its words,
//     Finish reports the missed words.
//   - A Round is safe for concurrent use.
package game

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/internal/board"
)

const (
	DefaultHeight    = 5
	DefaultWidth     = 5
	DefaultLetterMax = 4
	DefaultMinLen    = 3
	DefaultDuration  = 180 * time.Second
)

var (
	ErrFinished    = errors.New("round finished")
	ErrTimeUp      = errors.New("time is up")
	ErrTooShort    = errors.New("word too short")
	ErrDuplicate   = errors.New("word already submitted")
	ErrInvalidWord = errors.New("invalid word")
)

// Dictionary answers membership queries.
type Dictionary interface {
	Contains(word string) bool
}

// Lister is implemented by dictionaries that can enumerate their words.
type Lister interface {
	Words() []string
}

// Options configures a new round. Zero values select the defaults.
type Options struct {
	Height    int
	Width     int
	LetterMax int
	MinLen    int
	Duration  time.Duration
	Seed      int64  // 0 picks a random seed
	Daily     string // date key for daily rounds
	Now       time.Time
}

func (o Options) withDefaults() Options {
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.LetterMax == 0 {
		o.LetterMax = DefaultLetterMax
	}
	if o.MinLen == 0 {
		o.MinLen = DefaultMinLen
	}
	if o.Duration == 0 {
		o.Duration = DefaultDuration
	}
	if o.Seed == 0 {
		o.Seed = randomSeed()
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// New generates a board and starts a round. It fails only when the board
// parameters are unsatisfiable (board.ErrConfig).
func New(opts Options) (*Round, error) {
	opts = opts.withDefaults()
	g, err := board.Generate(mrand.New(mrand.NewSource(opts.Seed)), opts.Height, opts.Width, opts.LetterMax)
	if err != nil {
		return nil, fmt.Errorf("new round: %w", err)
	}
	r := &Round{
		ID:        randomID(),
		Grid:      g,
		Seed:      opts.Seed,
		Daily:     opts.Daily,
		MinLen:    opts.MinLen,
		StartedAt: opts.Now,
		Deadline:  opts.Now.Add(opts.Duration),
		Words:     []string{},
	}
	log.Debug().Str("gameId", r.ID).Int64("seed", r.Seed).Strs("board", g.Rows()).Msg("round started")
	return r, nil
}

// AddWord records a word for the round and returns the updated word list.
//
// Validation rules:
//   - Round must not be finished, and now must be before the deadline.
//   - Word is trimmed and lowercased, must be a–z only and at least MinLen long.
//   - The same word may be submitted once.
//
// Whether the word is on the board or in the dictionary is only decided by Finish.
func (r *Round) AddWord(word string, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Finished {
		return r.words(), ErrFinished
	}
	if !now.Before(r.Deadline) {
		return r.words(), ErrTimeUp
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if !isAlpha(word) {
		return r.words(), ErrInvalidWord
	}
	if len(word) < r.MinLen {
		return r.words(), ErrTooShort
	}
	for _, w := range r.Words {
		if w == word {
			return r.words(), ErrDuplicate
		}
	}
	r.Words = append(r.Words, word)
	return r.words(), nil
}

// Finish scores the round. Calling it again returns the same summary.
func (r *Round) Finish(dict Dictionary) *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Finished {
		return r.Summary
	}

	sum := &Summary{Results: make([]WordResult, 0, len(r.Words)), Missed: []string{}}
	found := make(map[string]bool, len(r.Words))
	for _, w := range r.Words {
		res := Check(r.Grid, dict, w, r.MinLen)
		if res.Valid {
			sum.Score += res.Points
			found[w] = true
		}
		sum.Results = append(sum.Results, res)
	}
	if l, ok := dict.(Lister); ok {
		for _, w := range board.Solve(r.Grid, l.Words(), r.MinLen) {
			if !found[w] {
				sum.Missed = append(sum.Missed, w)
			}
		}
	}

	r.Finished = true
	r.Summary = sum
	log.Debug().Str("gameId", r.ID).Int("score", sum.Score).Int("words", len(r.Words)).Msg("round finished")
	return sum
}

// View returns a snapshot of the round as of now.
func (r *Round) View(now time.Time) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := int(r.Deadline.Sub(now) / time.Second)
	if remaining < 0 || r.Finished {
		remaining = 0
	}
	return View{
		ID:        r.ID,
		Board:     r.Grid.Matrix(),
		Height:    r.Grid.Height(),
		Width:     r.Grid.Width(),
		Seed:      r.Seed,
		Daily:     r.Daily,
		Words:     r.words(),
		State:     r.state(now),
		Deadline:  r.Deadline,
		Remaining: remaining,
		Summary:   r.Summary,
	}
}

// State reports the coarse state of the round as of now.
func (r *Round) State(now time.Time) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(now)
}

func (r *Round) state(now time.Time) State {
	switch {
	case r.Finished:
		return StateFinished
	case !now.Before(r.Deadline):
		return StateExpired
	default:
		return StatePlaying
	}
}

// words returns a copy of the submitted words; callers hold r.mu.
func (r *Round) words() []string {
	return append([]string{}, r.Words...)
}

// Check judges a single word against a board and dictionary.
func Check(g board.Letters, dict Dictionary, word string, minLen int) WordResult {
	word = strings.ToLower(strings.TrimSpace(word))
	res := WordResult{Word: word}
	res.Path, res.OnBoard = board.Trace(g, word)
	res.InDictionary = dict.Contains(word)
	res.Valid = res.OnBoard && res.InDictionary && len(word) >= minLen
	if res.Valid {
		res.Points = Points(word)
	}
	return res
}

// Points returns the score for a valid word: two points fewer than its
// length, never less than one.
func Points(word string) int {
	if n := len(word) - 2; n > 0 {
		return n
	}
	return 1
}

// isAlpha checks that a string is non-empty and consists only of lowercase a–z.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// randomSeed returns a non-zero board seed from crypto/rand.
func randomSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	if s := int64(binary.BigEndian.Uint64(b[:]) >> 1); s != 0 {
		return s
	}
	return 1
}
