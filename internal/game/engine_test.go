package game

import (
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/words"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRound(t *testing.T, rows ...string) *Round {
	t.Helper()
	g, err := board.FromRows(rows...)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return &Round{
		ID:        "test",
		Grid:      g,
		MinLen:    DefaultMinLen,
		StartedAt: t0,
		Deadline:  t0.Add(DefaultDuration),
		Words:     []string{},
	}
}

func TestNewUsesDefaultsAndSeed(t *testing.T) {
	a, err := New(Options{Seed: 99, Now: t0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Grid.Height() != DefaultHeight || a.Grid.Width() != DefaultWidth {
		t.Fatalf("unexpected board size %dx%d", a.Grid.Height(), a.Grid.Width())
	}
	if !a.Deadline.Equal(t0.Add(DefaultDuration)) {
		t.Fatalf("deadline = %v", a.Deadline)
	}
	b, _ := New(Options{Seed: 99, Now: t0})
	if a.Grid.String() != b.Grid.String() {
		t.Fatal("same seed should produce the same board")
	}
	if a.ID == b.ID {
		t.Fatal("round IDs should differ")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Options{Height: 10, Width: 10, LetterMax: 1})
	if !errors.Is(err, board.ErrConfig) {
		t.Fatalf("expected board.ErrConfig, got %v", err)
	}
}

func TestAddWordRules(t *testing.T) {
	r := newTestRound(t, "ca", "ts")
	now := t0.Add(time.Second)

	cases := []struct {
		word string
		err  error
	}{
		{"cat", nil},
		{" CATS ", nil},
		{"cat", ErrDuplicate},
		{"at", ErrTooShort},
		{"c4t", ErrInvalidWord},
		{"", ErrInvalidWord},
		{"zebra", nil}, // board and dictionary are checked at Finish
	}
	for _, tc := range cases {
		_, err := r.AddWord(tc.word, now)
		if !errors.Is(err, tc.err) {
			t.Fatalf("AddWord(%q) err = %v, want %v", tc.word, err, tc.err)
		}
	}
	got, _ := r.AddWord("acts", now)
	want := []string{"cat", "cats", "zebra", "acts"}
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("words = %v, want %v", got, want)
		}
	}
}

func TestAddWordAfterDeadline(t *testing.T) {
	r := newTestRound(t, "ca", "ts")
	if _, err := r.AddWord("cat", r.Deadline); !errors.Is(err, ErrTimeUp) {
		t.Fatalf("expected ErrTimeUp, got %v", err)
	}
	if s := r.State(r.Deadline); s != StateExpired {
		t.Fatalf("state = %s, want %s", s, StateExpired)
	}
}

func TestFinishScoresAndListsMissed(t *testing.T) {
	r := newTestRound(t, "ca", "ts")
	dict := words.New([]string{"cat", "cats", "act", "sat", "zebra", "tacs"})
	now := t0.Add(time.Minute)
	for _, w := range []string{"cats", "zebra", "tacs", "scat"} {
		if _, err := r.AddWord(w, now); err != nil {
			t.Fatalf("AddWord(%q): %v", w, err)
		}
	}

	sum := r.Finish(dict)

	// cats: 2 points; tacs: 2 points; zebra not on board; scat not in dictionary.
	if sum.Score != 4 {
		t.Fatalf("score = %d, want 4 (%+v)", sum.Score, sum.Results)
	}
	verdicts := map[string]WordResult{}
	for _, res := range sum.Results {
		verdicts[res.Word] = res
	}
	if v := verdicts["zebra"]; v.Valid || v.OnBoard || !v.InDictionary {
		t.Fatalf("zebra verdict = %+v", v)
	}
	if v := verdicts["scat"]; v.Valid || !v.OnBoard || v.InDictionary {
		t.Fatalf("scat verdict = %+v", v)
	}
	if v := verdicts["cats"]; !v.Valid || v.Points != 2 || len(v.Path) != 4 {
		t.Fatalf("cats verdict = %+v", v)
	}

	wantMissed := []string{"act", "cat", "sat"}
	if len(sum.Missed) != len(wantMissed) {
		t.Fatalf("missed = %v, want %v", sum.Missed, wantMissed)
	}
	for i := range wantMissed {
		if sum.Missed[i] != wantMissed[i] {
			t.Fatalf("missed = %v, want %v", sum.Missed, wantMissed)
		}
	}

	if again := r.Finish(dict); again != sum {
		t.Fatal("Finish should be idempotent")
	}
	if _, err := r.AddWord("act", now); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
	if v := r.View(now); v.State != StateFinished || v.Remaining != 0 || v.Summary == nil {
		t.Fatalf("unexpected view after finish: %+v", v)
	}
}

type setDict map[string]bool

func (d setDict) Contains(w string) bool { return d[w] }

func TestFinishWithoutLister(t *testing.T) {
	r := newTestRound(t, "ca", "ts")
	_, _ = r.AddWord("cat", t0)
	sum := r.Finish(setDict{"cat": true, "act": true})
	if sum.Score != 1 || len(sum.Missed) != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestPoints(t *testing.T) {
	for word, want := range map[string]int{"cat": 1, "cats": 2, "zebras": 4, "at": 1} {
		if got := Points(word); got != want {
			t.Fatalf("Points(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestViewRemaining(t *testing.T) {
	r := newTestRound(t, "ca", "ts")
	v := r.View(t0.Add(30 * time.Second))
	if v.State != StatePlaying || v.Remaining != 150 {
		t.Fatalf("view = %+v", v)
	}
	if len(v.Board) != 2 || v.Board[1][1] != "s" {
		t.Fatalf("board = %v", v.Board)
	}
}
