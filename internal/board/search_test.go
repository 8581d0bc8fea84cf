package board

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func mustRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := FromRows(rows...)
	if err != nil {
		t.Fatalf("FromRows(%v): %v", rows, err)
	}
	return g
}

func TestContainsCatsBoard(t *testing.T) {
	g := mustRows(t, "ca", "ts")

	cases := []struct {
		word string
		want bool
	}{
		{"cat", true},
		{"cats", true},
		{"acts", true},
		{"scat", true},
		{"CAT", true},
		{"tacos", false},
		{"ccat", false},
		{"catt", false},
		{"", false},
		{"c", true},
		{"x", false},
		{"ca-t", false},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			if got := Contains(g, tc.word); got != tc.want {
				t.Fatalf("Contains(%q) = %v, want %v", tc.word, got, tc.want)
			}
		})
	}
}

func TestContainsLongerThanBoardIsFalse(t *testing.T) {
	g := mustRows(t, "aa", "aa")
	if !Contains(g, "aaaa") {
		t.Fatal("expected aaaa to use all four cells")
	}
	if Contains(g, "aaaaa") {
		t.Fatal("a word longer than the board can never be traced")
	}
}

// The neighbour scan must skip only the current cell. A scan that skipped the
// fixed corner (0,0) instead would miss "da" below.
func TestContainsReachesTopLeftCorner(t *testing.T) {
	g := mustRows(t, "ab", "cd")
	for _, w := range []string{"da", "ad", "bc", "cb", "abdc"} {
		if !Contains(g, w) {
			t.Fatalf("Contains(%q) = false, want true", w)
		}
	}
	if Contains(g, "aa") {
		t.Fatal("a cell must not be reused within a path")
	}
}

func TestContainsNeedsBacktracking(t *testing.T) {
	// From the 'a', the 'b' to its right is tried first and is a dead end.
	g := mustRows(t,
		"ab",
		"bx",
		"xc",
	)
	if !Contains(g, "abc") {
		t.Fatal("expected abc via (0,0)->(1,0)->(2,1)")
	}
	if Contains(g, "abcb") {
		t.Fatal("abcb has no simple path")
	}
}

func TestTraceReturnsSimpleAdjacentPath(t *testing.T) {
	g, err := Generate(rand.New(rand.NewSource(3)), 5, 5, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Any walk read off the board is traceable.
	word := string([]byte{g.LetterAt(0, 0), g.LetterAt(1, 1), g.LetterAt(2, 2), g.LetterAt(2, 3)})
	path, ok := Trace(g, word)
	if !ok {
		t.Fatalf("Trace(%q) failed on\n%s", word, g)
	}
	if len(path) != len(word) {
		t.Fatalf("path has %d cells, want %d", len(path), len(word))
	}
	seen := map[Coord]bool{}
	for i, p := range path {
		if g.LetterAt(p.Row, p.Col) != word[i] {
			t.Fatalf("path cell %d spells %q, want %q", i, g.LetterAt(p.Row, p.Col), word[i])
		}
		if seen[p] {
			t.Fatalf("path reuses %v", p)
		}
		seen[p] = true
		if i == 0 {
			continue
		}
		dr, dc := p.Row-path[i-1].Row, p.Col-path[i-1].Col
		if dr < -1 || dr > 1 || dc < -1 || dc > 1 || (dr == 0 && dc == 0) {
			t.Fatalf("cells %v and %v are not adjacent", path[i-1], p)
		}
	}
}

func TestContainsIsIdempotentAndReadOnly(t *testing.T) {
	g, _ := Generate(rand.New(rand.NewSource(11)), 5, 5, 4)
	before := g.String()
	words := []string{"", "a", "the", "quest", strings.Repeat("e", 30), g.Rows()[0]}
	for _, w := range words {
		first := Contains(g, w)
		for i := 0; i < 3; i++ {
			if Contains(g, w) != first {
				t.Fatalf("Contains(%q) changed between calls", w)
			}
		}
	}
	if g.String() != before {
		t.Fatalf("board mutated:\n%s\n%s", before, g)
	}
}

func TestSolve(t *testing.T) {
	g := mustRows(t, "ca", "ts")
	list := []string{"cat", "Cats", "act", "at", "taco", "cat", "sat", "tas"}
	got := Solve(g, list, 3)
	want := []string{"act", "cat", "cats", "sat", "tas"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Solve = %v, want %v", got, want)
	}
}

func TestFromRowsRejectsBadInput(t *testing.T) {
	for _, rows := range [][]string{nil, {""}, {"ab", "c"}, {"a1"}} {
		if _, err := FromRows(rows...); err == nil {
			t.Fatalf("FromRows(%q) should fail", rows)
		}
	}
}
