// internal/board/search.go
//
// Word tracing on a board.
//
// A word is on the board when its letters can be spelled by a path of
// 8-directionally adjacent cells that never reuses a cell. The search is a
// depth-first backtrack from every cell holding the first letter; the visited
// set lives for one call only and the board is never written.

package board

import (
	"sort"
	"strings"
)

// Contains reports whether word can be traced on g. Matching is
// case-insensitive; the empty string is never on the board.
func Contains(g Letters, word string) bool {
	_, ok := Trace(g, word)
	return ok
}

// Trace returns one path spelling word on g, first letter first.
func Trace(g Letters, word string) ([]Coord, bool) {
	word = strings.ToLower(word)
	h, w := g.Height(), g.Width()
	if word == "" || len(word) > h*w || !isAlpha(word) {
		return nil, false
	}

	used := make([]bool, h*w)
	path := make([]Coord, 0, len(word))

	var advance func(rest string, row, col int) bool
	advance = func(rest string, row, col int) bool {
		if rest == "" {
			return true
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue // the current cell
				}
				r, c := row+dr, col+dc
				if r < 0 || r >= h || c < 0 || c >= w || used[r*w+c] {
					continue
				}
				if g.LetterAt(r, c) != rest[0] {
					continue
				}
				used[r*w+c] = true
				path = append(path, Coord{Row: r, Col: c})
				if advance(rest[1:], r, c) {
					return true
				}
				used[r*w+c] = false
				path = path[:len(path)-1]
			}
		}
		return false
	}

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if g.LetterAt(r, c) != word[0] {
				continue
			}
			used[r*w+c] = true
			path = append(path[:0], Coord{Row: r, Col: c})
			if advance(word[1:], r, c) {
				return path, true
			}
			used[r*w+c] = false
		}
	}
	return nil, false
}

// Solve returns every word in list of at least minLen letters that can be
// traced on g, sorted and without duplicates.
func Solve(g Letters, list []string, minLen int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range list {
		w = strings.ToLower(w)
		if len(w) < minLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		if Contains(g, w) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if idx(s[i]) < 0 {
			return false
		}
	}
	return true
}
