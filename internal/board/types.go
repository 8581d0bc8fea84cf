// internal/board/types.go
//
// Core type definitions for a Boggle board.
// Defines:
//   - Coord: a (row, column) cell position.
//   - Grid:  a fully populated H×W letter board, stored row-major.
//   - Letters: the read-only lookup contract the search runs against.

package board

import "strings"

// Alphabet is the set of letters a board is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Coord identifies a cell on the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Letters is the read-only view of a board needed to trace words.
type Letters interface {
	Height() int
	Width() int
	LetterAt(row, col int) byte
}

// Grid is a populated letter board. Cells are stored row-major and always
// hold a lowercase letter once Generate or FromRows has returned.
type Grid struct {
	height int
	width  int
	cells  []byte
}

// FromRows builds a grid from one string per row (e.g. "ca", "ts").
// Rows must be non-empty, equal length and contain only letters a–z
// (input is lowercased first).
func FromRows(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errEmptyRows
	}
	w := len(rows[0])
	g := &Grid{height: len(rows), width: w, cells: make([]byte, 0, len(rows)*w)}
	for _, r := range rows {
		r = strings.ToLower(r)
		if len(r) != w {
			return nil, errRaggedRows
		}
		for i := 0; i < len(r); i++ {
			if idx(r[i]) < 0 {
				return nil, errBadLetter
			}
		}
		g.cells = append(g.cells, r...)
	}
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// LetterAt returns the letter at (row, col). Callers must stay in bounds.
func (g *Grid) LetterAt(row, col int) byte { return g.cells[row*g.width+col] }

// Rows returns the board as one string per row.
func (g *Grid) Rows() []string {
	out := make([]string, g.height)
	for r := 0; r < g.height; r++ {
		out[r] = string(g.cells[r*g.width : (r+1)*g.width])
	}
	return out
}

// Matrix returns the board as rows of single-letter strings, the shape the
// JSON API sends to clients.
func (g *Grid) Matrix() [][]string {
	out := make([][]string, g.height)
	for r := range out {
		row := make([]string, g.width)
		for c := range row {
			row[c] = string(g.LetterAt(r, c))
		}
		out[r] = row
	}
	return out
}

// String renders the board as space-separated rows, uppercased.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(g.LetterAt(r, c) - 'a' + 'A')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// idx maps a lowercase ASCII letter to 0..25, or -1.
func idx(l byte) int {
	if l < 'a' || l > 'z' {
		return -1
	}
	return int(l - 'a')
}
