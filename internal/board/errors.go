// internal/board/errors.go
//
// Generation parameter checks.
// Defines:
//   - ErrConfig: the sentinel for boards whose letter cap can never be met.
//   - Validate: the up-front H×W×letterMax check shared by Generate and config.
//   - FromRows input errors.

package board

import (
	"errors"
	"fmt"
)

// ErrConfig is returned when generation parameters can never be satisfied.
var ErrConfig = errors.New("board: unsatisfiable configuration")

var (
	errEmptyRows  = errors.New("board: no rows")
	errRaggedRows = errors.New("board: rows differ in length")
	errBadLetter  = errors.New("board: rows must contain letters a-z only")
)

// Validate checks generation parameters up front. A board of height*width
// cells needs height*width <= 26*letterMax, or the letter cap can never be met.
func Validate(height, width, letterMax int) error {
	switch {
	case height < 1 || width < 1:
		return fmt.Errorf("%w: dimensions %dx%d", ErrConfig, height, width)
	case letterMax < 1:
		return fmt.Errorf("%w: letter cap %d", ErrConfig, letterMax)
	case height*width > len(Alphabet)*letterMax:
		return fmt.Errorf("%w: %d cells exceed %d letters at cap %d",
			ErrConfig, height*width, len(Alphabet), letterMax)
	}
	return nil
}
