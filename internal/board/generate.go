// internal/board/generate.go
//
// Random board generation.
//
// Rules:
//   - Cells are visited row-major; each gets a uniform draw from a–z,
//     redrawn until the letter is under the per-letter cap.
//   - A committed 'q' overwrites its right neighbour (left neighbour in the
//     last column) with a skewed draw: 80% 'u', 20% uniform. A 'q' from that
//     draw continues the chain from the new cell.
//   - Cells written ahead of the cursor by the 'q' rule are not redrawn.
//
// Letter counts are local to one Generate call.

package board

import "math/rand"

// uBias is the probability that the letter after a 'q' is forced to 'u'.
const uBias = 0.8

type generator struct {
	rng    *rand.Rand
	max    int
	grid   *Grid
	counts [26]int
	filled []bool
}

// Generate returns a height×width board where no letter appears more than
// letterMax times. Parameters are checked with Validate before any drawing.
func Generate(rng *rand.Rand, height, width, letterMax int) (*Grid, error) {
	if err := Validate(height, width, letterMax); err != nil {
		return nil, err
	}
	gen := &generator{
		rng:    rng,
		max:    letterMax,
		grid:   &Grid{height: height, width: width, cells: make([]byte, height*width)},
		filled: make([]bool, height*width),
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			i := r*width + c
			if gen.filled[i] {
				continue
			}
			l := gen.draw(gen.uniform)
			gen.put(i, l)
			if l == 'q' {
				gen.followQ(r, c)
			}
		}
	}
	return gen.grid, nil
}

// followQ applies the 'q' rule starting from the 'q' at (r, c). The chain
// stops after letterMax steps; the last step never draws another 'q' while
// any other letter still has room.
func (gen *generator) followQ(r, c int) {
	w := gen.grid.width
	if w < 2 {
		return
	}
	for step := 1; ; step++ {
		nc := c + 1
		if nc == w {
			nc = c - 1
		}
		i := r*w + nc
		gen.release(i)
		next := gen.skewed
		if step >= gen.max && gen.roomBesides('q') {
			next = gen.skewedNoQ
		}
		l := gen.draw(next)
		gen.put(i, l)
		if l != 'q' || step >= gen.max {
			return
		}
		c = nc
	}
}

// draw pulls letters from next until one is under the cap.
func (gen *generator) draw(next func() byte) byte {
	for {
		l := next()
		if gen.counts[l-'a'] < gen.max {
			return l
		}
	}
}

func (gen *generator) uniform() byte {
	return Alphabet[gen.rng.Intn(len(Alphabet))]
}

func (gen *generator) skewed() byte {
	if gen.rng.Float64() < uBias {
		return 'u'
	}
	return gen.uniform()
}

// skewedNoQ is skewed with 'q' removed from the uniform branch.
func (gen *generator) skewedNoQ() byte {
	if gen.rng.Float64() < uBias {
		return 'u'
	}
	l := Alphabet[gen.rng.Intn(len(Alphabet)-1)]
	if l >= 'q' {
		l++
	}
	return l
}

// release forgets the letter at i, if any, so its count is freed before the
// replacement is drawn.
func (gen *generator) release(i int) {
	if gen.filled[i] {
		gen.counts[gen.grid.cells[i]-'a']--
		gen.filled[i] = false
	}
}

func (gen *generator) put(i int, l byte) {
	gen.grid.cells[i] = l
	gen.counts[l-'a']++
	gen.filled[i] = true
}

func (gen *generator) roomBesides(l byte) bool {
	for i, n := range gen.counts {
		if byte(i)+'a' != l && n < gen.max {
			return true
		}
	}
	return false
}
