package interpolate

import (
	"fmt"
	"math"
)

// searcher finds the grid cell containing a point. Only strictly increasing
// grids are supported.
type searcher struct {
	xs          []float64
	x0, dx, lim float64
	n           int
	unif        bool
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Grid has %d points, but at least 2 are needed.",
			len(xs)))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			panic(fmt.Sprintf("Grid is not strictly increasing at "+
				"index %d: %g follows %g.", i, xs[i], xs[i-1]))
		}
	}
	s.xs = xs
	s.x0 = xs[0]
	s.lim = xs[len(xs)-1]
	s.dx = (s.lim - s.x0) / float64(len(xs)-1)
	s.n = len(xs)
	s.unif = false
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	if n < 2 {
		panic(fmt.Sprintf("Grid has %d points, but at least 2 are needed.", n))
	} else if !(dx > 0) {
		panic(fmt.Sprintf("Grid spacing %g is not positive.", dx))
	}
	s.xs = nil
	s.x0 = x0
	s.lim = float64(n-1)*dx + x0
	s.dx = dx
	s.n = n
	s.unif = true
}

// search returns the index i of the cell [x_i, x_i+1] containing x. The
// returned index is always in [0, n - 2].
func (s *searcher) search(x float64) int {
	if x > s.lim || x < s.x0 || math.IsNaN(x) {
		panic(fmt.Sprintf(
			"Value %g out of range bounds [%g, %g]", x, s.x0, s.lim,
		))
	}

	if s.unif {
		idx := int((x - s.x0) / s.dx)
		if idx >= s.n-1 {
			idx = s.n - 2
		}
		return idx
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.x0) / s.dx)
	if guess >= 0 && guess < s.n-1 &&
		s.xs[guess] <= x && x <= s.xs[guess+1] {
		return guess
	}

	// Binary search.
	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= s.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *searcher) val(i int) float64 {
	if s.unif {
		return float64(i)*s.dx + s.x0
	}
	return s.xs[i]
}

// bounds returns the first and last grid points.
func (s *searcher) bounds() (lo, hi float64) {
	return s.x0, s.lim
}
