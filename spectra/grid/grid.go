// Package grid provides the wavenumber sampling axis used by spectrum
// synthesis: validation, uniform construction, and binary-search window
// location for wing cutoffs.
package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by grid functions.
var (
	ErrEmpty         = errors.New("grid: empty grid")
	ErrNotIncreasing = errors.New("grid: samples must be strictly increasing")
	ErrInvalidStep   = errors.New("grid: step must be positive")
	ErrInvalidRange  = errors.New("grid: start must be less than stop")
)

// Grid is an ordered sequence of wavenumber sample points in cm⁻¹.
//
// A valid grid is strictly increasing. It may be irregular, but cutoff
// bucketing and instrument convolution assume near-uniform spacing.
type Grid []float64

// Uniform returns a grid from start to stop (inclusive within half a
// step) with the given spacing.
func Uniform(start, stop, step float64) (Grid, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	if start >= stop {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, start, stop)
	}

	n := int(math.Floor((stop-start)/step+0.5)) + 1
	g := make(Grid, n)
	for i := range g {
		g[i] = start + float64(i)*step
	}
	return g, nil
}

// Validate checks that the grid is non-empty and strictly increasing.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return ErrEmpty
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("%w: g[%d]=%g, g[%d]=%g", ErrNotIncreasing, i-1, g[i-1], i, g[i])
		}
	}
	return nil
}

// Spacing returns the mean sample spacing and whether the grid is
// uniform within a 1e-6 relative tolerance. A single-point grid
// reports spacing 0 and uniform true.
func (g Grid) Spacing() (mean float64, uniform bool) {
	if len(g) < 2 {
		return 0, true
	}

	mean = (g[len(g)-1] - g[0]) / float64(len(g)-1)
	uniform = true
	for i := 1; i < len(g); i++ {
		d := g[i] - g[i-1]
		if math.Abs(d-mean) > 1e-6*mean {
			uniform = false
			break
		}
	}
	return mean, uniform
}

// Window returns the half-open index range [lo, hi) of samples inside
// [min, max]. An empty intersection yields lo == hi.
func (g Grid) Window(min, max float64) (lo, hi int) {
	lo = sort.SearchFloat64s(g, min)
	hi = sort.SearchFloat64s(g, max)
	for hi < len(g) && g[hi] <= max {
		hi++
	}
	return lo, hi
}
