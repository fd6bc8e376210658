package synth

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lineshape/spectra/grid"
	"github.com/cwbudde/algo-lineshape/spectra/line"
	"github.com/cwbudde/algo-lineshape/spectra/profile"
)

// Accumulator sums per-line profile contributions onto a wavenumber
// grid. It owns a private coefficient buffer and a scratch buffer for
// profile evaluation, so several accumulators can run concurrently and
// be merged afterwards. Accumulation is order-independent up to
// floating-point rounding.
type Accumulator struct {
	g       grid.Grid
	coef    []float64
	scratch []float64
}

// NewAccumulator returns an accumulator with a zeroed coefficient
// buffer parallel to g.
func NewAccumulator(g grid.Grid) *Accumulator {
	return &Accumulator{
		g:       g,
		coef:    make([]float64, len(g)),
		scratch: make([]float64, len(g)),
	}
}

// Add evaluates the profile of r over the window [lo, hi) of the grid,
// scales by the line strength, and adds it to the coefficient buffer.
// An empty window is a no-op.
func (ac *Accumulator) Add(kind profile.Kind, r line.Resolved, lo, hi int) error {
	if lo >= hi {
		return nil
	}

	vals := ac.scratch[:hi-lo]
	err := profile.EvaluateInto(vals, kind, r, ac.g[lo:hi])
	if err != nil {
		return err
	}

	vecmath.ScaleBlockInPlace(vals, r.Strength)
	vecmath.AddBlockInPlace(ac.coef[lo:hi], vals)
	return nil
}

// Merge adds another accumulator's buffer into this one element-wise.
func (ac *Accumulator) Merge(other *Accumulator) error {
	if len(ac.coef) != len(other.coef) {
		return fmt.Errorf("synth: cannot merge buffers of length %d and %d", len(ac.coef), len(other.coef))
	}
	vecmath.AddBlockInPlace(ac.coef, other.coef)
	return nil
}

// Coefficients returns the accumulated buffer. The accumulator retains
// ownership until synthesis hands the buffer to the output spectrum.
func (ac *Accumulator) Coefficients() []float64 {
	return ac.coef
}

// checkNonNegative verifies that every accumulated coefficient is
// non-negative, which holds by construction for non-negative line
// intensities without line mixing. A violation means a numeric defect
// upstream.
func checkNonNegative(coef []float64) error {
	for i, v := range coef {
		if v < 0 {
			return fmt.Errorf("%w: %g at index %d", ErrNegativeCoefficient, v, i)
		}
	}
	return nil
}
