package profile

import (
	"math"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

// lorentzInto evaluates the pressure-broadened Lorentzian
//
//	L(ν) = (1/π) · [γ_L + Y·(ν − ν₀)] / [(ν − ν₀)² + γ_L²]
//
// including the first-order Rosenkranz line-mixing term Y.
func lorentzInto(dst []float64, r line.Resolved, window []float64) error {
	if r.GammaL <= 0 {
		return ErrDegenerate
	}

	g2 := r.GammaL * r.GammaL
	for i, nu := range window {
		d := nu - r.Center
		dst[i] = (r.GammaL + r.Mixing*d) / (math.Pi * (d*d + g2))
	}
	return nil
}
