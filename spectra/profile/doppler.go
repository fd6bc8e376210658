package profile

import (
	"math"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

const (
	ln2       = 0.693147180559945309417232121458
	sqrtLn2   = 0.832554611157697756353164644896
	sqrtPi    = 1.772453850905516027298167483341
	invSqrtPi = 1 / sqrtPi
)

// dopplerInto evaluates the thermal Gaussian
//
//	G(ν) = √(ln2/π)/γ_D · exp(−ln2·((ν − ν₀)/γ_D)²)
func dopplerInto(dst []float64, r line.Resolved, window []float64) error {
	if r.GammaD <= 0 {
		return ErrDegenerate
	}

	peak := sqrtLn2 * invSqrtPi / r.GammaD
	inv := sqrtLn2 / r.GammaD
	for i, nu := range window {
		x := (nu - r.Center) * inv
		dst[i] = peak * math.Exp(-x*x)
	}
	return nil
}
