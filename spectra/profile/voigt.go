package profile

import "github.com/cwbudde/algo-lineshape/spectra/line"

// voigtInto evaluates the Voigt profile through the complex
// probability function:
//
//	V(ν) = √(ln2/π)/γ_D · Re[w(x + iy)],  x = √ln2·(ν − ν₀)/γ_D,
//	                                      y = √ln2·γ_L/γ_D
//
// Line mixing adds the imaginary component weighted by the Rosenkranz
// coefficient. The zero-Lorentz-width case takes the explicit Gaussian
// branch, and a zero Doppler width falls back to the pure Lorentzian.
func voigtInto(dst []float64, r line.Resolved, window []float64) error {
	if r.GammaD <= 0 {
		return lorentzInto(dst, r, window)
	}
	if r.GammaL <= 0 {
		return dopplerInto(dst, r, window)
	}

	cte := sqrtLn2 / r.GammaD
	y := cte * r.GammaL
	scale := cte * invSqrtPi
	for i, nu := range window {
		w := faddeeva(cte*(nu-r.Center), y)
		dst[i] = scale * (real(w) + r.Mixing*imag(w))
	}
	return nil
}
