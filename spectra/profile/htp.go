package profile

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

// htInto evaluates the Hartmann-Tran profile in its hard-collision
// speed-dependent form: quadratic speed dependence of width and shift
// (Gamma2, Delta2) and a velocity-changing collision rate NuVC. With
// NuVC forced to zero it is the speed-dependent Voigt; with Gamma2,
// Delta2, and NuVC all zero it reduces to Voigt.
//
// The kernel follows the standard formulation
//
//	I(ν) = (1/π) · Re[ A(ν) / (1 − ν_VC·A(ν)) ]
//
// where A is built from the complex probability function at the roots
// of the speed-dependent relaxation polynomial. Guard branches cover
// the weak-speed-dependence limit (X ≪ Y) and the far-wing limit
// (Y ≪ X), where the sqrt difference would cancel catastrophically.
func htInto(dst []float64, r line.Resolved, window []float64) error {
	if r.GammaD <= 0 {
		return lorentzInto(dst, r, window)
	}
	if r.Gamma2 == 0 && r.Delta2 == 0 && r.NuVC == 0 && r.GammaL <= 0 {
		// Speed dependence and narrowing absent on a zero-pressure
		// line: pure Gaussian, evaluated on its explicit branch.
		return dopplerInto(dst, r, window)
	}

	cte := sqrtLn2 / r.GammaD
	c0 := complex(r.GammaL, 0) // the pressure shift is already folded into Center
	c2 := complex(r.Gamma2, r.Delta2)
	c0t := c0 - 1.5*c2 + complex(r.NuVC, 0)
	c2t := c2

	speedDependent := c2t != 0
	var csqrtY, yTerm complex128
	if speedDependent {
		csqrtY = 1 / (complex(2*cte, 0) * c2t)
		yTerm = csqrtY * csqrtY
	}

	nuVC := complex(r.NuVC, 0)
	scale := complex(sqrtPi*cte, 0)

	for i, nu := range window {
		diff := complex(0, r.Center-nu)

		var a complex128
		switch {
		case !speedDependent:
			z1 := (diff + c0t) * complex(cte, 0)
			a = scale * faddeeva(-imag(z1), real(z1))

		default:
			x := (diff + c0t) / c2t
			switch {
			case cmplx.Abs(x) <= 3e-8*cmplx.Abs(yTerm):
				// Weak speed dependence: sqrt(X+Y)−sqrt(Y) cancels;
				// use the exact small-X expansion of the first root.
				z1 := (diff + c0t) * complex(cte, 0)
				z2 := cmplx.Sqrt(x+yTerm) + csqrtY
				a = scale * (faddeeva(-imag(z1), real(z1)) - faddeeva(-imag(z2), real(z2)))

			case cmplx.Abs(yTerm) <= 1e-15*cmplx.Abs(x):
				// Far wing: Y negligible against X.
				sx := cmplx.Sqrt(x)
				if cmplx.Abs(sx) <= 4000 {
					wb := faddeeva(-imag(sx), real(sx))
					a = (2 / c2t) * (1 - complex(sqrtPi, 0)*sx*wb)
				} else {
					a = (1 / c2t) * (1/x - 1.5/(x*x))
				}

			default:
				z1 := cmplx.Sqrt(x+yTerm) - csqrtY
				z2 := z1 + 2*csqrtY
				a = scale * (faddeeva(-imag(z1), real(z1)) - faddeeva(-imag(z2), real(z2)))
			}
		}

		ls := a / (complex(math.Pi, 0) * (1 - nuVC*a))
		dst[i] = real(ls) + r.Mixing*imag(ls)
	}
	return nil
}
