// Package profile provides the line-shape kernels used by spectrum
// synthesis: Lorentz, Doppler, Voigt, speed-dependent Voigt, and
// Hartmann-Tran, all evaluated per line over a wavenumber window.
//
// Every kernel writes area-normalized values (integral 1 over an
// infinite axis) into a caller-supplied destination slice, so the
// accumulator can scale by line strength without re-allocating:
//
//	vals := make([]float64, len(window))
//	err := profile.EvaluateInto(vals, profile.Voigt, resolved, window)
//
// The Voigt family is computed through a single rational approximation
// of the complex probability function (Humlíček's four-region w4
// algorithm) with relative error below 1e-4 across Doppler-dominated
// through Lorentz-dominated regimes. The Hartmann-Tran kernel is the
// hard-collision speed-dependent profile; with zero narrowing it is
// the speed-dependent Voigt, and with zero speed dependence it reduces
// exactly to Voigt. A zero Lorentz width short-circuits to the pure
// Gaussian branch rather than taking a limit through the general
// formula.
package profile
