// Package synth assembles absorption spectra from molecular transition
// lists: it resolves each line to ambient conditions, evaluates its
// profile over a wing-cutoff window, and accumulates the contributions
// onto a shared wavenumber grid.
//
// The per-line work is purely functional, so lines are partitioned
// across workers that accumulate into private partial spectra, merged
// element-wise at the end. Cancellation is checked between lines only;
// no line evaluation is interrupted midway.
//
// # Usage
//
//	s := synth.New(profile.Voigt, provider, meta,
//	    synth.WithCutoffMultiplier(50),
//	    synth.WithWorkers(4),
//	)
//	spec, err := s.Synthesize(ctx, transitions, env, g)
//
// The output is a cross section in cm²/molecule by default; the
// WithNumberDensity option rescales once to an absorption coefficient
// in cm⁻¹ using the ideal-gas number density. An instrument function
// (boxcar, triangular, or Gaussian) can be convolved onto the finished
// spectrum, never per line.
package synth
