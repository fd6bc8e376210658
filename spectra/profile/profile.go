package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

// Errors returned by profile evaluation.
var (
	ErrLengthMismatch = errors.New("profile: destination and window must have same length")
	ErrUnknownKind    = errors.New("profile: unknown profile kind")
	ErrDegenerate     = errors.New("profile: line has zero width for this profile")
	ErrUnstable       = errors.New("profile: evaluation produced NaN or Inf")
)

// Kind identifies a line-shape profile.
type Kind int

const (
	Lorentz Kind = iota
	Doppler
	Voigt
	SDVoigt
	HartmannTran
)

// String returns the conventional short name of the profile.
func (k Kind) String() string {
	switch k {
	case Lorentz:
		return "Lorentz"
	case Doppler:
		return "Doppler"
	case Voigt:
		return "Voigt"
	case SDVoigt:
		return "SDV"
	case HartmannTran:
		return "HT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Kinds returns all supported profile kinds.
func Kinds() []Kind {
	return []Kind{Lorentz, Doppler, Voigt, SDVoigt, HartmannTran}
}

// EvaluateInto writes the area-normalized line-shape values of r at
// every wavenumber in window into dst. dst and window must have equal
// length. A zero window is a no-op.
//
// Degenerate widths are handled by explicit branches: a zero Lorentz
// width evaluates the pure Gaussian form, never a near-zero division
// through the general formula. Divergent evaluations (NaN or Inf in
// the output) fail with ErrUnstable so the caller can decide between
// skipping the line and aborting synthesis.
func EvaluateInto(dst []float64, kind Kind, r line.Resolved, window []float64) error {
	if len(dst) != len(window) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(window))
	}
	if len(window) == 0 {
		return nil
	}

	var err error
	switch kind {
	case Lorentz:
		err = lorentzInto(dst, r, window)
	case Doppler:
		err = dopplerInto(dst, r, window)
	case Voigt:
		err = voigtInto(dst, r, window)
	case SDVoigt:
		r.NuVC = 0 // SDV is HT with the narrowing term fixed at zero
		err = htInto(dst, r, window)
	case HartmannTran:
		err = htInto(dst, r, window)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if err != nil {
		return err
	}
	return checkFinite(dst)
}

// checkFinite reports ErrUnstable if any output value is NaN or Inf.
func checkFinite(vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %g at index %d", ErrUnstable, v, i)
		}
	}
	return nil
}
