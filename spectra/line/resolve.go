package line

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Physical constants, CGS where dimensional.
const (
	// SecondRadiation is c₂ = h·c/k in cm·K.
	SecondRadiation = 1.4388028496642257

	// Boltzmann constant in erg/K.
	Boltzmann = 1.380648813e-16

	// SpeedOfLight in cm/s.
	SpeedOfLight = 2.99792458e10

	// AtomicMassUnit in g.
	AtomicMassUnit = 1.66053873e-24

	ln2 = 0.693147180559945309417232121458
)

// Errors returned by Resolve.
var (
	ErrNonPositivePosition  = errors.New("line: rest wavenumber must be positive")
	ErrNegativeIntensity    = errors.New("line: intensity must be non-negative")
	ErrNegativeLowerEnergy  = errors.New("line: lower-state energy must be non-negative")
	ErrNonPositiveMass      = errors.New("line: molar mass must be positive")
	ErrNonPositivePartition = errors.New("line: partition function values must be positive")
)

// Resolved holds the per-line parameters a profile kernel consumes,
// derived from one Transition under one Environment. Instances live
// for a single synthesis call and are never shared across calls.
//
// All widths are half widths at half maximum in cm⁻¹. Invariant:
// Strength, GammaL, and GammaD are non-negative, and GammaD > 0
// whenever the temperature is positive.
type Resolved struct {
	Center   float64 // pressure-shifted position, cm⁻¹ (may be negative)
	GammaL   float64 // Lorentz HWHM
	GammaD   float64 // Doppler HWHM
	Strength float64 // intensity rescaled to the ambient temperature

	// Beyond-Voigt parameters, already scaled to ambient pressure.
	// All zero for a plain Voigt line.
	Gamma2 float64
	Delta2 float64
	NuVC   float64
	Mixing float64
}

// Resolve converts a transition to ambient conditions: shifted center,
// per-diluent Lorentz width with its temperature exponent, Doppler
// width, and the Boltzmann/partition/stimulated-emission intensity
// rescale. qRef and qT are the partition function at the reference and
// ambient temperatures.
//
// Transitions without an Extension resolve to plain Voigt parameters;
// that fallback is documented behavior, not an error.
func Resolve(tr Transition, env Environment, molarMass, qRef, qT float64) (Resolved, error) {
	if tr.Nu <= 0 {
		return Resolved{}, fmt.Errorf("%w: %g cm⁻¹", ErrNonPositivePosition, tr.Nu)
	}
	if tr.Sw < 0 {
		return Resolved{}, fmt.Errorf("%w: %g", ErrNegativeIntensity, tr.Sw)
	}
	if tr.Elower < 0 {
		return Resolved{}, fmt.Errorf("%w: %g cm⁻¹", ErrNegativeLowerEnergy, tr.Elower)
	}
	if molarMass <= 0 {
		return Resolved{}, fmt.Errorf("%w: %g g/mol", ErrNonPositiveMass, molarMass)
	}
	if qRef <= 0 || qT <= 0 {
		return Resolved{}, fmt.Errorf("%w: Q(TRef)=%g, Q(T)=%g", ErrNonPositivePartition, qRef, qT)
	}

	t := env.Temperature
	tRef := env.refTemperature()
	p := env.Pressure

	r := Resolved{
		Center:   tr.Nu + tr.DeltaAir*p*math.Pow(tRef/t, tr.NDelta),
		GammaL:   lorentzWidth(tr, env),
		GammaD:   dopplerWidth(tr.Nu, t, molarMass),
		Strength: tr.Sw * intensityFactor(tr.Nu, tr.Elower, t, tRef, qRef, qT),
	}

	if ext := tr.Extension; ext != nil {
		r.Gamma2 = ext.Gamma2 * p
		r.Delta2 = ext.Delta2 * p
		r.NuVC = ext.NuVC * p
		r.Mixing = ext.Mixing * p
	}
	return r, nil
}

// lorentzWidth sums the per-perturber pressure broadening, scaled by
// the common temperature exponent. Zero pressure gives exactly zero.
// Perturbers are summed in lexical order so repeated calls are
// bit-identical.
func lorentzWidth(tr Transition, env Environment) float64 {
	if env.Pressure == 0 {
		return 0
	}

	names := make([]string, 0, len(env.Diluent))
	for name := range env.Diluent {
		names = append(names, name)
	}
	sort.Strings(names)

	sum := 0.0
	for _, name := range names {
		x := env.Diluent[name]
		if name == "self" {
			sum += x * tr.GammaSelf
		} else {
			sum += x * tr.GammaAir
		}
	}
	return sum * env.Pressure * math.Pow(env.refTemperature()/env.Temperature, tr.NAir)
}

// dopplerWidth returns the Doppler HWHM √(2ln2·k·T/m)·ν₀/c. It is
// strictly positive for any positive temperature.
func dopplerWidth(nu, temperature, molarMass float64) float64 {
	m := molarMass * AtomicMassUnit
	return math.Sqrt(2*ln2*Boltzmann*temperature/m) * nu / SpeedOfLight
}

// intensityFactor is the ratio S(T)/S(TRef): partition function ratio,
// Boltzmann population of the lower state, and stimulated emission.
func intensityFactor(nu, elower, t, tRef, qRef, qT float64) float64 {
	const c2 = SecondRadiation
	boltz := math.Exp(-c2*elower/t) / math.Exp(-c2*elower/tRef)
	stim := (1 - math.Exp(-c2*nu/t)) / (1 - math.Exp(-c2*nu/tRef))
	return qRef / qT * boltz * stim
}
