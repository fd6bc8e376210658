package line

import (
	"errors"
	"fmt"
)

// Errors returned by environment validation.
var (
	ErrNonPositiveTemperature = errors.New("line: temperature must be positive")
	ErrNegativePressure       = errors.New("line: pressure must be non-negative")
	ErrDiluentFraction        = errors.New("line: diluent fractions must be in [0, 1] and sum to at most 1")
)

// TRef is the HITRAN reference temperature in kelvin.
const TRef = 296.0

// Environment describes the ambient thermodynamic conditions of a
// synthesis call.
type Environment struct {
	Temperature float64 // K, > 0
	Pressure    float64 // atm, ≥ 0

	// Diluent maps perturber names to mole fractions. The name "self"
	// selects the self-broadening coefficient; any other name selects
	// air broadening. Fractions must sum to at most 1.
	Diluent map[string]float64

	// TRef is the reference temperature of the supplied line
	// parameters. Zero means the HITRAN default of 296 K.
	TRef float64
}

// DefaultEnvironment returns standard conditions: 296 K, 1 atm, pure
// air broadening.
func DefaultEnvironment() Environment {
	return Environment{
		Temperature: TRef,
		Pressure:    1,
		Diluent:     map[string]float64{"air": 1},
		TRef:        TRef,
	}
}

// refTemperature returns the effective reference temperature.
func (e Environment) refTemperature() float64 {
	if e.TRef > 0 {
		return e.TRef
	}
	return TRef
}

// Validate checks the physical constraints on the environment.
func (e Environment) Validate() error {
	if e.Temperature <= 0 {
		return fmt.Errorf("%w: %g K", ErrNonPositiveTemperature, e.Temperature)
	}
	if e.Pressure < 0 {
		return fmt.Errorf("%w: %g atm", ErrNegativePressure, e.Pressure)
	}

	sum := 0.0
	for name, x := range e.Diluent {
		if x < 0 || x > 1 {
			return fmt.Errorf("%w: %q=%g", ErrDiluentFraction, name, x)
		}
		sum += x
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("%w: sum=%g", ErrDiluentFraction, sum)
	}
	return nil
}
