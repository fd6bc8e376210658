// Package partition provides total internal partition function lookup
// Q(T) for isotopologues, by linear interpolation over precomputed
// tables.
//
// Tables are strictly increasing in temperature. Lookups slightly
// outside the tabulated domain (within 1% of the table span) are
// served by edge-slope extrapolation and flagged; anything further out
// is an error.
package partition

import (
	"errors"
	"fmt"
)

// Errors returned by partition function lookups.
var (
	ErrNoTable          = errors.New("partition: no table for isotopologue")
	ErrTemperatureRange = errors.New("partition: temperature outside tabulated domain")
	ErrTableLength      = errors.New("partition: table needs at least two points")
	ErrTableOrder       = errors.New("partition: temperatures must be strictly increasing")
	ErrNonPositiveQ     = errors.New("partition: partition function values must be positive")
)

// extrapolationMargin is the fraction of the table span allowed beyond
// either end before a lookup fails.
const extrapolationMargin = 0.01

// Table holds a sampled partition function for one isotopologue.
type Table struct {
	temps []float64
	q     []float64
}

// NewTable builds a table from parallel temperature and Q samples.
// Temperatures must be strictly increasing and Q values positive.
func NewTable(temps, q []float64) (*Table, error) {
	if len(temps) < 2 || len(temps) != len(q) {
		return nil, fmt.Errorf("%w: %d temperatures, %d values", ErrTableLength, len(temps), len(q))
	}
	for i := range temps {
		if i > 0 && temps[i] <= temps[i-1] {
			return nil, fmt.Errorf("%w: T[%d]=%g, T[%d]=%g", ErrTableOrder, i-1, temps[i-1], i, temps[i])
		}
		if q[i] <= 0 {
			return nil, fmt.Errorf("%w: Q[%d]=%g", ErrNonPositiveQ, i, q[i])
		}
	}

	t := &Table{
		temps: append([]float64(nil), temps...),
		q:     append([]float64(nil), q...),
	}
	return t, nil
}

// Bounds returns the tabulated temperature domain.
func (t *Table) Bounds() (min, max float64) {
	return t.temps[0], t.temps[len(t.temps)-1]
}

// At returns Q(T) by linear interpolation. Within the extrapolation
// margin beyond either end it extrapolates along the edge segment and
// reports extrapolated=true; beyond the margin it fails with
// ErrTemperatureRange.
func (t *Table) At(temperature float64) (q float64, extrapolated bool, err error) {
	min, max := t.Bounds()
	margin := extrapolationMargin * (max - min)

	if temperature < min-margin || temperature > max+margin {
		return 0, false, fmt.Errorf("%w: T=%g K, table [%g, %g] K", ErrTemperatureRange, temperature, min, max)
	}

	n := len(t.temps)
	switch {
	case temperature < min:
		return t.segment(0, temperature), true, nil
	case temperature > max:
		return t.segment(n-2, temperature), true, nil
	}

	// Binary search for the segment containing T.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if t.temps[mid] <= temperature {
			lo = mid
		} else {
			hi = mid
		}
	}
	return t.segment(lo, temperature), false, nil
}

// segment evaluates the linear interpolant of segment i at T.
func (t *Table) segment(i int, temperature float64) float64 {
	t0, t1 := t.temps[i], t.temps[i+1]
	q0, q1 := t.q[i], t.q[i+1]
	return q0 + (q1-q0)*(temperature-t0)/(t1-t0)
}

// Provider maps isotopologue identifiers to partition function tables.
type Provider struct {
	tables map[string]*Table
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{tables: make(map[string]*Table)}
}

// Add registers a table under an isotopologue identifier, replacing
// any previous table for that identifier.
func (p *Provider) Add(isotopologue string, t *Table) {
	p.tables[isotopologue] = t
}

// Q returns the partition function for an isotopologue at the given
// temperature. Fails with ErrNoTable for unknown isotopologues and
// ErrTemperatureRange outside the tabulated domain plus margin.
func (p *Provider) Q(isotopologue string, temperature float64) (float64, error) {
	t, ok := p.tables[isotopologue]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoTable, isotopologue)
	}

	q, _, err := t.At(temperature)
	return q, err
}

// QDetail is Q with the extrapolation flag exposed, for callers that
// track out-of-table lookups.
func (p *Provider) QDetail(isotopologue string, temperature float64) (q float64, extrapolated bool, err error) {
	t, ok := p.tables[isotopologue]
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrNoTable, isotopologue)
	}
	return t.At(temperature)
}
