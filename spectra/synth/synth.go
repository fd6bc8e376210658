package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"github.com/meko-christian/algo-approx"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-lineshape/spectra/grid"
	"github.com/cwbudde/algo-lineshape/spectra/line"
	"github.com/cwbudde/algo-lineshape/spectra/profile"
)

// Errors returned by synthesis.
var (
	ErrNoTransitions        = errors.New("synth: empty transition list")
	ErrNoMetadata           = errors.New("synth: no metadata for isotopologue")
	ErrNegativeCoefficient  = errors.New("synth: negative accumulated coefficient")
	ErrIrregularGrid        = errors.New("synth: instrument convolution needs a uniform grid")
	ErrInstrumentResolution = errors.New("synth: instrument FWHM must be positive and at least one grid step")
	ErrUnknownInstrument    = errors.New("synth: unknown instrument function")
)

const ln2 = 0.693147180559945309417232121458

// PartitionProvider supplies the total internal partition function for
// an isotopologue at a temperature.
type PartitionProvider interface {
	Q(isotopologue string, temperature float64) (float64, error)
}

// Spectrum is the synthesized output: coefficient values parallel to
// the wavenumber grid, plus provenance. The caller owns it.
type Spectrum struct {
	Nu         grid.Grid
	Coef       []float64
	Provenance Provenance
}

// Provenance records what went into a spectrum.
type Provenance struct {
	Profile             profile.Kind
	Environment         line.Environment
	Isotopologues       []string
	LinesIncluded       int
	LinesBelowThreshold int
	LinesOutsideGrid    int
	Skipped             []SkippedLine
}

// SkippedLine records one transition dropped during lenient synthesis.
type SkippedLine struct {
	Index  int // position in the input transition list
	Reason string
}

// Synthesizer computes absorption spectra for one profile kind using
// a partition function provider and isotopologue metadata. It holds no
// per-call state and is safe for concurrent use.
type Synthesizer struct {
	kind profile.Kind
	q    PartitionProvider
	meta map[string]line.Meta
	cfg  Config
}

// New returns a synthesizer for the given profile kind.
func New(kind profile.Kind, q PartitionProvider, meta map[string]line.Meta, opts ...Option) *Synthesizer {
	return &Synthesizer{
		kind: kind,
		q:    q,
		meta: meta,
		cfg:  ApplyOptions(opts...),
	}
}

// job is one resolved line ready for accumulation.
type job struct {
	index int
	r     line.Resolved
	cut   float64
}

// Synthesize runs the full pipeline: resolve every transition,
// evaluate its profile over the wing-cutoff window, accumulate in
// parallel, and post-process (units, instrument function).
//
// Per-line failures are skipped and recorded in provenance unless the
// Strict option is set. Structural failures — invalid grid, empty
// input without AllowEmpty, missing partition table or metadata — are
// always returned.
func (s *Synthesizer) Synthesize(ctx context.Context, transitions []line.Transition, env line.Environment, g grid.Grid) (*Spectrum, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	out := &Spectrum{
		Nu: g,
		Provenance: Provenance{
			Profile:     s.kind,
			Environment: env,
		},
	}

	if len(transitions) == 0 {
		if !s.cfg.AllowEmpty {
			return nil, ErrNoTransitions
		}
		out.Coef = make([]float64, len(g))
		return out, nil
	}

	qRef, qAmb, err := s.partitionRatios(transitions, env)
	if err != nil {
		return nil, err
	}
	out.Provenance.Isotopologues = sortedKeys(qRef)

	jobs, err := s.resolveAll(transitions, env, qRef, qAmb, out)
	if err != nil {
		return nil, err
	}

	ac, err := s.accumulate(ctx, jobs, g, out)
	if err != nil {
		return nil, err
	}
	out.Coef = ac.Coefficients()

	if !s.mixingUsed(jobs) {
		if err := checkNonNegative(out.Coef); err != nil {
			return nil, err
		}
	}

	if s.cfg.NumberDensity {
		// Ideal-gas number density in molecules/cm³; 1 atm is
		// 1.01325e6 dyn/cm².
		n := env.Pressure * 1.01325e6 / (line.Boltzmann * env.Temperature)
		vecmath.ScaleBlockInPlace(out.Coef, n)
	}

	if s.cfg.Instrument != InstrumentNone {
		if err := s.applyInstrument(out, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// partitionRatios looks up Q(TRef) and Q(T) once per isotopologue.
// Missing tables are structural failures regardless of Strict.
func (s *Synthesizer) partitionRatios(transitions []line.Transition, env line.Environment) (qRef, qAmb map[string]float64, err error) {
	qRef = make(map[string]float64)
	qAmb = make(map[string]float64)

	tRef := env.TRef
	if tRef <= 0 {
		tRef = line.TRef
	}

	for _, tr := range transitions {
		iso := tr.Isotopologue
		if _, ok := qRef[iso]; ok {
			continue
		}
		if _, ok := s.meta[iso]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrNoMetadata, iso)
		}

		ref, err := s.q.Q(iso, tRef)
		if err != nil {
			return nil, nil, err
		}
		amb, err := s.q.Q(iso, env.Temperature)
		if err != nil {
			return nil, nil, err
		}
		qRef[iso] = ref
		qAmb[iso] = amb
	}
	return qRef, qAmb, nil
}

// resolveAll converts transitions to jobs, applying the weak-line
// prefilter and the per-line failure policy.
func (s *Synthesizer) resolveAll(transitions []line.Transition, env line.Environment, qRef, qAmb map[string]float64, out *Spectrum) ([]job, error) {
	keep := s.prefilter(transitions, env, qRef, qAmb, out)

	jobs := make([]job, 0, len(transitions))
	for i, tr := range transitions {
		if !keep[i] {
			continue
		}

		meta := s.meta[tr.Isotopologue]
		r, err := line.Resolve(tr, env, meta.MolarMass, qRef[tr.Isotopologue], qAmb[tr.Isotopologue])
		if err != nil {
			if s.cfg.Strict {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
			out.Provenance.Skipped = append(out.Provenance.Skipped, SkippedLine{Index: i, Reason: err.Error()})
			continue
		}
		if s.cfg.AbundanceScaling {
			r.Strength *= meta.Abundance
		}

		cut := s.cfg.CutoffMultiplier * math.Max(r.GammaL, r.GammaD)
		if s.cfg.CutoffWavenumber > cut {
			cut = s.cfg.CutoffWavenumber
		}
		jobs = append(jobs, job{index: i, r: r, cut: cut})
	}
	return jobs, nil
}

// prefilter marks the transitions to keep. With a zero threshold every
// line survives. Peak estimates use fast approximations: they only
// rank lines against each other, so reduced precision is acceptable
// and keeps the prefilter out of the resolve hot path.
func (s *Synthesizer) prefilter(transitions []line.Transition, env line.Environment, qRef, qAmb map[string]float64, out *Spectrum) []bool {
	keep := make([]bool, len(transitions))
	for i := range keep {
		keep[i] = true
	}
	if s.cfg.WeakLineThreshold <= 0 {
		return keep
	}

	est := make([]float64, len(transitions))
	strongest := 0.0
	for i, tr := range transitions {
		ratio := qRef[tr.Isotopologue] / qAmb[tr.Isotopologue]
		est[i] = s.peakEstimate(tr, env, ratio)
		if est[i] > strongest {
			strongest = est[i]
		}
	}
	if strongest == 0 {
		return keep
	}

	floor := s.cfg.WeakLineThreshold * strongest
	for i := range est {
		if est[i] < floor {
			keep[i] = false
			out.Provenance.LinesBelowThreshold++
		}
	}
	return keep
}

// peakEstimate approximates the peak contribution of a line: the
// Boltzmann-rescaled intensity over the dominant half width.
func (s *Synthesizer) peakEstimate(tr line.Transition, env line.Environment, qRatio float64) float64 {
	if tr.Sw <= 0 || tr.Nu <= 0 {
		return 0
	}

	tRef := env.TRef
	if tRef <= 0 {
		tRef = line.TRef
	}
	boltz := approx.FastExp(-line.SecondRadiation * tr.Elower * (1/env.Temperature - 1/tRef))

	gammaL := tr.GammaAir * env.Pressure
	mass := s.meta[tr.Isotopologue].MolarMass
	gammaD := tr.Nu / line.SpeedOfLight *
		approx.FastSqrt(2*ln2*line.Boltzmann*env.Temperature/(mass*line.AtomicMassUnit))

	width := math.Max(gammaL, gammaD)
	if width <= 0 {
		return tr.Sw * qRatio * boltz
	}
	return tr.Sw * qRatio * boltz / width
}

// accumulate distributes jobs across workers, each with a private
// partial spectrum, and merges the partials. Cancellation is observed
// between lines only.
func (s *Synthesizer) accumulate(ctx context.Context, jobs []job, g grid.Grid, out *Spectrum) (*Accumulator, error) {
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return NewAccumulator(g), nil
	}

	type partial struct {
		ac       *Accumulator
		skipped  []SkippedLine
		included int
		outside  int
	}

	parts := make([]partial, workers)
	chunk := (len(jobs) + workers - 1) / workers

	eg, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(jobs) {
			hi = len(jobs)
		}
		if lo >= hi {
			parts[w].ac = NewAccumulator(g)
			continue
		}

		w := w
		batch := jobs[lo:hi]
		parts[w].ac = NewAccumulator(g)
		eg.Go(func() error {
			p := &parts[w]
			for _, j := range batch {
				if err := gctx.Err(); err != nil {
					return err
				}

				lo, hi := g.Window(j.r.Center-j.cut, j.r.Center+j.cut)
				if lo >= hi {
					p.outside++
					continue
				}

				err := p.ac.Add(s.kind, j.r, lo, hi)
				if err != nil {
					if s.cfg.Strict {
						return fmt.Errorf("line %d: %w", j.index, err)
					}
					p.skipped = append(p.skipped, SkippedLine{Index: j.index, Reason: err.Error()})
					continue
				}
				p.included++
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := parts[0].ac
	for w := 1; w < workers; w++ {
		if err := total.Merge(parts[w].ac); err != nil {
			return nil, err
		}
	}
	for _, p := range parts {
		out.Provenance.LinesIncluded += p.included
		out.Provenance.LinesOutsideGrid += p.outside
		out.Provenance.Skipped = append(out.Provenance.Skipped, p.skipped...)
	}
	return total, nil
}

// applyInstrument convolves the finished spectrum with the configured
// instrument function.
func (s *Synthesizer) applyInstrument(out *Spectrum, g grid.Grid) error {
	dx, uniform := g.Spacing()
	if !uniform || dx <= 0 {
		return ErrIrregularGrid
	}

	kernel, err := instrumentKernel(s.cfg.Instrument, s.cfg.InstrumentFWHM, dx)
	if err != nil {
		return err
	}

	smoothed, err := convolveSame(out.Coef, kernel)
	if err != nil {
		return err
	}
	out.Coef = smoothed
	return nil
}

// mixingUsed reports whether any accumulated line carried a line-mixing
// coefficient. Mixed lines can legitimately dip below zero in the
// wings, so the non-negativity invariant is only enforced without
// mixing.
func (s *Synthesizer) mixingUsed(jobs []job) bool {
	for _, j := range jobs {
		if j.r.Mixing != 0 {
			return true
		}
	}
	return false
}

// sortedKeys returns the map keys in lexical order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
