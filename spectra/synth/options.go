package synth

import "runtime"

// Config defines synthesis settings.
type Config struct {
	// CutoffMultiplier bounds each line's contribution to
	// |ν − center| ≤ CutoffMultiplier × max(γ_L, γ_D). The default of
	// 50 covers well over 99.9% of a Voigt line's area.
	CutoffMultiplier float64

	// CutoffWavenumber is an absolute wing cutoff floor in cm⁻¹.
	// The effective cutoff is the larger of the two. Zero disables it.
	CutoffWavenumber float64

	// WeakLineThreshold skips lines whose estimated peak falls below
	// this fraction of the strongest line's estimated peak. Zero keeps
	// every line.
	WeakLineThreshold float64

	// Strict aborts synthesis on the first per-line failure instead of
	// skipping the line and recording it in provenance.
	Strict bool

	// AllowEmpty returns an all-zero spectrum for an empty transition
	// list instead of failing with ErrNoTransitions.
	AllowEmpty bool

	// Workers is the number of parallel accumulation workers.
	Workers int

	// NumberDensity converts the result from cross section
	// (cm²/molecule) to absorption coefficient (cm⁻¹) using the
	// ideal-gas number density at the ambient conditions.
	NumberDensity bool

	// AbundanceScaling multiplies each line's strength by the natural
	// abundance of its isotopologue, for datasets whose intensities
	// are abundance-free.
	AbundanceScaling bool

	// Instrument selects an optional instrument line-shape function
	// convolved onto the completed spectrum.
	Instrument InstrumentKind

	// InstrumentFWHM is the full width at half maximum of the
	// instrument function in cm⁻¹.
	InstrumentFWHM float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for one-shot synthesis.
func DefaultConfig() Config {
	return Config{
		CutoffMultiplier: 50,
		Workers:          runtime.GOMAXPROCS(0),
	}
}

// WithCutoffMultiplier sets the wing cutoff in characteristic widths.
func WithCutoffMultiplier(m float64) Option {
	return func(cfg *Config) {
		if m > 0 {
			cfg.CutoffMultiplier = m
		}
	}
}

// WithCutoffWavenumber sets an absolute wing cutoff floor in cm⁻¹.
func WithCutoffWavenumber(w float64) Option {
	return func(cfg *Config) {
		if w > 0 {
			cfg.CutoffWavenumber = w
		}
	}
}

// WithWeakLineThreshold sets the relative peak threshold below which
// lines are skipped.
func WithWeakLineThreshold(t float64) Option {
	return func(cfg *Config) {
		if t >= 0 {
			cfg.WeakLineThreshold = t
		}
	}
}

// WithStrict aborts synthesis on any per-line failure.
func WithStrict() Option {
	return func(cfg *Config) {
		cfg.Strict = true
	}
}

// WithAllowEmpty permits an empty transition list.
func WithAllowEmpty() Option {
	return func(cfg *Config) {
		cfg.AllowEmpty = true
	}
}

// WithWorkers sets the number of parallel accumulation workers.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithNumberDensity outputs an absorption coefficient in cm⁻¹ instead
// of a cross section.
func WithNumberDensity() Option {
	return func(cfg *Config) {
		cfg.NumberDensity = true
	}
}

// WithAbundanceScaling weights line strengths by isotopologue
// abundance.
func WithAbundanceScaling() Option {
	return func(cfg *Config) {
		cfg.AbundanceScaling = true
	}
}

// WithInstrument convolves the finished spectrum with an instrument
// function of the given kind and FWHM in cm⁻¹.
func WithInstrument(kind InstrumentKind, fwhm float64) Option {
	return func(cfg *Config) {
		cfg.Instrument = kind
		cfg.InstrumentFWHM = fwhm
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
