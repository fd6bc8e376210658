package profile

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

// HT with zero speed dependence and zero narrowing must reproduce
// Voigt at every grid point. This is the defining reduction of the
// Hartmann-Tran family and is held to 1e-6 relative tolerance.
func TestHTReducesToVoigt(t *testing.T) {
	cases := []struct {
		name           string
		gammaL, gammaD float64
	}{
		{"doppler dominated", 0.0005, 0.002},
		{"balanced", 0.002, 0.002},
		{"lorentz dominated", 0.05, 0.002},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := line.Resolved{Center: 2000, GammaL: tc.gammaL, GammaD: tc.gammaD}
			window := testWindow(2000, 1, 0.0005)

			ht := make([]float64, len(window))
			voigt := make([]float64, len(window))
			if err := EvaluateInto(ht, HartmannTran, r, window); err != nil {
				t.Fatalf("HT: %v", err)
			}
			if err := EvaluateInto(voigt, Voigt, r, window); err != nil {
				t.Fatalf("Voigt: %v", err)
			}

			for i := range ht {
				if !withinRel(ht[i], voigt[i], 1e-6) {
					t.Fatalf("index %d (ν=%v): ht=%v voigt=%v", i, window[i], ht[i], voigt[i])
				}
			}
		})
	}
}

// SDV with zero speed-dependence parameters is likewise Voigt.
func TestSDVReducesToVoigt(t *testing.T) {
	r := line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002}
	window := testWindow(2000, 1, 0.0005)

	sdv := make([]float64, len(window))
	voigt := make([]float64, len(window))
	if err := EvaluateInto(sdv, SDVoigt, r, window); err != nil {
		t.Fatalf("SDV: %v", err)
	}
	if err := EvaluateInto(voigt, Voigt, r, window); err != nil {
		t.Fatalf("Voigt: %v", err)
	}

	for i := range sdv {
		if !withinRel(sdv[i], voigt[i], 1e-6) {
			t.Fatalf("index %d: sdv=%v voigt=%v", i, sdv[i], voigt[i])
		}
	}
}

// SDV ignores the narrowing rate entirely: with NuVC set it must equal
// HT evaluated with NuVC zero.
func TestSDVIgnoresNarrowing(t *testing.T) {
	window := testWindow(2000, 1, 0.0005)

	withNarrowing := line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002, Gamma2: 0.005, NuVC: 0.02}
	without := withNarrowing
	without.NuVC = 0

	sdv := make([]float64, len(window))
	ht := make([]float64, len(window))
	if err := EvaluateInto(sdv, SDVoigt, withNarrowing, window); err != nil {
		t.Fatalf("SDV: %v", err)
	}
	if err := EvaluateInto(ht, HartmannTran, without, window); err != nil {
		t.Fatalf("HT: %v", err)
	}

	for i := range sdv {
		if sdv[i] != ht[i] {
			t.Fatalf("index %d: sdv=%v ht=%v, want identical", i, sdv[i], ht[i])
		}
	}
}

func TestHTSpeedDependenceNarrowsCore(t *testing.T) {
	window := testWindow(2000, 1, 0.0005)
	mid := len(window) / 2

	plain := line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002}
	sd := plain
	sd.Gamma2 = 0.01

	voigt := make([]float64, len(window))
	sdv := make([]float64, len(window))
	if err := EvaluateInto(voigt, Voigt, plain, window); err != nil {
		t.Fatalf("Voigt: %v", err)
	}
	if err := EvaluateInto(sdv, SDVoigt, sd, window); err != nil {
		t.Fatalf("SDV: %v", err)
	}

	// Speed dependence reduces the effective width, raising the peak.
	if sdv[mid] <= voigt[mid] {
		t.Fatalf("peak: sdv=%v voigt=%v, want sdv higher", sdv[mid], voigt[mid])
	}
}

func TestHTNarrowingRaisesPeak(t *testing.T) {
	window := testWindow(2000, 0.1, 0.0001)
	mid := len(window) / 2

	// Doppler-dominated regime, where Dicke narrowing is visible.
	plain := line.Resolved{Center: 2000, GammaL: 0.0005, GammaD: 0.005}
	narrowed := plain
	narrowed.NuVC = 0.01

	voigt := make([]float64, len(window))
	ht := make([]float64, len(window))
	if err := EvaluateInto(voigt, Voigt, plain, window); err != nil {
		t.Fatalf("Voigt: %v", err)
	}
	if err := EvaluateInto(ht, HartmannTran, narrowed, window); err != nil {
		t.Fatalf("HT: %v", err)
	}

	if ht[mid] <= voigt[mid] {
		t.Fatalf("peak: ht=%v voigt=%v, want ht higher with narrowing", ht[mid], voigt[mid])
	}
}

func TestHTArea(t *testing.T) {
	cases := []struct {
		name string
		r    line.Resolved
	}{
		{"sdv", line.Resolved{GammaL: 0.05, GammaD: 0.002, Gamma2: 0.008}},
		{"sdv shifted", line.Resolved{GammaL: 0.05, GammaD: 0.002, Gamma2: 0.008, Delta2: -0.003}},
		{"ht", line.Resolved{GammaL: 0.05, GammaD: 0.002, Gamma2: 0.008, NuVC: 0.02}},
		{"rautian", line.Resolved{GammaL: 0.05, GammaD: 0.002, NuVC: 0.02}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			const step = 0.001
			window := testWindow(0, 100, step)

			vals := make([]float64, len(window))
			if err := EvaluateInto(vals, HartmannTran, tc.r, window); err != nil {
				t.Fatalf("EvaluateInto: %v", err)
			}

			if got := integrate(vals, step); !withinRel(got, 1, 2e-3) {
				t.Fatalf("area=%v, want 1", got)
			}
		})
	}
}

func TestHTZeroPressureGaussian(t *testing.T) {
	r := line.Resolved{Center: 2000, GammaD: 0.002}
	window := testWindow(2000, 0.02, 1e-4)

	ht := make([]float64, len(window))
	if err := EvaluateInto(ht, HartmannTran, r, window); err != nil {
		t.Fatalf("HT: %v", err)
	}

	for i, nu := range window {
		x := (nu - r.Center) / r.GammaD
		want := math.Sqrt(ln2/math.Pi) / r.GammaD * math.Exp(-ln2*x*x)
		if !withinRel(ht[i], want, 1e-6) {
			t.Fatalf("HT(%v)=%v, want Gaussian %v", nu, ht[i], want)
		}
	}
}
