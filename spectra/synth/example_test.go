package synth_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-lineshape/spectra/grid"
	"github.com/cwbudde/algo-lineshape/spectra/line"
	"github.com/cwbudde/algo-lineshape/spectra/partition"
	"github.com/cwbudde/algo-lineshape/spectra/profile"
	"github.com/cwbudde/algo-lineshape/spectra/synth"
)

func ExampleSynthesizer_Synthesize() {
	table, err := partition.NewTable([]float64{1, 5000}, []float64{100, 100})
	if err != nil {
		panic(err)
	}
	provider := partition.NewProvider()
	provider.Add("CO-26", table)

	meta := map[string]line.Meta{
		"CO-26": {MolarMass: 28, Abundance: 0.9865},
	}

	transitions := []line.Transition{{
		Isotopologue: "CO-26",
		Nu:           2000,
		Sw:           1e-20,
		GammaAir:     0.05,
		GammaSelf:    0.3,
		Elower:       100,
	}}

	g, err := grid.Uniform(1999, 2001, 0.001)
	if err != nil {
		panic(err)
	}

	s := synth.New(profile.Voigt, provider, meta)
	spec, err := s.Synthesize(context.Background(), transitions, line.DefaultEnvironment(), g)
	if err != nil {
		panic(err)
	}

	peak := 0.0
	for _, v := range spec.Coef {
		if v > peak {
			peak = v
		}
	}

	fmt.Println("points:", len(spec.Coef))
	fmt.Println("lines:", spec.Provenance.LinesIncluded)
	fmt.Printf("peak: %.1f × 10⁻²⁰ cm²\n", peak*1e20)
	// Output:
	// points: 2001
	// lines: 1
	// peak: 6.4 × 10⁻²⁰ cm²
}
