package profile

import (
	"testing"

	"github.com/cwbudde/algo-lineshape/spectra/line"
)

func benchmarkKind(b *testing.B, kind Kind, r line.Resolved) {
	window := testWindow(r.Center, 5, 0.001)
	dst := make([]float64, len(window))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := EvaluateInto(dst, kind, r, window); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLorentz(b *testing.B) {
	benchmarkKind(b, Lorentz, line.Resolved{Center: 2000, GammaL: 0.05})
}

func BenchmarkDoppler(b *testing.B) {
	benchmarkKind(b, Doppler, line.Resolved{Center: 2000, GammaD: 0.002})
}

func BenchmarkVoigt(b *testing.B) {
	benchmarkKind(b, Voigt, line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002})
}

func BenchmarkSDV(b *testing.B) {
	benchmarkKind(b, SDVoigt, line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002, Gamma2: 0.005})
}

func BenchmarkHT(b *testing.B) {
	benchmarkKind(b, HartmannTran, line.Resolved{Center: 2000, GammaL: 0.05, GammaD: 0.002, Gamma2: 0.005, NuVC: 0.01})
}
