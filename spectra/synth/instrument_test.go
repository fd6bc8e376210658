package synth

import (
	"errors"
	"math"
	"testing"
)

func TestInstrumentKernelUnitSum(t *testing.T) {
	kinds := []InstrumentKind{InstrumentBoxcar, InstrumentTriangular, InstrumentGaussian}
	widths := []float64{0.01, 0.05, 0.3}

	for _, kind := range kinds {
		for _, fwhm := range widths {
			k, err := instrumentKernel(kind, fwhm, 0.001)
			if err != nil {
				t.Fatalf("%v fwhm=%v: %v", kind, fwhm, err)
			}

			if len(k)%2 != 1 {
				t.Fatalf("%v fwhm=%v: kernel length %d, want odd", kind, fwhm, len(k))
			}

			sum := 0.0
			for _, v := range k {
				sum += v
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Fatalf("%v fwhm=%v: kernel sum=%v, want 1", kind, fwhm, sum)
			}

			for i, j := 0, len(k)-1; i < j; i, j = i+1, j-1 {
				if k[i] != k[j] {
					t.Fatalf("%v fwhm=%v: k[%d]=%v != k[%d]=%v", kind, fwhm, i, k[i], j, k[j])
				}
			}
		}
	}
}

func TestInstrumentKernelErrors(t *testing.T) {
	if _, err := instrumentKernel(InstrumentBoxcar, 0, 0.001); !errors.Is(err, ErrInstrumentResolution) {
		t.Fatalf("fwhm=0: err=%v, want ErrInstrumentResolution", err)
	}

	if _, err := instrumentKernel(InstrumentBoxcar, 0.0005, 0.001); !errors.Is(err, ErrInstrumentResolution) {
		t.Fatalf("fwhm<dx: err=%v, want ErrInstrumentResolution", err)
	}

	if _, err := instrumentKernel(InstrumentKind(42), 0.1, 0.001); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("unknown kind: err=%v, want ErrUnknownInstrument", err)
	}
}

// Convolving a centered delta returns the kernel itself.
func TestConvolveSameDelta(t *testing.T) {
	kernel, err := instrumentKernel(InstrumentTriangular, 0.02, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	signal := make([]float64, 201)
	signal[100] = 1

	out, err := convolveSame(signal, kernel)
	if err != nil {
		t.Fatalf("convolveSame: %v", err)
	}

	if len(out) != len(signal) {
		t.Fatalf("len(out)=%d, want %d", len(out), len(signal))
	}

	half := len(kernel) / 2
	for i, v := range out {
		want := 0.0
		if i >= 100-half && i <= 100+half {
			want = kernel[i-(100-half)]
		}
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("out[%d]=%v, want %v", i, v, want)
		}
	}
}

// The direct and FFT convolution paths must agree on the full product.
func TestConvolveDirectMatchesFFT(t *testing.T) {
	signal := make([]float64, 500)
	for i := range signal {
		x := float64(i)
		signal[i] = math.Sin(0.05*x) + 0.3*math.Cos(0.21*x)
	}

	kernel, err := instrumentKernel(InstrumentGaussian, 0.05, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	if len(kernel) <= directKernelLimit {
		t.Fatalf("kernel length %d, want > %d to cover the FFT path", len(kernel), directKernelLimit)
	}

	direct := convolveDirect(signal, kernel)
	viaFFT, err := convolveFFT(signal, kernel)
	if err != nil {
		t.Fatalf("convolveFFT: %v", err)
	}

	if len(direct) != len(viaFFT) {
		t.Fatalf("length mismatch: %d vs %d", len(direct), len(viaFFT))
	}

	for i := range direct {
		if math.Abs(direct[i]-viaFFT[i]) > 1e-9 {
			t.Fatalf("index %d: direct=%v fft=%v", i, direct[i], viaFFT[i])
		}
	}
}

// A unit-sum kernel preserves the total of a signal whose support stays
// clear of the edges.
func TestConvolveSamePreservesSum(t *testing.T) {
	kernel, err := instrumentKernel(InstrumentBoxcar, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	signal := make([]float64, 400)
	for i := 100; i < 300; i++ {
		x := float64(i-200) / 40
		signal[i] = math.Exp(-x * x)
	}

	out, err := convolveSame(signal, kernel)
	if err != nil {
		t.Fatalf("convolveSame: %v", err)
	}

	var sumIn, sumOut float64
	for i := range signal {
		sumIn += signal[i]
		sumOut += out[i]
	}
	if math.Abs(sumIn-sumOut) > 1e-9*sumIn {
		t.Fatalf("sum changed: %v vs %v", sumIn, sumOut)
	}
}

func TestInstrumentKindString(t *testing.T) {
	want := map[InstrumentKind]string{
		InstrumentNone:       "none",
		InstrumentBoxcar:     "boxcar",
		InstrumentTriangular: "triangular",
		InstrumentGaussian:   "gaussian",
	}

	for kind, name := range want {
		if kind.String() != name {
			t.Fatalf("String(%d)=%q, want %q", int(kind), kind.String(), name)
		}
	}

	if got := InstrumentKind(42).String(); got != "InstrumentKind(42)" {
		t.Fatalf("String(42)=%q", got)
	}
}

func TestNextPowerOf2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 500: 512, 1024: 1024, 1025: 2048}
	for n, want := range cases {
		if got := nextPowerOf2(n); got != want {
			t.Fatalf("nextPowerOf2(%d)=%d, want %d", n, got, want)
		}
	}
}
