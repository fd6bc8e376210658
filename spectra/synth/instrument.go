package synth

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// InstrumentKind identifies an instrument line-shape function.
type InstrumentKind int

const (
	InstrumentNone InstrumentKind = iota
	InstrumentBoxcar
	InstrumentTriangular
	InstrumentGaussian
)

// String returns the conventional name of the instrument function.
func (k InstrumentKind) String() string {
	switch k {
	case InstrumentNone:
		return "none"
	case InstrumentBoxcar:
		return "boxcar"
	case InstrumentTriangular:
		return "triangular"
	case InstrumentGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("InstrumentKind(%d)", int(k))
	}
}

// directKernelLimit is the kernel length above which convolution
// switches from the direct SIMD path to the FFT path.
const directKernelLimit = 128

// instrumentKernel builds a symmetric, unit-sum convolution kernel of
// the given kind for a grid spacing dx. The kernel FWHM must be at
// least one grid step.
func instrumentKernel(kind InstrumentKind, fwhm, dx float64) ([]float64, error) {
	if fwhm <= 0 || fwhm < dx {
		return nil, fmt.Errorf("%w: fwhm=%g cm⁻¹, grid step %g cm⁻¹", ErrInstrumentResolution, fwhm, dx)
	}

	var k []float64
	switch kind {
	case InstrumentBoxcar:
		half := int(math.Round(fwhm / (2 * dx)))
		k = make([]float64, 2*half+1)
		for i := range k {
			k[i] = 1
		}

	case InstrumentTriangular:
		// Base width 2×FWHM gives a triangle whose half-maximum width
		// is the requested FWHM.
		half := int(math.Round(fwhm / dx))
		k = make([]float64, 2*half+1)
		for i := range k {
			k[i] = 1 - math.Abs(float64(i-half))/float64(half+1)
		}

	case InstrumentGaussian:
		sigma := fwhm / (2 * math.Sqrt(2*ln2))
		half := int(math.Ceil(4 * sigma / dx))
		k = make([]float64, 2*half+1)
		for i := range k {
			x := float64(i-half) * dx / sigma
			k[i] = math.Exp(-0.5 * x * x)
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownInstrument, int(kind))
	}

	sum := vecmath.Sum(k)
	vecmath.ScaleBlockInPlace(k, 1/sum)
	return k, nil
}

// convolveSame convolves signal with a symmetric kernel and returns
// the center-cropped result of the signal's length, zero-padded at the
// edges. Short kernels take the direct SIMD path; long kernels go
// through a single FFT round trip.
func convolveSame(signal, kernel []float64) ([]float64, error) {
	n, m := len(signal), len(kernel)

	var full []float64
	var err error
	if m <= directKernelLimit {
		full = convolveDirect(signal, kernel)
	} else {
		full, err = convolveFFT(signal, kernel)
		if err != nil {
			return nil, err
		}
	}

	start := (m - 1) / 2
	return full[start : start+n], nil
}

// convolveDirect is time-domain convolution with a vectorized inner
// loop: the kernel is scaled by each signal sample and added into the
// output at its offset.
func convolveDirect(signal, kernel []float64) []float64 {
	n, m := len(signal), len(kernel)
	full := make([]float64, n+m-1)
	temp := make([]float64, m)

	for i, s := range signal {
		if s == 0 {
			continue
		}
		vecmath.ScaleBlock(temp, kernel, s)
		vecmath.AddBlockInPlace(full[i:i+m], temp)
	}
	return full
}

// convolveFFT performs one-shot frequency-domain convolution.
func convolveFFT(signal, kernel []float64) ([]float64, error) {
	n, m := len(signal), len(kernel)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("synth: failed to create FFT plan: %w", err)
	}

	a := make([]complex128, fftSize)
	b := make([]complex128, fftSize)
	for i, v := range signal {
		a[i] = complex(v, 0)
	}
	for i, v := range kernel {
		b[i] = complex(v, 0)
	}

	if err := plan.Forward(a, a); err != nil {
		return nil, fmt.Errorf("synth: forward FFT failed: %w", err)
	}
	if err := plan.Forward(b, b); err != nil {
		return nil, fmt.Errorf("synth: forward FFT failed: %w", err)
	}

	for i := range a {
		a[i] *= b[i]
	}

	if err := plan.Inverse(a, a); err != nil {
		return nil, fmt.Errorf("synth: inverse FFT failed: %w", err)
	}

	full := make([]float64, n+m-1)
	for i := range full {
		full[i] = real(a[i])
	}
	return full, nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
