package source

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Analyser turns time-domain blocks into smoothed dB magnitude snapshots:
// Blackman window, FFT, magnitude scaled by 1/N, exponential smoothing over
// frames, then 20·log10.
type Analyser struct {
	size      int
	smoothing float64
	fft       *fourier.FFT
	window    []float64
	work      []float64
	coeffs    []complex128
	smoothed  []float64
}

// NewAnalyser returns an analyser for blocks of size samples. smoothing is
// the time constant in [0,1) applied between consecutive frames.
func NewAnalyser(size int, smoothing float64) *Analyser {
	ones := make([]float64, size)
	for i := range ones {
		ones[i] = 1
	}
	return &Analyser{
		size:      size,
		smoothing: math.Max(0, math.Min(smoothing, 0.99)),
		fft:       fourier.NewFFT(size),
		window:    window.Blackman(ones),
		work:      make([]float64, size),
		smoothed:  make([]float64, size/2),
	}
}

// Analyse writes the dB snapshot of block into dst, which is grown to
// size/2 as needed, and returns it. Silent bins read -Inf.
func (a *Analyser) Analyse(dst, block []float64) []float64 {
	for i := range a.work {
		v := 0.0
		if i < len(block) {
			v = block[i]
		}
		a.work[i] = v * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.work)

	half := a.size / 2
	if cap(dst) < half {
		dst = make([]float64, half)
	}
	dst = dst[:half]
	scale := 1 / float64(a.size)
	for k := range half {
		mag := cmplx.Abs(a.coeffs[k]) * scale
		s := a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		a.smoothed[k] = s
		dst[k] = 20 * math.Log10(s)
	}
	return dst
}
