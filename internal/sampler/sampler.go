package sampler

import (
	"math"

	"github.com/olivier-w/barscope/internal/bands"
)

// Sampler extracts one normalized amplitude per bar from a dB snapshot.
type Sampler struct {
	Norm     Normalizer
	weights  []float64
	weighted []float64
}

// New returns a Sampler applying the given weighting filter.
func New(norm Normalizer, f Filter, fftSize int, sampleRate float64) *Sampler {
	return &Sampler{Norm: norm, weights: Weights(f, fftSize, sampleRate)}
}

// Weighted returns data with the weighting offsets added. The returned slice
// is owned by the sampler and valid until the next call.
func (s *Sampler) Weighted(data []float64) []float64 {
	if s.weights == nil {
		return data
	}
	if cap(s.weighted) < len(data) {
		s.weighted = make([]float64, len(data))
	}
	out := s.weighted[:len(data)]
	for i, v := range data {
		if i < len(s.weights) {
			v += s.weights[i]
		}
		out[i] = v
	}
	return out
}

// interp blends bin and bin+1 by ratio. Undefined input reads as silence.
func interp(data []float64, bin int, ratio float64) float64 {
	if bin < 0 || bin >= len(data) {
		return math.Inf(-1)
	}
	v := data[bin]
	if ratio != 0 && bin < len(data)-1 {
		v += (data[bin+1] - data[bin]) * ratio
	}
	if math.IsNaN(v) {
		return math.Inf(-1)
	}
	return v
}

// Raw returns the bar's dB value: the maximum across its bin range, or the
// mean for bars flagged Average.
func Raw(b bands.Bar, data []float64) float64 {
	lo := interp(data, b.BinLo, b.RatioLo)
	hi := interp(data, b.BinHi, b.RatioHi)

	if b.Average {
		sum, n := lo+hi, 2.0
		for j := b.BinLo + 1; j < b.BinHi && j < len(data); j++ {
			sum += data[j]
			n++
		}
		return sum / n
	}

	v := math.Max(lo, hi)
	for j := b.BinLo + 1; j < b.BinHi && j < len(data); j++ {
		if data[j] > v {
			v = data[j]
		}
	}
	return v
}

// Sample writes the normalized value of every bar into dst, growing it as
// needed, and returns it.
func (s *Sampler) Sample(dst []float64, bars []bands.Bar, data []float64) []float64 {
	if cap(dst) < len(bars) {
		dst = make([]float64, len(bars))
	}
	dst = dst[:len(bars)]
	data = s.Weighted(data)
	for i, b := range bars {
		dst[i] = s.Norm.Normalize(Raw(b, data))
	}
	return dst
}

// Bin returns the normalized, weighted value of a single bin.
func (s *Sampler) Bin(data []float64, bin int) float64 {
	if bin < 0 || bin >= len(data) {
		return 0
	}
	v := data[bin]
	if bin < len(s.weights) {
		v += s.weights[bin]
	}
	return s.Norm.Normalize(v)
}
