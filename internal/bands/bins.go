package bands

import "math"

// Bins converts between frequencies and FFT bin indices.
type Bins struct {
	FFTSize    int
	SampleRate float64
}

// Count is the number of bins in one magnitude snapshot.
func (b Bins) Count() int { return b.FFTSize / 2 }

// Freq returns the frequency represented by bin.
func (b Bins) Freq(bin int) float64 {
	return float64(bin) * b.SampleRate / float64(b.FFTSize)
}

// Index returns the bin for freq using the given rounding function, clamped
// to the valid bin range.
func (b Bins) Index(freq float64, round func(float64) float64) int {
	bin := int(round(freq * float64(b.FFTSize) / b.SampleRate))
	if last := b.Count() - 1; bin > last {
		return last
	}
	if bin < 0 {
		return 0
	}
	return bin
}

// Ratio locates freq between two neighboring bins. The ratio is measured in
// the log domain whatever the display scale, so blending between bins stays
// perceptually even. Bin 0 has no log domain and falls back to linear.
func (b Bins) Ratio(freq float64) (int, float64) {
	bin := b.Index(freq, math.Floor)
	lower := b.Freq(bin)
	upper := b.Freq(bin + 1)

	var ratio float64
	if lower <= 0 {
		ratio = freq / upper
	} else {
		ratio = math.Log2(freq/lower) / math.Log2(upper/lower)
	}
	if ratio < 0 || math.IsNaN(ratio) {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return bin, ratio
}
