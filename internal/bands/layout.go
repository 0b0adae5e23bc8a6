package bands

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivier-w/barscope/internal/scale"
)

// ErrInvalidParams is returned by Build for unusable layout parameters.
var ErrInvalidParams = errors.New("bands: invalid layout parameters")

// ErrEmptyLayout is returned when no band fits the frequency range.
var ErrEmptyLayout = errors.New("bands: no bands in frequency range")

const (
	// C-1, the lowest MIDI note, anchors the equal-tempered series.
	tunedReference = 8.175798915643707
	// 10^0.9 Hz anchors the ANSI base-10 series so 1 kHz is a midband.
	ansiReference = 7.943282347242815
)

// Params describes the analyzer area and spectrum a layout is built for.
type Params struct {
	Scale      scale.Kind
	Mode       Mode
	ANSI       bool
	MinFreq    float64
	MaxFreq    float64
	FFTSize    int
	SampleRate float64
	Width      float64 // analyzer width in pixels
	X0         float64 // pixel offset of the first bar
	Average    bool    // flag bars forced to share a bin
}

// Layout is an ordered bar list and the axis used to place labels.
type Layout struct {
	Bars     []Bar
	Axis     scale.Axis
	BarWidth float64
}

func (p Params) validate() error {
	switch {
	case p.MinFreq <= 0 || p.MaxFreq <= 0:
		return fmt.Errorf("%w: frequency bounds must be positive", ErrInvalidParams)
	case p.MinFreq >= p.MaxFreq:
		return fmt.Errorf("%w: min frequency %g not below max %g", ErrInvalidParams, p.MinFreq, p.MaxFreq)
	case p.FFTSize < 32 || p.FFTSize&(p.FFTSize-1) != 0:
		return fmt.Errorf("%w: fft size %d is not a power of two >= 32", ErrInvalidParams, p.FFTSize)
	case p.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %g", ErrInvalidParams, p.SampleRate)
	case p.Width <= 0:
		return fmt.Errorf("%w: width %g", ErrInvalidParams, p.Width)
	case !p.Mode.Valid():
		return fmt.Errorf("%w: band mode %d", ErrInvalidParams, int(p.Mode))
	}
	return nil
}

// Build computes the bar list for p.
func Build(p Params) (Layout, error) {
	if err := p.validate(); err != nil {
		return Layout{}, err
	}
	bins := Bins{FFTSize: p.FFTSize, SampleRate: p.SampleRate}

	var l Layout
	switch {
	case p.Mode.Octave() && p.Scale == scale.Log:
		l = buildOctaveLog(p, bins)
	case p.Mode.Octave():
		l = buildOctaveScaled(p, bins)
	default:
		l = buildDiscrete(p, bins)
	}
	if len(l.Bars) == 0 {
		return Layout{}, fmt.Errorf("%w: %g-%g Hz", ErrEmptyLayout, p.MinFreq, p.MaxFreq)
	}
	for i := range l.Bars {
		l.Bars[i].Index = i
	}
	if p.Average {
		markShared(l.Bars)
	}
	return l, nil
}

func buildDiscrete(p Params, bins Bins) Layout {
	axis := scale.NewAxis(p.Scale, p.MinFreq, p.MaxFreq, p.Width)
	lo := bins.Index(p.MinFreq, math.Round)
	hi := bins.Index(p.MaxFreq, math.Round)
	if lo < 1 {
		lo = 1
	}

	var bars []Bar
	last := math.Inf(-1)
	for i := lo; i <= hi; i++ {
		freq := bins.Freq(i)
		x := p.X0 + math.Round(axis.X(freq))
		if x > last {
			bars = append(bars, Bar{
				Freq: freq, FreqLo: freq, FreqHi: freq,
				BinLo: i, BinHi: i,
				PosX: x,
			})
			last = x
			continue
		}
		// Same column: widen the last bar.
		b := &bars[len(bars)-1]
		b.BinHi = i
		b.FreqHi = freq
		b.Freq = math.Sqrt(b.FreqLo * freq)
	}
	return Layout{Bars: bars, Axis: axis, BarWidth: 1}
}

func buildOctaveLog(p Params, bins Bins) Layout {
	n := float64(p.Mode)
	ratio := math.Exp2(1 / n)
	start := tunedReference
	if p.ANSI {
		ratio = math.Pow(10, 3/(10*n))
		start = ansiReference
		if int(p.Mode)%2 == 0 {
			// 1 kHz falls on a band edge for even denominators.
			start /= math.Sqrt(ratio)
		}
	}
	half := math.Sqrt(ratio)

	var bars []Bar
	for k := 0; ; k++ {
		center := start * math.Pow(ratio, float64(k))
		if center > p.MaxFreq {
			break
		}
		nominal := nominalFrequency(center, int(p.Mode), p.ANSI)
		if nominal < p.MinFreq {
			continue
		}
		bars = append(bars, Bar{Freq: nominal, FreqLo: center / half, FreqHi: center * half})
	}
	if len(bars) == 0 {
		return Layout{}
	}

	width := p.Width / float64(len(bars))
	for i := range bars {
		bars[i].PosX = p.X0 + float64(i)*width
	}

	// The axis uses the unclamped outer edges so labels line up with the
	// bands; clamping only applies to bin lookup.
	first, last := &bars[0], &bars[len(bars)-1]
	axis := scale.NewAxis(scale.Log, first.FreqLo, last.FreqHi, p.Width)
	first.FreqLo = math.Max(first.FreqLo, p.MinFreq)
	last.FreqHi = math.Min(last.FreqHi, p.MaxFreq)

	for i := range bars {
		resolveBins(&bars[i], bins)
	}
	return Layout{Bars: bars, Axis: axis, BarWidth: width}
}

func buildOctaveScaled(p Params, bins Bins) Layout {
	count := int(p.Mode) * 10
	width := p.Width / float64(count)
	axis := scale.NewAxis(p.Scale, p.MinFreq, p.MaxFreq, p.Width)

	bars := make([]Bar, count)
	for i := range bars {
		x := float64(i) * width
		bars[i] = Bar{
			Freq:   axis.Freq(x + width/2),
			FreqLo: axis.Freq(x),
			FreqHi: axis.Freq(x + width),
			PosX:   p.X0 + x,
		}
		resolveBins(&bars[i], bins)
	}
	return Layout{Bars: bars, Axis: axis, BarWidth: width}
}

func resolveBins(b *Bar, bins Bins) {
	b.BinLo, b.RatioLo = bins.Ratio(b.FreqLo)
	b.BinHi, b.RatioHi = bins.Ratio(b.FreqHi)
}

// markShared flags pairs of bars whose whole bin range is the same FFT bin.
func markShared(bars []Bar) {
	for i := 1; i < len(bars); i++ {
		cur, prev := &bars[i], &bars[i-1]
		if cur.BinLo == cur.BinHi && cur.BinLo == prev.BinHi {
			cur.Average = true
			prev.Average = true
		}
	}
}
