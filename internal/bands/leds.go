package bands

import "math"

// Leds is the LED cell geometry for one channel's analyzer height.
type Leds struct {
	Count  int
	Height float64 // height of a single cell
	Gap    float64 // vertical gap between cells
}

// LedOptions overrides the mode-derived cell size. Zero values derive.
type LedOptions struct {
	Height float64
	Gap    float64
}

func defaultLedCount(m Mode) int {
	switch {
	case m == Discrete || m >= 24:
		return 128
	case m >= 12:
		return 64
	case m >= 6:
		return 48
	case m >= 3:
		return 32
	default:
		return 24
	}
}

// NewLeds computes LED geometry for an analyzer of the given height.
func NewLeds(m Mode, height float64, opt LedOptions) Leds {
	if height <= 0 {
		return Leds{}
	}

	var count int
	gap := opt.Gap
	if opt.Height > 0 {
		gap = math.Max(0, gap)
		count = int((height + gap) / (opt.Height + gap))
	} else {
		if gap <= 0 {
			gap = math.Max(1, math.Min(6, math.Floor(height/90)))
		}
		count = min(defaultLedCount(m), int(height/(gap*2)))
	}
	if count < 1 {
		return Leds{Count: 1, Height: height}
	}
	return Leds{
		Count:  count,
		Height: (height+gap)/float64(count) - gap,
		Gap:    gap,
	}
}

// Lit returns the number of whole cells lit by a normalized value.
func (l Leds) Lit(value float64) int {
	if l.Count == 0 || value <= 0 {
		return 0
	}
	return min(l.Count, int(value*float64(l.Count)))
}

// Quantize converts a normalized value into a pixel height made of whole
// cells.
func (l Leds) Quantize(value float64) float64 {
	lit := l.Lit(value)
	if lit == 0 {
		return 0
	}
	return float64(lit)*(l.Height+l.Gap) - l.Gap
}
