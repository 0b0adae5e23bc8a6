package bands

import "math"

// SpacePx converts the configured bar spacing into pixels. Values in (0,1)
// are a fraction of the bar width, anything else is a literal pixel count.
// The result always leaves at least one pixel of bar.
func SpacePx(barSpace, barWidth float64) float64 {
	space := barSpace
	if barSpace > 0 && barSpace < 1 {
		space = barSpace * barWidth
	}
	return math.Max(0, math.Min(barWidth-1, space))
}

// Spans returns the drawn extent of every bar. With no spacing, positions
// and widths are snapped to whole pixels and a carry closes the 1px gaps
// truncation would leave between neighbors.
func Spans(bars []Bar, barWidth, barSpace float64, leds bool) []Span {
	spans := make([]Span, len(bars))
	if barSpace == 0 && !leds {
		w := math.Trunc(barWidth)
		for i, b := range bars {
			s := Span{X: math.Trunc(b.PosX), W: w}
			if i > 0 {
				prev := spans[i-1]
				if s.X > prev.X+prev.W {
					s.X--
					s.W++
				}
			}
			spans[i] = s
		}
		return spans
	}

	space := SpacePx(barSpace, barWidth)
	for i, b := range bars {
		spans[i] = Span{X: b.PosX + space/2, W: math.Max(1, barWidth-space)}
	}
	return spans
}
