package visualizer

import "strings"

var (
	meterLow  = colorRGB{R: 60, G: 224, B: 116}
	meterMid  = colorRGB{R: 240, G: 198, B: 72}
	meterHigh = colorRGB{R: 242, G: 96, B: 86}
	meterPeak = colorRGB{R: 255, G: 252, B: 210}
)

// renderMeter draws a horizontal level meter with a peak marker. level and
// peak are normalized.
func renderMeter(p colorProfile, level, peak float64, width int) string {
	if width < 10 {
		width = 10
	}
	filled := int(clamp01(level) * float64(width))
	peakPos := int(clamp01(peak) * float64(width))
	if peakPos >= width {
		peakPos = width - 1
	}

	bar := make([]rune, width)
	for i := range width {
		switch {
		case i < filled:
			bar[i] = '█'
		case i == peakPos && peakPos > 0:
			bar[i] = '│'
		default:
			bar[i] = '─'
		}
	}

	if p == colorNone {
		return string(bar)
	}

	var sb strings.Builder
	color := newANSIState(p)
	for i, ch := range bar {
		switch {
		case ch == '│':
			color.set(&sb, meterPeak)
		case i < width*6/10:
			color.set(&sb, meterLow)
		case i < width*8/10:
			color.set(&sb, meterMid)
		default:
			color.set(&sb, meterHigh)
		}
		sb.WriteRune(ch)
	}
	color.reset(&sb)
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
