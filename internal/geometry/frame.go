package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Layout is the channel arrangement on screen.
type Layout int

const (
	Single Layout = iota
	DualVertical
	DualHorizontal
	DualCombined
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool { return l >= Single && l <= DualCombined }

func (l Layout) String() string {
	switch l {
	case DualVertical:
		return "dual-vertical"
	case DualHorizontal:
		return "dual-horizontal"
	case DualCombined:
		return "dual-combined"
	default:
		return "single"
	}
}

// Channels returns how many channels the layout draws.
func (l Layout) Channels() int {
	if l == Single {
		return 1
	}
	return 2
}

// ParseLayout parses a channel layout name.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return Single, nil
	case "dual-vertical":
		return DualVertical, nil
	case "dual-horizontal":
		return DualHorizontal, nil
	case "dual-combined":
		return DualCombined, nil
	}
	return Single, fmt.Errorf("unknown channel layout %q", s)
}

// Frame is the canvas state a projection is computed against.
type Frame struct {
	Width, Height float64
	Layout        Layout
	Mirror        bool
	Radial        bool
	RadialInvert  bool
	Radius        float64 // inner radius as a fraction of half the smaller side
	ChannelGap    float64 // pixels between dual-vertical channels
	ReflexRatio   float64 // share of the height used by the reflection
	RoundBars     bool
	SpinAngle     float64 // radians
}

// AnalyzerWidth is the width the bar layout is computed for. Mirrored and
// side-by-side layouts lay bars out over half the canvas.
func (f Frame) AnalyzerWidth() float64 {
	if f.Layout == DualHorizontal || f.Mirror {
		return f.Width / 2
	}
	return f.Width
}

// Center returns the radial center point.
func (f Frame) Center() Point {
	return Point{X: f.Width / 2, Y: f.Height / 2}
}

// InnerRadius is the radius of the radial baseline circle.
func (f Frame) InnerRadius() float64 {
	return f.Radius * math.Min(f.Width, f.Height) / 2
}

// Direction is +1 when a channel's radial bars grow outward, -1 inward.
func (f Frame) Direction(ch int) float64 {
	d := 1.0
	if f.RadialInvert {
		d = -1
	}
	if f.Layout == DualVertical && ch == 1 {
		d = -d
	}
	return d
}

// AngularOffset shifts a channel around the circle, in pixels of x.
func (f Frame) AngularOffset(ch int) float64 {
	if f.Layout == DualHorizontal && ch == 1 {
		return f.Width / 2
	}
	return 0
}

// ChannelHeight is the pixel height a full-scale bar reaches.
func (f Frame) ChannelHeight(ch int) float64 {
	if f.Radial {
		inner := f.InnerRadius()
		if f.Direction(ch) < 0 {
			return inner
		}
		return math.Min(f.Width, f.Height)/2 - inner
	}
	h := f.Height * (1 - f.ReflexRatio)
	if f.Layout == DualVertical {
		return math.Max(0, (h-f.ChannelGap)/2)
	}
	return h
}

// Baseline is the y coordinate linear bars of a channel grow up from.
func (f Frame) Baseline(ch int) float64 {
	h := f.ChannelHeight(ch)
	if f.Layout == DualVertical && ch == 1 {
		return 2*h + f.ChannelGap
	}
	return h
}
