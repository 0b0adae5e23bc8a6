package geometry

import (
	"math"

	"github.com/olivier-w/barscope/internal/bands"
)

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle. H is negative for bars growing up.
type Rect struct {
	X, Y, W, H float64
}

// Arc is a circular arc around a center, angles in radians.
type Arc struct {
	Center     Point
	Radius     float64
	Start, End float64
}

// Poly is a closed radial bar outline. When Cap is set the outer edge is
// the arc instead of the straight segment between Points[1] and Points[2].
type Poly struct {
	Points []Point
	Cap    *Arc
}

// Shape is the drawable geometry of one bar on one channel.
type Shape struct {
	Rects  []Rect
	Reflex []Rect
	Polys  []Poly
}

// Project returns the geometry of a bar of the given pixel height.
func Project(span bands.Span, ch int, height float64, f Frame) Shape {
	return project(span, ch, 0, height, f)
}

// PeakLine returns the geometry of a peak marker of the given thickness
// sitting at peak pixels above the baseline.
func PeakLine(span bands.Span, ch int, peak, thickness float64, f Frame) Shape {
	if peak <= 0 {
		return Shape{}
	}
	y0 := math.Max(0, peak-thickness)
	return project(span, ch, y0, peak-y0, f)
}

func project(span bands.Span, ch int, y0, h float64, f Frame) Shape {
	if f.Radial {
		return projectRadial(span, ch, y0, h, f)
	}
	return projectLinear(span, ch, y0, h, f)
}

func projectLinear(span bands.Span, ch int, y0, h float64, f Frame) Shape {
	base := f.Baseline(ch)
	r := Rect{X: span.X, Y: base - y0, W: span.W, H: -h}

	var s Shape
	switch {
	case f.Layout == DualHorizontal && ch == 1:
		r.X = f.Width - span.X - span.W
		s.Rects = []Rect{r}
	case f.Mirror && f.Layout != DualHorizontal:
		m := r
		m.X = f.Width - span.X - span.W
		s.Rects = []Rect{r, m}
	default:
		s.Rects = []Rect{r}
	}

	if f.ReflexRatio > 0 && f.Layout != DualVertical {
		k := f.ReflexRatio / (1 - f.ReflexRatio)
		for _, r := range s.Rects {
			s.Reflex = append(s.Reflex, Rect{X: r.X, Y: base + y0*k, W: r.W, H: h * k})
		}
	}
	return s
}

// angle maps x onto the circle for one winding direction.
func (f Frame) angle(x float64, ch int, winding float64) float64 {
	return winding*2*math.Pi*(x+f.AngularOffset(ch))/f.Width + f.SpinAngle
}

func (f Frame) polar(angle, radius float64) Point {
	c := f.Center()
	return Point{X: c.X + radius*math.Cos(angle), Y: c.Y + radius*math.Sin(angle)}
}

func projectRadial(span bands.Span, ch int, y0, h float64, f Frame) Shape {
	dir := f.Direction(ch)
	inner := f.InnerRadius() + y0*dir
	outer := inner + h*dir

	windings := []float64{1}
	if f.Mirror && f.Layout != DualHorizontal {
		windings = append(windings, -1)
	}

	var s Shape
	for _, w := range windings {
		a0 := f.angle(span.X, ch, w)
		a1 := f.angle(span.X+span.W, ch, w)
		p := Poly{Points: []Point{
			f.polar(a0, inner),
			f.polar(a0, outer),
			f.polar(a1, outer),
			f.polar(a1, inner),
		}}
		if f.RoundBars {
			p.Cap = &Arc{Center: f.Center(), Radius: outer, Start: a0, End: a1}
		}
		s.Polys = append(s.Polys, p)
	}
	return s
}
