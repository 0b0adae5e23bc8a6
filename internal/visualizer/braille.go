package visualizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/geometry"
)

// Radial frames are drawn on a braille dot grid: each cell is 2x4 dots,
// which keeps dots roughly square on a typical terminal font.
const (
	dotCols = 2
	dotRows = 4
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

type dotGrid struct {
	*grid
	bits []uint8
}

func newDotGrid(cols, rows int) *dotGrid {
	return &dotGrid{grid: newGrid(cols, rows), bits: make([]uint8, cols*rows)}
}

func (d *dotGrid) dot(x, y int, c colorful.Color) {
	col, row := x/dotCols, y/dotRows
	if x < 0 || y < 0 || col >= d.cols || row >= d.rows {
		return
	}
	i := row*d.cols + col
	d.bits[i] |= 1 << brailleBits[x%dotCols][y%dotRows]
	d.cells[i] = cell{ch: rune(0x2800 + int(d.bits[i])), color: toRGB(c)}
}

func cross(a, b, p geometry.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// insideQuad tests a convex outline of either winding.
func insideQuad(pts []geometry.Point, p geometry.Point) bool {
	var pos, neg bool
	for i := range pts {
		c := cross(pts[i], pts[(i+1)%len(pts)], p)
		pos = pos || c > 0
		neg = neg || c < 0
	}
	return !(pos && neg)
}

func dist(a, b geometry.Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// insideSector tests a bar with a rounded cap in polar coordinates.
func insideSector(poly geometry.Poly, p geometry.Point) bool {
	arc := poly.Cap
	r := dist(p, arc.Center)
	rIn := dist(poly.Points[0], arc.Center)
	if r < math.Min(rIn, arc.Radius) || r > math.Max(rIn, arc.Radius) {
		return false
	}
	start, end := arc.Start, arc.End
	if end < start {
		start, end = end, start
	}
	a := math.Atan2(p.Y-arc.Center.Y, p.X-arc.Center.X)
	d := math.Mod(a-start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d <= end-start
}

func bounds(poly geometry.Poly) (minX, minY, maxX, maxY float64) {
	pts := poly.Points
	if poly.Cap != nil {
		mid := (poly.Cap.Start + poly.Cap.End) / 2
		c := poly.Cap.Center
		pts = append(pts[:len(pts):len(pts)], geometry.Point{
			X: c.X + poly.Cap.Radius*math.Cos(mid),
			Y: c.Y + poly.Cap.Radius*math.Sin(mid),
		})
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

func (d *dotGrid) fill(poly geometry.Poly, fill paint) {
	if len(poly.Points) < 3 {
		return
	}
	minX, minY, maxX, maxY := bounds(poly)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			p := geometry.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			var in bool
			if poly.Cap != nil {
				in = insideSector(poly, p)
			} else {
				in = insideQuad(poly.Points, p)
			}
			if in {
				d.dot(x, y, fill(p))
			}
		}
	}
}

func drawRadial(d *dotGrid, f *analyzer.FrameResult) {
	for _, c := range f.Channels {
		bg := background(c)
		for _, b := range c.Bars {
			peak := solid(over(b.PeakColor, bg, b.Peak.Alpha))
			for _, p := range b.PeakShape.Polys {
				d.fill(p, peak)
			}
			fill := barPaint(c, b, b.Alpha)
			for _, p := range b.Shape.Polys {
				d.fill(p, fill)
			}
		}
	}
}
