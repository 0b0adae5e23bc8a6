package visualizer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/geometry"
)

// Linear frames are drawn with eighth blocks: one pixel per column
// horizontally, eight pixels per row vertically.
const subRows = 8

const reflexAlpha = 0.25

var (
	barChars = []rune(" ▁▂▃▄▅▆▇█")
	topChars = []rune(" ▔▔▔▀▀▀▀█")
)

type paint func(p geometry.Point) colorful.Color

func solid(c colorful.Color) paint {
	return func(geometry.Point) colorful.Color { return c }
}

// columns returns the terminal columns a span covers. A column is drawn
// when at least half of it is inside; spans narrower than a column keep the
// one under their center.
func columns(x0, x1 float64) (int, int) {
	if x1-x0 < 1 {
		c := int(math.Floor((x0 + x1) / 2))
		return c, c
	}
	first := int(math.Floor(x0))
	if x0-float64(first) > 0.5 {
		first++
	}
	last := int(math.Ceil(x1)) - 1
	if float64(last+1)-x1 > 0.5 {
		last--
	}
	return first, last
}

func drawRect(g *grid, r geometry.Rect, fill paint) {
	top, bottom := r.Y+math.Min(r.H, 0), r.Y+math.Max(r.H, 0)
	if bottom-top <= 0 || r.W <= 0 {
		return
	}
	c0, c1 := columns(r.X, r.X+r.W)
	r0 := int(math.Floor(top / subRows))
	r1 := int(math.Ceil(bottom/subRows)) - 1

	for row := r0; row <= r1; row++ {
		cellTop := float64(row * subRows)
		cellBottom := cellTop + subRows
		lo, hi := math.Max(top, cellTop), math.Min(bottom, cellBottom)
		n := int(math.Round(hi - lo))
		if n <= 0 {
			continue
		}
		var ch rune
		switch {
		case hi >= cellBottom-1e-9:
			ch = barChars[n]
		case lo <= cellTop+1e-9:
			ch = topChars[n]
		default:
			ch = '─'
		}
		for col := c0; col <= c1; col++ {
			g.set(col, row, ch, fill(geometry.Point{X: float64(col) + 0.5, Y: (lo + hi) / 2}))
		}
	}
}

func background(c analyzer.Channel) colorful.Color {
	if c.Mapper != nil {
		return c.Mapper.Theme.Background
	}
	return colorful.Color{}
}

// barPaint returns the fill of a bar at the given opacity.
func barPaint(c analyzer.Channel, b analyzer.BarFrame, alpha float64) paint {
	bg := background(c)
	if b.Fill.Vertical && c.Mapper != nil {
		return func(p geometry.Point) colorful.Color {
			return over(c.Mapper.AtHeight(c.GradientFrac(p)), bg, alpha)
		}
	}
	return solid(over(b.Fill.Color, bg, alpha))
}

func drawLinear(g *grid, f *analyzer.FrameResult) {
	width := f.Frame.AnalyzerWidth()
	for _, c := range f.Channels {
		bg := background(c)
		for i, b := range c.Bars {
			if c.Leds.Count > 0 && c.Mapper != nil && len(b.Shape.Rects) > 0 {
				first := b.Shape.Rects[0]
				x := (first.X + first.W/2) / width
				for _, r := range b.Shape.Rects {
					unlit := geometry.Rect{X: r.X, Y: r.Y, W: r.W, H: -c.Height}
					drawRect(g, unlit, func(p geometry.Point) colorful.Color {
						m, a := c.Mapper.Unlit(i, c.GradientFrac(p), x)
						return over(m, bg, a)
					})
				}
			}
			// Peaks go under the bar so a bar reaching its peak stays solid.
			peak := solid(over(b.PeakColor, bg, b.Peak.Alpha))
			for _, r := range b.PeakShape.Rects {
				drawRect(g, r, peak)
			}
			fill := barPaint(c, b, b.Alpha)
			for _, r := range b.Shape.Rects {
				drawRect(g, r, fill)
			}
			reflex := barPaint(c, b, b.Alpha*reflexAlpha)
			for _, r := range b.Shape.Reflex {
				drawRect(g, r, reflex)
			}
		}
	}
}
