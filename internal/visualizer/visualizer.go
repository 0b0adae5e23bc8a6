package visualizer

import "github.com/olivier-w/barscope/internal/analyzer"

// Renderer rasterizes analyzer frames into colored terminal text.
type Renderer struct {
	profile colorProfile
}

// NewRenderer returns a renderer for the terminal's color support.
func NewRenderer() *Renderer {
	return &Renderer{profile: currentColorProfile()}
}

// CanvasSize returns the engine canvas, in pixels, that maps onto cols x
// rows terminal cells.
func CanvasSize(radial bool, cols, rows int) (float64, float64) {
	if radial {
		return float64(cols * dotCols), float64(rows * dotRows)
	}
	return float64(cols), float64(rows * subRows)
}

// Render draws f onto cols x rows cells.
func (r *Renderer) Render(f *analyzer.FrameResult, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if f.Frame.Radial {
		d := newDotGrid(cols, rows)
		drawRadial(d, f)
		return d.render(r.profile)
	}
	g := newGrid(cols, rows)
	drawLinear(g, f)
	return g.render(r.profile)
}

// Meter draws a level meter with a peak marker.
func (r *Renderer) Meter(level, peak float64, width int) string {
	return renderMeter(r.profile, level, peak, width)
}
