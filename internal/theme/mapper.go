package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how bars pick their color.
type Mode int

const (
	// Gradient looks colors up along the theme gradient.
	Gradient Mode = iota
	// BarIndex cycles the color stops by bar ordinal.
	BarIndex
	// BarLevel picks a stop by the bar's current value.
	BarLevel
)

// Valid reports whether m is a known color mode.
func (m Mode) Valid() bool { return m >= Gradient && m <= BarLevel }

func (m Mode) String() string {
	switch m {
	case BarIndex:
		return "bar-index"
	case BarLevel:
		return "bar-level"
	default:
		return "gradient"
	}
}

// ParseMode parses a color mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gradient":
		return Gradient, nil
	case "bar-index", "index":
		return BarIndex, nil
	case "bar-level", "level":
		return BarLevel, nil
	}
	return Gradient, fmt.Errorf("unknown color mode %q", s)
}

// Fill is the resolved color of a bar. When Vertical is set the bar is
// painted with the gradient running up its height and Color is the color
// at the bar tip.
type Fill struct {
	Color    colorful.Color
	Vertical bool
}

// Mapper resolves bar and peak colors for one channel.
type Mapper struct {
	Mode  Mode
	Theme *Theme
	Mods  Modifiers

	grad   []Stop  // stops sorted by position, modifiers applied
	lo, hi float64 // gradient range covered by this channel
}

// NewMapper builds the gradient for t with the channel's modifiers.
func NewMapper(t *Theme, mode Mode, mods Modifiers) *Mapper {
	m := &Mapper{Mode: mode, Theme: t, Mods: mods, lo: 0, hi: 1}
	m.grad = make([]Stop, len(t.Stops))
	copy(m.grad, t.Stops)
	if mods.Reverse {
		n := len(t.Stops)
		for i := range m.grad {
			m.grad[i].Color = t.Stops[n-1-i].Color
		}
	}
	sort.SliceStable(m.grad, func(i, j int) bool { return m.grad[i].Pos < m.grad[j].Pos })
	return m
}

// Range restricts the channel to the [lo,hi] part of the gradient, used
// when one gradient spans two stacked channels.
func (m *Mapper) Range(lo, hi float64) {
	m.lo, m.hi = lo, hi
}

// At returns the gradient color at pos in [0,1] of this channel's range.
func (m *Mapper) At(pos float64) colorful.Color {
	pos = m.lo + clamp01(pos)*(m.hi-m.lo)
	g := m.grad
	if pos <= g[0].Pos {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if pos <= g[i].Pos {
			span := g[i].Pos - g[i-1].Pos
			if span <= 0 {
				return g[i].Color
			}
			return g[i-1].Color.BlendRgb(g[i].Color, (pos-g[i-1].Pos)/span).Clamped()
		}
	}
	return g[len(g)-1].Color
}

// AtHeight returns the vertical gradient color at a fraction of the bar
// height; gradient position 0 is the top of the analyzer.
func (m *Mapper) AtHeight(frac float64) colorful.Color {
	return m.At(1 - frac)
}

// LevelIndex returns the index of the last stop whose level is at or above
// value. Stops are sorted by descending level, so this quantizes value onto
// the stop ramp.
func (m *Mapper) LevelIndex(value float64) int {
	idx := 0
	for i, s := range m.Theme.Stops {
		if value <= s.Level {
			idx = i
		}
	}
	return idx
}

// Bar resolves the fill for bar index with the given value. x is the bar's
// normalized horizontal position, used by horizontal gradients.
func (m *Mapper) Bar(index int, value, x float64) Fill {
	stops := m.Theme.Stops
	switch m.Mode {
	case BarIndex:
		return Fill{Color: stops[index%len(stops)].Color}
	case BarLevel:
		return Fill{Color: stops[m.LevelIndex(value)].Color}
	}
	if m.Mods.Horizontal {
		return Fill{Color: m.At(x)}
	}
	return Fill{Color: m.AtHeight(value), Vertical: true}
}

// Peak resolves the color of a peak marker.
func (m *Mapper) Peak(index int, peak, x float64) colorful.Color {
	if m.Theme.Peak != nil {
		return *m.Theme.Peak
	}
	return m.Bar(index, peak, x).Color
}

// Unlit returns the muted color of an unlit LED cell at frac of the
// analyzer height, along with its alpha.
func (m *Mapper) Unlit(index int, frac, x float64) (colorful.Color, float64) {
	cells := m.Theme.Muted
	switch m.Mode {
	case BarIndex:
		return cells[index%len(cells)].Color, mutedAlpha
	case BarLevel:
		return cells[m.LevelIndex(frac)].Color, mutedAlpha
	}
	c := m.At(1 - frac)
	if m.Mods.Horizontal {
		c = m.At(x)
	}
	return muted(c), mutedAlpha
}
