package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Muted stops keep the hue of the original stop at these fixed values.
const (
	mutedSaturation = 0.3
	mutedLightness  = 0.25
	mutedAlpha      = 0.2
)

// ParseColor accepts "#rgb", "#rrggbb" and CSS style "hsl(h, s%, l%)".
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")") {
		return parseHSL(s[4 : len(s)-1])
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

func parseHSL(args string) (colorful.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("parse color hsl(%s): want 3 components", args)
	}
	var v [3]float64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse color hsl(%s): %w", args, err)
		}
		if pct || i > 0 {
			f /= 100
		}
		v[i] = f
	}
	return colorful.Hsl(v[0], clamp01(v[1]), clamp01(v[2])).Clamped(), nil
}

// muted returns the unlit LED variant of c.
func muted(c colorful.Color) colorful.Color {
	h, _, _ := c.Hsl()
	return colorful.Hsl(h, mutedSaturation, mutedLightness)
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
