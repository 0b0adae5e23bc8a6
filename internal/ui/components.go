package ui

import (
	"fmt"
	"strings"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/energy"
	"github.com/olivier-w/barscope/internal/util"
)

func renderHeader(cfg analyzer.Config) string {
	s := cfg.Spectrum
	parts := []string{
		s.Mode.String(),
		s.Scale.String(),
		util.FormatRange(s.MinFreq, s.MaxFreq),
		cfg.Geometry.Layout.String(),
		cfg.Color.Theme(0),
		cfg.Color.Mode.String(),
	}
	if s.Weighting.String() != "none" {
		parts = append(parts, s.Weighting.String()+"-weighted")
	}
	if cfg.Geometry.Radial {
		parts = append(parts, "radial")
	}
	if cfg.Geometry.Mirror {
		parts = append(parts, "mirror")
	}
	if cfg.Bars.Leds {
		parts = append(parts, "leds")
	}
	if cfg.Peaks.Show && cfg.Peaks.Hold > 0 {
		parts = append(parts, "hold "+util.FormatMillis(cfg.Peaks.Hold))
	}
	return strings.Join(parts, " · ")
}

func renderBands(values map[string]float64) string {
	parts := make([]string, 0, len(values))
	for _, name := range energy.PresetNames() {
		parts = append(parts, fmt.Sprintf("%s %3d%%", name, int(values[name]*100)))
	}
	return strings.Join(parts, "  ")
}

func renderFPS(fps float64) string {
	return fmt.Sprintf("%3.0f fps", fps)
}
