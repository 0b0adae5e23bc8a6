package analyzer

import (
	"time"

	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/sampler"
	"github.com/olivier-w/barscope/internal/scale"
	"github.com/olivier-w/barscope/internal/theme"
)

// Spectrum selects which part of the spectrum is shown and how it is split.
type Spectrum struct {
	Scale      scale.Kind
	Mode       bands.Mode
	ANSI       bool
	MinFreq    float64
	MaxFreq    float64
	FFTSize    int
	SampleRate float64
	Weighting  sampler.Filter
	Average    bool // smooth bars forced to share a bin
}

// Levels maps magnitudes onto bar heights.
type Levels struct {
	MinDB  float64
	MaxDB  float64
	Linear bool
	Boost  float64
}

// Bars controls bar spacing and LED rendering.
type Bars struct {
	Space     float64
	Leds      bool
	LedHeight float64
	LedGap    float64
	AlphaBars bool
	FillAlpha float64
	Outline   bool
	Round     bool
}

// Peaks controls peak markers and bar smoothing.
type Peaks struct {
	Show     bool
	Hold     time.Duration
	Mode     peaks.DecayMode
	FadeTime time.Duration
	Gravity  float64

	Spring          bool
	SpringFrequency float64
	SpringDamping   float64
}

// Geometry controls the channel arrangement and radial projection.
type Geometry struct {
	Layout       geometry.Layout
	Mirror       bool
	Radial       bool
	RadialInvert bool
	Radius       float64
	SpinSpeed    float64
	ReflexRatio  float64
	ChannelGap   float64
}

// Color controls theme selection.
type Color struct {
	Mode theme.Mode
	// Themes holds the theme of each channel. An empty second entry reuses
	// the first.
	Themes    [2]string
	Modifiers [2]theme.Modifiers
	// Split gives each dual-vertical channel the full gradient instead of
	// spreading one gradient over both.
	Split bool
	// Spread runs radial gradients from the center instead of the baseline.
	Spread bool
}

// Config is the complete engine configuration.
type Config struct {
	Spectrum Spectrum
	Levels   Levels
	Bars     Bars
	Peaks    Peaks
	Geometry Geometry
	Color    Color
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Spectrum: Spectrum{
			Scale:      scale.Log,
			Mode:       bands.Mode(6),
			MinFreq:    20,
			MaxFreq:    22000,
			FFTSize:    8192,
			SampleRate: 44100,
		},
		Levels: Levels{MinDB: -85, MaxDB: -25, Boost: 1},
		Bars:   Bars{Space: 0.1, FillAlpha: 1},
		Peaks: Peaks{
			Show:            true,
			Hold:            500 * time.Millisecond,
			Mode:            peaks.Decay,
			FadeTime:        750 * time.Millisecond,
			Gravity:         3.8,
			SpringFrequency: 6,
			SpringDamping:   0.5,
		},
		Geometry: Geometry{Radius: 0.3, ChannelGap: 1},
		Color:    Color{Mode: theme.Gradient, Themes: [2]string{"classic", ""}},
	}
}

// Theme returns the theme name of a channel.
func (c Color) Theme(ch int) string {
	if ch == 1 && c.Themes[1] != "" {
		return c.Themes[1]
	}
	return c.Themes[0]
}

func (c Config) peakOptions() peaks.Options {
	return peaks.Options{
		HoldTime:  c.Peaks.Hold,
		Mode:      c.Peaks.Mode,
		FadeTime:  c.Peaks.FadeTime,
		Gravity:   c.Peaks.Gravity,
		AlphaBars: c.Bars.AlphaBars,
		FillAlpha: c.outlineAlpha(),
	}
}

func (c Config) outlineAlpha() float64 {
	if c.Bars.Outline {
		return c.Bars.FillAlpha
	}
	return 0
}

func (c Config) normalizer() sampler.Normalizer {
	return sampler.Normalizer{
		MinDB:  c.Levels.MinDB,
		MaxDB:  c.Levels.MaxDB,
		Linear: c.Levels.Linear,
		Boost:  c.Levels.Boost,
	}
}

// Rebuild lists the derived state a configuration change invalidates.
type Rebuild struct {
	Layout   bool // bar list, spans and peak state
	Leds     bool // LED cell geometry
	Gradient bool // per-channel color mappers
	Sampler  bool // weighting table and normalization
}

// Any reports whether anything needs rebuilding.
func (r Rebuild) Any() bool {
	return r.Layout || r.Leds || r.Gradient || r.Sampler
}

// Diff compares two configurations and reports what must be rebuilt.
func Diff(old, next Config) Rebuild {
	var r Rebuild

	os, ns := old.Spectrum, next.Spectrum
	og, ng := old.Geometry, next.Geometry
	if os.Scale != ns.Scale || os.Mode != ns.Mode || os.ANSI != ns.ANSI ||
		os.MinFreq != ns.MinFreq || os.MaxFreq != ns.MaxFreq ||
		os.FFTSize != ns.FFTSize || os.SampleRate != ns.SampleRate || os.Average != ns.Average ||
		og.Layout != ng.Layout || og.Mirror != ng.Mirror || og.Radial != ng.Radial ||
		old.Bars.Space != next.Bars.Space || old.Bars.Leds != next.Bars.Leds {
		r.Layout = true
	}
	if r.Layout || old.Bars.LedHeight != next.Bars.LedHeight || old.Bars.LedGap != next.Bars.LedGap ||
		og.RadialInvert != ng.RadialInvert || og.Radius != ng.Radius ||
		og.ReflexRatio != ng.ReflexRatio || og.ChannelGap != ng.ChannelGap {
		r.Leds = true
	}
	if old.Color != next.Color || og.Layout != ng.Layout || og.Radial != ng.Radial {
		r.Gradient = true
	}
	if os.Weighting != ns.Weighting || os.FFTSize != ns.FFTSize || os.SampleRate != ns.SampleRate ||
		old.Levels != next.Levels {
		r.Sampler = true
	}
	return r
}
