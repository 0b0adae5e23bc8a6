package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/barscope/internal/analyzer"
	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/sampler"
	"github.com/olivier-w/barscope/internal/scale"
	"github.com/olivier-w/barscope/internal/theme"
)

type SpectrumConfig struct {
	Scale      string  `yaml:"frequency_scale"`
	BandMode   string  `yaml:"band_mode"`
	ANSI       bool    `yaml:"ansi_bands"`
	MinFreq    float64 `yaml:"min_freq"`
	MaxFreq    float64 `yaml:"max_freq"`
	FFTSize    int     `yaml:"fft_size"`
	SampleRate float64 `yaml:"sample_rate"`
	Weighting  string  `yaml:"weighting_filter"`
	Average    bool    `yaml:"average_shared_bins"`
}

type LevelsConfig struct {
	MinDB  float64 `yaml:"min_decibels"`
	MaxDB  float64 `yaml:"max_decibels"`
	Linear bool    `yaml:"linear_amplitude"`
	Boost  float64 `yaml:"linear_boost"`
}

type BarsConfig struct {
	Space     float64 `yaml:"bar_space"`
	Leds      bool    `yaml:"led_bars"`
	LedHeight float64 `yaml:"led_height"`
	LedGap    float64 `yaml:"led_gap"`
	AlphaBars bool    `yaml:"alpha_bars"`
	FillAlpha float64 `yaml:"fill_alpha"`
	Outline   bool    `yaml:"outline_bars"`
	Round     bool    `yaml:"round_bars"`
}

type PeaksConfig struct {
	Show            bool          `yaml:"show_peaks"`
	Hold            time.Duration `yaml:"peak_hold_time"`
	DecayMode       string        `yaml:"peak_decay_mode"`
	FadeTime        time.Duration `yaml:"peak_fade_time"`
	Gravity         float64       `yaml:"gravity"`
	Spring          bool          `yaml:"spring"`
	SpringFrequency float64       `yaml:"spring_frequency"`
	SpringDamping   float64       `yaml:"spring_damping"`
}

type GeometryConfig struct {
	Layout       string  `yaml:"channel_layout"`
	Mirror       bool    `yaml:"mirror"`
	Radial       bool    `yaml:"radial"`
	RadialInvert bool    `yaml:"radial_invert"`
	Radius       float64 `yaml:"radius"`
	SpinSpeed    float64 `yaml:"spin_speed"`
	ReflexRatio  float64 `yaml:"reflex_ratio"`
	ChannelGap   float64 `yaml:"channel_gap"`
}

type ColorConfig struct {
	Mode           string          `yaml:"color_mode"`
	Theme          string          `yaml:"theme"`
	ThemeRight     string          `yaml:"theme_right"`
	Modifiers      theme.Modifiers `yaml:"modifiers"`
	ModifiersRight theme.Modifiers `yaml:"modifiers_right"`
	Split          bool            `yaml:"split_gradient"`
	Spread         bool            `yaml:"spread_gradient"`
}

// SourceConfig drives the synthetic analysis source.
type SourceConfig struct {
	FPS       int       `yaml:"fps"`
	Smoothing float64   `yaml:"smoothing"`
	Tones     []float64 `yaml:"tones"`
	Noise     float64   `yaml:"noise"`
	Sweep     bool      `yaml:"sweep"`
	Stereo    bool      `yaml:"stereo"`
}

// Config is the on-disk configuration file.
type Config struct {
	Spectrum SpectrumConfig           `yaml:"spectrum"`
	Levels   LevelsConfig             `yaml:"levels"`
	Bars     BarsConfig               `yaml:"bars"`
	Peaks    PeaksConfig              `yaml:"peaks"`
	Geometry GeometryConfig           `yaml:"geometry"`
	Color    ColorConfig              `yaml:"color"`
	Source   SourceConfig             `yaml:"source"`
	Themes   map[string]theme.Options `yaml:"themes"`

	Path string `yaml:"-"`
}

// DefaultConfig returns the file equivalent of analyzer.DefaultConfig.
func DefaultConfig() *Config {
	e := analyzer.DefaultConfig()
	return &Config{
		Spectrum: SpectrumConfig{
			Scale:      e.Spectrum.Scale.String(),
			BandMode:   e.Spectrum.Mode.String(),
			ANSI:       e.Spectrum.ANSI,
			MinFreq:    e.Spectrum.MinFreq,
			MaxFreq:    e.Spectrum.MaxFreq,
			FFTSize:    e.Spectrum.FFTSize,
			SampleRate: e.Spectrum.SampleRate,
			Weighting:  e.Spectrum.Weighting.String(),
		},
		Levels: LevelsConfig{
			MinDB: e.Levels.MinDB,
			MaxDB: e.Levels.MaxDB,
			Boost: e.Levels.Boost,
		},
		Bars: BarsConfig{
			Space:     e.Bars.Space,
			FillAlpha: e.Bars.FillAlpha,
		},
		Peaks: PeaksConfig{
			Show:            e.Peaks.Show,
			Hold:            e.Peaks.Hold,
			DecayMode:       e.Peaks.Mode.String(),
			FadeTime:        e.Peaks.FadeTime,
			Gravity:         e.Peaks.Gravity,
			SpringFrequency: e.Peaks.SpringFrequency,
			SpringDamping:   e.Peaks.SpringDamping,
		},
		Geometry: GeometryConfig{
			Layout:     e.Geometry.Layout.String(),
			Radius:     e.Geometry.Radius,
			ChannelGap: e.Geometry.ChannelGap,
		},
		Color: ColorConfig{
			Mode:  e.Color.Mode.String(),
			Theme: e.Color.Themes[0],
		},
		Source: SourceConfig{
			FPS:       60,
			Smoothing: 0.5,
			Tones:     []float64{55, 440, 3520},
			Noise:     0.02,
			Sweep:     true,
		},
	}
}

// LoadFromFile merges the YAML file at path over c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// DefaultPaths returns the locations TryLoadDefault looks at, in order.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "barscope", "config.yaml"),
			filepath.Join(dir, "barscope", "config.yml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".barscope.yaml"))
	}
	return paths
}

// TryLoadDefault loads the first config file found in DefaultPaths. A
// missing file is not an error.
func (c *Config) TryLoadDefault() error {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return c.LoadFromFile(p)
		}
	}
	return nil
}

// Engine converts the file into an engine configuration. Unparsable names
// are reported together; numeric ranges are left to the engine.
func (c *Config) Engine() (analyzer.Config, error) {
	cfg := analyzer.DefaultConfig()
	var errs []error
	parse := func(field string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	s := c.Spectrum
	var err error
	cfg.Spectrum.Scale, err = scale.ParseKind(s.Scale)
	parse("spectrum.frequency_scale", err)
	cfg.Spectrum.Mode, err = bands.ParseMode(s.BandMode)
	parse("spectrum.band_mode", err)
	cfg.Spectrum.Weighting, err = sampler.ParseFilter(s.Weighting)
	parse("spectrum.weighting_filter", err)
	cfg.Spectrum.ANSI = s.ANSI
	cfg.Spectrum.MinFreq = s.MinFreq
	cfg.Spectrum.MaxFreq = s.MaxFreq
	cfg.Spectrum.FFTSize = s.FFTSize
	cfg.Spectrum.SampleRate = s.SampleRate
	cfg.Spectrum.Average = s.Average

	cfg.Levels = analyzer.Levels{
		MinDB:  c.Levels.MinDB,
		MaxDB:  c.Levels.MaxDB,
		Linear: c.Levels.Linear,
		Boost:  c.Levels.Boost,
	}
	cfg.Bars = analyzer.Bars(c.Bars)

	p := c.Peaks
	cfg.Peaks.Mode, err = peaks.ParseDecayMode(p.DecayMode)
	parse("peaks.peak_decay_mode", err)
	cfg.Peaks.Show = p.Show
	cfg.Peaks.Hold = p.Hold
	cfg.Peaks.FadeTime = p.FadeTime
	cfg.Peaks.Gravity = p.Gravity
	cfg.Peaks.Spring = p.Spring
	cfg.Peaks.SpringFrequency = p.SpringFrequency
	cfg.Peaks.SpringDamping = p.SpringDamping

	g := c.Geometry
	cfg.Geometry.Layout, err = geometry.ParseLayout(g.Layout)
	parse("geometry.channel_layout", err)
	cfg.Geometry.Mirror = g.Mirror
	cfg.Geometry.Radial = g.Radial
	cfg.Geometry.RadialInvert = g.RadialInvert
	cfg.Geometry.Radius = g.Radius
	cfg.Geometry.SpinSpeed = g.SpinSpeed
	cfg.Geometry.ReflexRatio = g.ReflexRatio
	cfg.Geometry.ChannelGap = g.ChannelGap

	cl := c.Color
	cfg.Color.Mode, err = theme.ParseMode(cl.Mode)
	parse("color.color_mode", err)
	cfg.Color.Themes = [2]string{cl.Theme, cl.ThemeRight}
	cfg.Color.Modifiers = [2]theme.Modifiers{cl.Modifiers, cl.ModifiersRight}
	cfg.Color.Split = cl.Split
	cfg.Color.Spread = cl.Spread

	return cfg, errors.Join(errs...)
}

// RegisterThemes adds the user themes of the file to reg in name order. A
// bad theme is reported and skipped; the others still register.
func (c *Config) RegisterThemes(reg *theme.Registry) error {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := reg.Register(name, c.Themes[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
