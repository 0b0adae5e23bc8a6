package analyzer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/energy"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/sampler"
	"github.com/olivier-w/barscope/internal/theme"
)

// derived is recomputed from the configuration and canvas on every rebuild.
type derived struct {
	frame    geometry.Frame
	channels int
	layout   bands.Layout
	spans    []bands.Span
	leds     []bands.Leds
	mappers  []*theme.Mapper
}

// Engine turns magnitude snapshots into drawable bars. It is driven from a
// single frame loop and is not safe for concurrent use.
type Engine struct {
	cfg    Config
	themes *theme.Registry
	log    *log.Logger

	width, height float64
	d             derived

	sampler *sampler.Sampler
	tracker *peaks.Tracker
	springs []*peaks.Spring
	clock   *peaks.Clock
	spinner geometry.Spinner
	energy  *energy.Aggregator

	values [][]float64
	result FrameResult
}

// New returns an engine for cfg. Invalid fields of cfg fall back to the
// defaults and are reported as warnings. A nil registry gets the built-in
// themes; a nil logger discards output.
func New(cfg Config, themes *theme.Registry, logger *log.Logger) (*Engine, []Warning) {
	if themes == nil {
		themes = theme.NewRegistry()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		themes: themes,
		log:    logger.WithPrefix("analyzer"),
		clock:  peaks.NewClock(),
	}
	accepted, warnings := sanitize(DefaultConfig(), cfg, themes)
	e.logWarnings(warnings)
	e.cfg = accepted
	e.tracker = peaks.NewTracker(accepted.peakOptions())
	e.rebuild(Rebuild{Layout: true, Leds: true, Gradient: true, Sampler: true})
	return e, warnings
}

func (e *Engine) logWarnings(ws []Warning) {
	for _, w := range ws {
		e.log.Warn("rejected config value", "field", w.Field, "value", w.Value, "err", w.Err)
	}
}

// Config returns the configuration in effect.
func (e *Engine) Config() Config { return e.cfg }

// Themes returns the theme registry.
func (e *Engine) Themes() *theme.Registry { return e.themes }

// Layout returns the current bar list.
func (e *Engine) Layout() bands.Layout { return e.d.layout }

// Geometry returns the current projection frame.
func (e *Engine) Geometry() geometry.Frame { return e.d.frame }

// Apply validates cfg against the configuration in effect and rebuilds
// whatever the accepted changes invalidate. Rejected fields keep their
// previous value and are returned as warnings.
func (e *Engine) Apply(cfg Config) []Warning {
	accepted, warnings := sanitize(e.cfg, cfg, e.themes)
	e.logWarnings(warnings)

	r := Diff(e.cfg, accepted)
	e.cfg = accepted
	e.tracker.Options = accepted.peakOptions()
	if e.energy != nil {
		e.energy.Peak = accepted.peakOptions()
	}
	if !accepted.Peaks.Spring {
		e.springs = nil
	}
	if r.Any() {
		e.log.Debug("rebuild", "layout", r.Layout, "leds", r.Leds, "gradient", r.Gradient, "sampler", r.Sampler)
		warnings = append(warnings, e.rebuild(r)...)
	}
	return warnings
}

// SetCanvas resizes the drawing area. It is the only trigger for layout
// invalidation from outside the configuration.
func (e *Engine) SetCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas %gx%g", ErrInvalidValue, width, height)
	}
	if width == e.width && height == e.height {
		return nil
	}
	e.width, e.height = width, height
	if ws := e.rebuild(Rebuild{Layout: true, Leds: true, Gradient: true}); len(ws) > 0 {
		return ws[0]
	}
	return nil
}

// Resume resets frame timing after the frame loop was suspended, so decay
// and spin do not jump by the time spent away.
func (e *Engine) Resume() {
	e.clock.Resume()
}

// SetTheme selects the theme of one channel. On error the selection is left
// unchanged.
func (e *Engine) SetTheme(ch int, name string) error {
	if ch < 0 || ch > 1 {
		return fmt.Errorf("%w: channel %d", ErrInvalidValue, ch)
	}
	if !e.themes.Has(name) {
		return fmt.Errorf("%w: %q", theme.ErrNotFound, name)
	}
	cfg := e.cfg
	cfg.Color.Themes[ch] = name
	if ws := e.Apply(cfg); len(ws) > 0 {
		return ws[0]
	}
	return nil
}

// RegisterTheme adds or replaces a theme. Channels using a replaced theme
// pick up the new definition.
func (e *Engine) RegisterTheme(name string, opts theme.Options) error {
	if err := e.themes.Register(name, opts); err != nil {
		return err
	}
	if e.themeInUse(name) {
		e.rebuild(Rebuild{Gradient: true})
	}
	return nil
}

// UnregisterTheme removes a theme that no channel uses.
func (e *Engine) UnregisterTheme(name string) error {
	name = strings.TrimSpace(name)
	if e.themeInUse(name) {
		return fmt.Errorf("%w: %q", theme.ErrInUse, name)
	}
	return e.themes.Unregister(name)
}

// themeInUse checks both channel selections, including the idle second
// channel of a single layout.
func (e *Engine) themeInUse(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for ch := range 2 {
		if strings.TrimSpace(e.cfg.Color.Theme(ch)) == name {
			return true
		}
	}
	return false
}

func (e *Engine) frame() geometry.Frame {
	g := e.cfg.Geometry
	return geometry.Frame{
		Width:        e.width,
		Height:       e.height,
		Layout:       g.Layout,
		Mirror:       g.Mirror,
		Radial:       g.Radial,
		RadialInvert: g.RadialInvert,
		Radius:       g.Radius,
		ChannelGap:   g.ChannelGap,
		ReflexRatio:  g.ReflexRatio,
		RoundBars:    e.cfg.Bars.Round,
		SpinAngle:    e.spinner.Angle,
	}
}

// rebuild recomputes the derived state r marks stale. It completes before
// the next frame samples data.
func (e *Engine) rebuild(r Rebuild) []Warning {
	var warnings []Warning
	cfg := e.cfg
	e.d.frame = e.frame()
	e.d.channels = cfg.Geometry.Layout.Channels()
	e.spinner.Speed = cfg.Geometry.SpinSpeed

	if r.Sampler || e.sampler == nil {
		s := cfg.Spectrum
		e.sampler = sampler.New(cfg.normalizer(), s.Weighting, s.FFTSize, s.SampleRate)
		bins := bands.Bins{FFTSize: s.FFTSize, SampleRate: s.SampleRate}
		if e.energy == nil {
			e.energy = energy.New(bins, e.sampler, cfg.peakOptions())
		}
		e.energy.Bins = bins
		e.energy.Sampler = e.sampler
	}

	if r.Layout {
		if err := e.buildLayout(); err != nil {
			e.log.Error("layout rebuild failed", "err", err)
			warnings = append(warnings, Warning{Field: "spectrum", Value: cfg.Spectrum, Err: err})
		}
	}
	if r.Leds {
		e.d.leds = make([]bands.Leds, e.d.channels)
		if cfg.Bars.Leds && e.width > 0 {
			for ch := range e.d.leds {
				e.d.leds[ch] = bands.NewLeds(cfg.Spectrum.Mode, e.d.frame.ChannelHeight(ch), bands.LedOptions{
					Height: cfg.Bars.LedHeight,
					Gap:    cfg.Bars.LedGap,
				})
			}
		}
	}
	if r.Gradient {
		e.buildMappers()
	}
	return warnings
}

func (e *Engine) buildLayout() error {
	s := e.cfg.Spectrum
	e.d.layout = bands.Layout{}
	e.d.spans = nil
	e.tracker.Reset(0, e.d.channels)
	e.energy.Reset()
	e.springs = nil
	if e.width <= 0 {
		return nil
	}

	l, err := bands.Build(bands.Params{
		Scale:      s.Scale,
		Mode:       s.Mode,
		ANSI:       s.ANSI,
		MinFreq:    s.MinFreq,
		MaxFreq:    s.MaxFreq,
		FFTSize:    s.FFTSize,
		SampleRate: s.SampleRate,
		Width:      e.d.frame.AnalyzerWidth(),
		Average:    s.Average,
	})
	if err != nil {
		if errors.Is(err, bands.ErrEmptyLayout) {
			e.log.Warn("no bars fit the frequency range", "min", s.MinFreq, "max", s.MaxFreq)
		}
		return err
	}

	e.d.layout = l
	e.d.spans = bands.Spans(l.Bars, l.BarWidth, e.cfg.Bars.Space, e.cfg.Bars.Leds)
	e.tracker.Reset(len(l.Bars), e.d.channels)
	e.log.Debug("layout rebuilt", "bars", len(l.Bars), "barWidth", l.BarWidth, "width", e.width, "height", e.height)
	return nil
}

func (e *Engine) buildMappers() {
	c := e.cfg.Color
	e.d.mappers = make([]*theme.Mapper, e.d.channels)
	for ch := range e.d.mappers {
		t, err := e.themes.Get(c.Theme(ch))
		if err != nil {
			// sanitize only accepts registered names
			e.log.Error("channel theme missing", "channel", ch, "err", err)
			t, _ = e.themes.Get("classic")
			if t == nil {
				continue
			}
		}
		mods := t.Modifiers
		mods.Reverse = mods.Reverse || c.Modifiers[ch].Reverse
		mods.Horizontal = mods.Horizontal || c.Modifiers[ch].Horizontal

		m := theme.NewMapper(t, c.Mode, mods)
		if e.d.frame.Layout == geometry.DualVertical && !e.d.frame.Radial && !c.Split {
			if ch == 0 {
				m.Range(0, 0.5)
			} else {
				m.Range(0.5, 1)
			}
		}
		e.d.mappers[ch] = m
	}
}
