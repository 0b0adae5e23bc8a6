package analyzer

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/energy"
	"github.com/olivier-w/barscope/internal/geometry"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/theme"
)

// BarFrame is one bar of one channel, ready to draw.
type BarFrame struct {
	Index int
	Freq  float64
	Value float64
	Peak  peaks.State
	Lit   int // LED cells lit, 0 outside LED mode

	Shape     geometry.Shape
	Fill      theme.Fill
	Alpha     float64
	PeakShape geometry.Shape
	PeakColor colorful.Color
}

// Channel is the drawable state of one channel.
type Channel struct {
	Bars   []BarFrame
	Mapper *theme.Mapper
	Leds   bands.Leds
	Height float64 // pixel height of a full-scale bar

	index  int
	frame  geometry.Frame
	spread bool
}

// FrameResult is the output of one frame.
type FrameResult struct {
	Channels []Channel
	Frame    geometry.Frame
	FPS      float64
	Energy   peaks.State
	Bands    map[string]float64
}

// GradientFrac returns the vertical gradient position of a canvas point for
// bars filled with a vertical gradient: 0 at the baseline, 1 at full scale.
func (c Channel) GradientFrac(p geometry.Point) float64 {
	if c.Height <= 0 {
		return 0
	}
	f := c.frame
	if !f.Radial {
		return (f.Baseline(c.index) - p.Y) / c.Height
	}
	center := f.Center()
	r := math.Hypot(p.X-center.X, p.Y-center.Y)
	if c.spread {
		return r / (math.Min(f.Width, f.Height) / 2)
	}
	return (r - f.InnerRadius()) * f.Direction(c.index) / c.Height
}

func (e *Engine) snapshot(snapshots [][]float64, ch int) []float64 {
	if len(snapshots) == 0 {
		return nil
	}
	if ch >= len(snapshots) {
		ch = len(snapshots) - 1
	}
	return snapshots[ch]
}

// Frame runs one sample, track, color, project and aggregate pass at ts
// over one dB snapshot per channel. A mono snapshot feeds both channels.
// The result is reused by the next call.
func (e *Engine) Frame(ts time.Time, snapshots [][]float64) *FrameResult {
	fps := e.clock.Tick(ts)
	d := &e.d
	bars := d.layout.Bars
	cfg := e.cfg

	if len(e.values) != d.channels {
		e.values = make([][]float64, d.channels)
	}
	if cfg.Peaks.Spring && len(e.springs) != d.channels {
		e.springs = make([]*peaks.Spring, d.channels)
		for ch := range e.springs {
			e.springs[ch] = peaks.NewSpring(cfg.Peaks.SpringFrequency, cfg.Peaks.SpringDamping)
		}
	}
	for ch := 0; ch < d.channels; ch++ {
		e.values[ch] = e.sampler.Sample(e.values[ch], bars, e.snapshot(snapshots, ch))
		if cfg.Peaks.Spring {
			e.springs[ch].Smooth(e.values[ch], fps)
		}
		e.tracker.Update(ch, e.values[ch], fps)
	}

	overall := energy.Overall(e.values)
	r := &e.result
	r.FPS = fps
	r.Energy = e.energy.Update(overall, fps)
	r.Bands = e.energy.Presets(snapshots[:min(len(snapshots), d.channels)])
	d.frame.SpinAngle = e.spinner.Advance(fps, overall)
	r.Frame = d.frame

	if len(r.Channels) != d.channels {
		r.Channels = make([]Channel, d.channels)
	}
	width := d.frame.AnalyzerWidth()
	for ch := range r.Channels {
		c := &r.Channels[ch]
		c.index = ch
		c.frame = d.frame
		c.spread = cfg.Color.Spread && d.frame.Radial
		c.Mapper = d.mappers[ch]
		c.Height = d.frame.ChannelHeight(ch)
		c.Leds = d.leds[ch]
		if cap(c.Bars) < len(bars) {
			c.Bars = make([]BarFrame, len(bars))
		}
		c.Bars = c.Bars[:len(bars)]

		states := e.tracker.States(ch)
		for i, b := range bars {
			st := states[i]
			span := d.spans[i]
			x := (span.X + span.W/2) / width
			bf := BarFrame{Index: b.Index, Freq: b.Freq, Value: st.Value, Peak: st, Alpha: 1}

			h := st.Value * c.Height
			ph := st.Peak * c.Height
			thickness := 1.0
			if cfg.Bars.Leds {
				bf.Lit = c.Leds.Lit(st.Value)
				h = c.Leds.Quantize(st.Value)
				ph = c.Leds.Quantize(st.Peak)
				thickness = c.Leds.Height
			}
			bf.Shape = geometry.Project(span, ch, h, d.frame)

			switch {
			case cfg.Bars.AlphaBars:
				bf.Alpha = st.Value
			case cfg.Bars.Outline:
				bf.Alpha = cfg.Bars.FillAlpha
			}
			if c.Mapper != nil {
				bf.Fill = c.Mapper.Bar(i, st.Value, x)
				bf.PeakColor = c.Mapper.Peak(i, st.Peak, x)
			}
			if cfg.Peaks.Show && st.Alpha > 0 && st.Peak > 0 {
				bf.PeakShape = geometry.PeakLine(span, ch, ph, thickness, d.frame)
			}
			c.Bars[i] = bf
		}
	}
	return r
}
