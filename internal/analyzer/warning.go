package analyzer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/olivier-w/barscope/internal/theme"
)

// ErrInvalidValue marks a rejected configuration value.
var ErrInvalidValue = errors.New("analyzer: invalid value")

// Warning reports a configuration value that was rejected. The previous
// value stays in effect.
type Warning struct {
	Field string
	Value any
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s = %v: %v", w.Field, w.Value, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// validator accepts fields of next one by one, falling back to prev.
type validator struct {
	warnings []Warning
}

func (v *validator) reject(field string, value any, reason string) {
	v.warnings = append(v.warnings, Warning{
		Field: field,
		Value: value,
		Err:   fmt.Errorf("%w: %s", ErrInvalidValue, reason),
	})
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (v *validator) float(field string, dst *float64, next, prev float64, ok bool, reason string) {
	if ok && finite(next) {
		*dst = next
		return
	}
	*dst = prev
	v.reject(field, next, reason)
}

// enum falls back to prev when next is not one of the known values.
func enum[T interface {
	~int
	Valid() bool
}](v *validator, field string, dst *T, next, prev T) {
	if next.Valid() {
		*dst = next
		return
	}
	*dst = prev
	v.reject(field, int(next), "unknown value")
}

func (v *validator) duration(field string, dst *time.Duration, next, prev time.Duration) {
	if next >= 0 {
		*dst = next
		return
	}
	*dst = prev
	v.reject(field, next, "must not be negative")
}

func inUnit(f float64) bool { return f >= 0 && f < 1 }

// sanitize returns next with every invalid field replaced by its value in
// prev.
func sanitize(prev, next Config, themes *theme.Registry) (Config, []Warning) {
	var v validator
	out := next

	s, ps := next.Spectrum, prev.Spectrum
	v.float("spectrum.minFreq", &out.Spectrum.MinFreq, s.MinFreq, ps.MinFreq, s.MinFreq > 0, "must be positive")
	v.float("spectrum.maxFreq", &out.Spectrum.MaxFreq, s.MaxFreq, ps.MaxFreq, s.MaxFreq > 0, "must be positive")
	if out.Spectrum.MinFreq >= out.Spectrum.MaxFreq {
		v.reject("spectrum.minFreq", out.Spectrum.MinFreq, fmt.Sprintf("not below maxFreq %g", out.Spectrum.MaxFreq))
		out.Spectrum.MinFreq, out.Spectrum.MaxFreq = ps.MinFreq, ps.MaxFreq
	}
	if n := s.FFTSize; n < 32 || n > 32768 || n&(n-1) != 0 {
		v.reject("spectrum.fftSize", n, "must be a power of two in [32, 32768]")
		out.Spectrum.FFTSize = ps.FFTSize
	}
	v.float("spectrum.sampleRate", &out.Spectrum.SampleRate, s.SampleRate, ps.SampleRate, s.SampleRate > 0, "must be positive")
	if !s.Mode.Valid() {
		v.reject("spectrum.mode", int(s.Mode), "unsupported band resolution")
		out.Spectrum.Mode = ps.Mode
	}
	enum(&v, "spectrum.scale", &out.Spectrum.Scale, s.Scale, ps.Scale)
	enum(&v, "spectrum.weighting", &out.Spectrum.Weighting, s.Weighting, ps.Weighting)

	l, pl := next.Levels, prev.Levels
	if !finite(l.MinDB) || !finite(l.MaxDB) || l.MinDB >= l.MaxDB {
		v.reject("levels.minDB", l.MinDB, fmt.Sprintf("must be below maxDB %g", l.MaxDB))
		out.Levels.MinDB, out.Levels.MaxDB = pl.MinDB, pl.MaxDB
	}
	v.float("levels.boost", &out.Levels.Boost, l.Boost, pl.Boost, l.Boost > 0, "must be positive")

	b, pb := next.Bars, prev.Bars
	v.float("bars.space", &out.Bars.Space, b.Space, pb.Space, b.Space >= 0, "must not be negative")
	v.float("bars.ledHeight", &out.Bars.LedHeight, b.LedHeight, pb.LedHeight, b.LedHeight >= 0, "must not be negative")
	v.float("bars.ledGap", &out.Bars.LedGap, b.LedGap, pb.LedGap, b.LedGap >= 0, "must not be negative")
	v.float("bars.fillAlpha", &out.Bars.FillAlpha, b.FillAlpha, pb.FillAlpha, b.FillAlpha >= 0 && b.FillAlpha <= 1, "must be in [0,1]")

	p, pp := next.Peaks, prev.Peaks
	enum(&v, "peaks.mode", &out.Peaks.Mode, p.Mode, pp.Mode)
	v.duration("peaks.hold", &out.Peaks.Hold, p.Hold, pp.Hold)
	v.duration("peaks.fadeTime", &out.Peaks.FadeTime, p.FadeTime, pp.FadeTime)
	v.float("peaks.gravity", &out.Peaks.Gravity, p.Gravity, pp.Gravity, p.Gravity > 0, "must be positive")
	v.float("peaks.springFrequency", &out.Peaks.SpringFrequency, p.SpringFrequency, pp.SpringFrequency, p.SpringFrequency > 0, "must be positive")
	v.float("peaks.springDamping", &out.Peaks.SpringDamping, p.SpringDamping, pp.SpringDamping, p.SpringDamping >= 0, "must not be negative")

	g, pg := next.Geometry, prev.Geometry
	enum(&v, "geometry.layout", &out.Geometry.Layout, g.Layout, pg.Layout)
	v.float("geometry.radius", &out.Geometry.Radius, g.Radius, pg.Radius, inUnit(g.Radius), "must be in [0,1)")
	v.float("geometry.reflexRatio", &out.Geometry.ReflexRatio, g.ReflexRatio, pg.ReflexRatio, inUnit(g.ReflexRatio), "must be in [0,1)")
	v.float("geometry.channelGap", &out.Geometry.ChannelGap, g.ChannelGap, pg.ChannelGap, g.ChannelGap >= 0, "must not be negative")
	v.float("geometry.spinSpeed", &out.Geometry.SpinSpeed, g.SpinSpeed, pg.SpinSpeed, true, "must be finite")

	enum(&v, "color.mode", &out.Color.Mode, next.Color.Mode, prev.Color.Mode)
	for ch, name := range next.Color.Themes {
		name = strings.TrimSpace(name)
		out.Color.Themes[ch] = name
		if name == "" && ch > 0 {
			continue
		}
		if themes == nil || !themes.Has(name) {
			v.warnings = append(v.warnings, Warning{
				Field: fmt.Sprintf("color.themes[%d]", ch),
				Value: name,
				Err:   fmt.Errorf("%w: %q", theme.ErrNotFound, name),
			})
			out.Color.Themes[ch] = prev.Color.Themes[ch]
		}
	}
	return out, v.warnings
}
