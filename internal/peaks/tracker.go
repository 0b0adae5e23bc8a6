package peaks

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DecayMode selects what happens to a peak once its hold time expires.
type DecayMode int

const (
	// Decay drops the peak under constant acceleration.
	Decay DecayMode = iota
	// Fade keeps the peak in place and fades its opacity to zero.
	Fade
)

// Valid reports whether m is a known decay mode.
func (m DecayMode) Valid() bool { return m == Decay || m == Fade }

func (m DecayMode) String() string {
	if m == Fade {
		return "fade"
	}
	return "decay"
}

// ParseDecayMode parses "decay" or "fade".
func ParseDecayMode(s string) (DecayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decay", "gravity":
		return Decay, nil
	case "fade":
		return Fade, nil
	}
	return Decay, fmt.Errorf("unknown peak decay mode %q", s)
}

const fallbackFPS = 60

// Options configures peak dynamics.
type Options struct {
	HoldTime time.Duration
	Mode     DecayMode
	FadeTime time.Duration
	// Gravity is the fall acceleration in analyzer heights per second².
	Gravity float64

	// AlphaBars makes a fresh peak as opaque as its value.
	AlphaBars bool
	// FillAlpha, when set, is the opacity of a fresh peak in outline mode.
	FillAlpha float64
}

// DefaultOptions returns the stock dynamics: 500ms hold, gravity decay.
func DefaultOptions() Options {
	return Options{
		HoldTime: 500 * time.Millisecond,
		Mode:     Decay,
		FadeTime: 750 * time.Millisecond,
		Gravity:  3.8,
	}
}

// State is the peak state of one bar on one channel.
type State struct {
	Value float64
	Peak  float64
	Hold  int     // frames left before the peak starts to move
	Fall  int     // decay mode: frames since the hold expired
	Alpha float64 // peak opacity; fade mode lowers it after the hold
}

func (o Options) freshAlpha(v float64) float64 {
	switch {
	case o.AlphaBars:
		return v
	case o.FillAlpha > 0 && o.FillAlpha < 1:
		return o.FillAlpha
	}
	return 1
}

// Step advances s by one frame with the new value v.
func (o Options) Step(s *State, v, fps float64) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = fallbackFPS
	}
	s.Value = v

	switch {
	case v >= s.Peak:
		s.Peak = v
		s.Hold = int(math.Round(o.HoldTime.Seconds() * fps))
		s.Fall = 0
		s.Alpha = o.freshAlpha(v)
	case s.Hold > 0:
		s.Hold--
	case o.Mode == Fade:
		if frames := o.FadeTime.Seconds() * fps; frames > 0 {
			s.Alpha -= 1 / frames
		} else {
			s.Alpha = 0
		}
		if s.Alpha <= 0 {
			s.Alpha = 0
			s.Peak = 0
		}
	default:
		// v = g·t, so each frame falls n·g/fps² after n frames.
		s.Fall++
		s.Peak -= float64(s.Fall) * o.Gravity / (fps * fps)
	}

	if s.Peak < v {
		s.Peak = v
	}
}

// Tracker keeps the peak state of every bar on every channel.
type Tracker struct {
	Options
	states [][]State
}

// NewTracker returns a tracker with no bars.
func NewTracker(o Options) *Tracker {
	return &Tracker{Options: o}
}

// Reset discards all state and sizes the tracker for a new layout.
func (t *Tracker) Reset(bars, channels int) {
	t.states = make([][]State, channels)
	for ch := range t.states {
		t.states[ch] = make([]State, bars)
	}
}

// Update advances one channel by one frame.
func (t *Tracker) Update(ch int, values []float64, fps float64) {
	if ch < 0 || ch >= len(t.states) {
		return
	}
	states := t.states[ch]
	for i := range states {
		v := 0.0
		if i < len(values) {
			v = values[i]
		}
		t.Step(&states[i], v, fps)
	}
}

// States returns the state slice of a channel.
func (t *Tracker) States(ch int) []State {
	if ch < 0 || ch >= len(t.states) {
		return nil
	}
	return t.states[ch]
}
