package theme

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrNotFound is returned for names that are not registered.
	ErrNotFound = errors.New("theme: not found")
	// ErrInvalid is returned when theme options cannot be registered.
	ErrInvalid = errors.New("theme: invalid")
	// ErrInUse is returned when unregistering a theme a channel still uses.
	ErrInUse = errors.New("theme: in use")
)

// Modifiers alter how a theme's gradient is built for one channel.
type Modifiers struct {
	Reverse    bool `yaml:"reverse"`    // swap stop colors, keep positions and levels
	Horizontal bool `yaml:"horizontal"` // run the gradient across bars instead of up them
}

// StopSpec is a color stop as written by a user. Missing Pos and Level
// get defaults derived from the stop's index.
type StopSpec struct {
	Color string   `yaml:"color"`
	Pos   *float64 `yaml:"pos,omitempty"`
	Level *float64 `yaml:"level,omitempty"`
}

// Options describes a theme to register.
type Options struct {
	ColorStops []StopSpec `yaml:"colorStops"`
	PeakColor  string     `yaml:"peakColor,omitempty"`
	BgColor    string     `yaml:"bgColor,omitempty"`
	Modifiers  Modifiers  `yaml:"modifiers,omitempty"`
}

// Stop is a normalized color stop.
type Stop struct {
	Color colorful.Color
	Alpha float64
	Pos   float64
	Level float64
}

// Theme is a registered, immutable color theme. Stops are sorted by
// descending level and the first stop has level 1.
type Theme struct {
	Name       string
	Stops      []Stop
	Muted      []Stop
	Peak       *colorful.Color
	Background colorful.Color
	Modifiers  Modifiers
}

const defaultBackground = "#111111"

func validFraction(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && *v >= 0 && *v <= 1
}

// New validates opts and builds a theme. It does not touch any registry.
func New(name string, opts Options) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalid)
	}
	count := len(opts.ColorStops)
	if count < 2 {
		return nil, fmt.Errorf("%w: %q needs at least 2 color stops, got %d", ErrInvalid, name, count)
	}

	t := &Theme{Name: name, Modifiers: opts.Modifiers}
	t.Stops = make([]Stop, count)
	for i, spec := range opts.ColorStops {
		c, err := ParseColor(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %q stop %d: %w", ErrInvalid, name, i, err)
		}
		s := Stop{Color: c, Alpha: 1}
		if validFraction(spec.Pos) {
			s.Pos = *spec.Pos
		} else {
			s.Pos = float64(i) / float64(count-1)
		}
		if validFraction(spec.Level) {
			s.Level = *spec.Level
		} else {
			s.Level = 1 - float64(i)/float64(count)
		}
		t.Stops[i] = s
	}
	sort.SliceStable(t.Stops, func(i, j int) bool { return t.Stops[i].Level > t.Stops[j].Level })
	t.Stops[0].Level = 1

	t.Muted = make([]Stop, count)
	for i, s := range t.Stops {
		t.Muted[i] = Stop{Color: muted(s.Color), Alpha: mutedAlpha, Pos: s.Pos, Level: s.Level}
	}

	if opts.PeakColor != "" {
		c, err := ParseColor(opts.PeakColor)
		if err != nil {
			return nil, fmt.Errorf("%w: %q peak color: %w", ErrInvalid, name, err)
		}
		t.Peak = &c
	}

	bg := opts.BgColor
	if bg == "" {
		bg = defaultBackground
	}
	c, err := ParseColor(bg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q background: %w", ErrInvalid, name, err)
	}
	t.Background = c
	return t, nil
}
