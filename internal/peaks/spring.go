package peaks

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring smooths bar values with a damped spring per bar.
type Spring struct {
	frequency float64
	damping   float64
	fps       int
	spring    harmonica.Spring
	pos       []float64
	vel       []float64
}

// NewSpring returns a spring field with the given angular frequency and
// damping ratio.
func NewSpring(frequency, damping float64) *Spring {
	return &Spring{frequency: frequency, damping: damping}
}

func (s *Spring) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

// Reset drops all spring motion.
func (s *Spring) Reset() {
	s.pos = nil
	s.vel = nil
}

// Smooth moves every value toward its target in place. The spring is
// rebuilt whenever the rounded frame rate changes.
func (s *Spring) Smooth(values []float64, fps float64) {
	rate := int(math.Round(fps))
	if rate <= 0 {
		rate = fallbackFPS
	}
	if rate != s.fps {
		s.spring = harmonica.NewSpring(harmonica.FPS(rate), s.frequency, s.damping)
		s.fps = rate
	}
	s.resize(len(values))
	for i, target := range values {
		p, v := s.spring.Update(s.pos[i], s.vel[i], target)
		s.pos[i] = p
		s.vel[i] = v
		values[i] = math.Max(0, math.Min(1, p))
	}
}
