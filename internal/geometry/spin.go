package geometry

import "math"

// Spinner accumulates the radial rotation angle.
type Spinner struct {
	Speed float64 // revolutions per minute
	Angle float64 // radians
}

// Advance rotates by one frame at the measured fps. The analyzer only spins
// while there is sound.
func (s *Spinner) Advance(fps, energy float64) float64 {
	if s.Speed == 0 || energy <= 0 || fps <= 0 {
		return s.Angle
	}
	s.Angle = math.Mod(s.Angle+s.Speed*2*math.Pi/60/fps, 2*math.Pi)
	return s.Angle
}
