package source

import (
	"math"
	"math/rand/v2"
)

// Synth generates a test signal: a set of tones with slow amplitude
// envelopes, an optional logarithmic sweep and white noise.
type Synth struct {
	SampleRate float64
	Tones      []float64 // Hz
	Noise      float64   // noise amplitude
	Sweep      bool
	// SweepPeriod is the time one 40 Hz to 16 kHz sweep takes, in seconds.
	SweepPeriod float64

	rng    *rand.Rand
	t      float64 // seconds generated so far
	phases []float64
	sweep  float64
}

// NewSynth returns a synth with a fixed noise seed.
func NewSynth(sampleRate float64, tones []float64, noise float64, sweep bool) *Synth {
	return &Synth{
		SampleRate:  sampleRate,
		Tones:       tones,
		Noise:       noise,
		Sweep:       sweep,
		SweepPeriod: 8,
		rng:         rand.New(rand.NewPCG(1, 2)),
		phases:      make([]float64, len(tones)),
	}
}

// envelope breathes between 0.1 and 1 at a rate tied to the tone index.
func envelope(t float64, i int) float64 {
	rate := 0.25 + 0.17*float64(i)
	return 0.55 + 0.45*math.Sin(2*math.Pi*rate*t+float64(i))
}

// Generate fills dst with the next len(dst) samples. offset shifts the
// envelopes so two synths sharing a clock read as separate channels.
func (s *Synth) Generate(dst []float64, offset float64) {
	dt := 1 / s.SampleRate
	amp := 0.5 / float64(max(1, len(s.Tones)+1))
	for n := range dst {
		var v float64
		for i, f := range s.Tones {
			s.phases[i] = math.Mod(s.phases[i]+2*math.Pi*f*dt, 2*math.Pi)
			v += amp * envelope(s.t+offset, i) * math.Sin(s.phases[i])
		}
		if s.Sweep && s.SweepPeriod > 0 {
			pos := math.Mod(s.t, s.SweepPeriod) / s.SweepPeriod
			f := 40 * math.Pow(400, pos)
			s.sweep = math.Mod(s.sweep+2*math.Pi*f*dt, 2*math.Pi)
			v += amp * math.Sin(s.sweep)
		}
		if s.Noise > 0 {
			v += s.Noise * (2*s.rng.Float64() - 1)
		}
		dst[n] = v
		s.t += dt
	}
}
