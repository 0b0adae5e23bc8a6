package source

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Config describes a synthetic source.
type Config struct {
	SampleRate float64
	FFTSize    int
	Smoothing  float64
	Tones      []float64
	Noise      float64
	Sweep      bool
	Stereo     bool
}

// Source runs a synth into per-channel ring buffers and analyses the most
// recent block on demand. Run feeds it from its own goroutine; Snapshots is
// called from the frame loop.
type Source struct {
	cfg       Config
	synth     *Synth
	rings     []*Ring
	analysers []*Analyser
	block     []float64
	chunk     []float64
	snaps     [][]float64
	log       *log.Logger
}

// New returns a source for cfg. A nil logger is allowed.
func New(cfg Config, logger *log.Logger) *Source {
	channels := 1
	if cfg.Stereo {
		channels = 2
	}
	s := &Source{
		cfg:   cfg,
		synth: NewSynth(cfg.SampleRate, cfg.Tones, cfg.Noise, cfg.Sweep),
		block: make([]float64, cfg.FFTSize),
		snaps: make([][]float64, channels),
		log:   logger,
	}
	for range channels {
		s.rings = append(s.rings, NewRing(cfg.FFTSize*2))
		s.analysers = append(s.analysers, NewAnalyser(cfg.FFTSize, cfg.Smoothing))
	}
	return s
}

// Channels returns the channel count.
func (s *Source) Channels() int { return len(s.rings) }

// Pump generates n more samples per channel.
func (s *Source) Pump(n int) {
	if cap(s.chunk) < n {
		s.chunk = make([]float64, n)
	}
	chunk := s.chunk[:n]
	// Both channels share one synth clock, the right channel reads its
	// envelopes a little ahead.
	t := s.synth.t
	for ch, r := range s.rings {
		s.synth.t = t
		s.synth.Generate(chunk, float64(ch)*0.37)
		r.Write(chunk)
	}
}

// Run pumps samples in real time until ctx is done.
func (s *Source) Run(ctx context.Context) error {
	const period = 10 * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	per := int(s.cfg.SampleRate * period.Seconds())
	if s.log != nil {
		s.log.Debug("source running", "sampleRate", s.cfg.SampleRate, "fftSize", s.cfg.FFTSize, "channels", len(s.rings))
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Pump(per)
		}
	}
}

// Snapshots analyses the latest block of every channel. The returned slices
// are reused by the next call.
func (s *Source) Snapshots() [][]float64 {
	for ch, r := range s.rings {
		r.Latest(s.block)
		s.snaps[ch] = s.analysers[ch].Analyse(s.snaps[ch], s.block)
	}
	return s.snaps
}
