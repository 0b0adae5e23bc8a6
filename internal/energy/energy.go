package energy

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/olivier-w/barscope/internal/bands"
	"github.com/olivier-w/barscope/internal/peaks"
	"github.com/olivier-w/barscope/internal/sampler"
)

// ErrNotFound is returned for an unknown band preset.
var ErrNotFound = errors.New("energy preset not found")

// Range is a frequency band in Hz.
type Range struct {
	Lo, Hi float64
}

// Presets are the named sub-bands.
var Presets = map[string]Range{
	"bass":    {20, 250},
	"lowMid":  {250, 500},
	"mid":     {500, 2000},
	"highMid": {2000, 4000},
	"treble":  {4000, 16000},
}

// PresetNames returns the preset names ordered by frequency.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return Presets[names[i]].Lo < Presets[names[j]].Lo })
	return names
}

// Overall is the unweighted mean of every bar value across channels. Bars
// are not weighted by bandwidth, so with a log scale the high end dominates.
func Overall(channels [][]float64) float64 {
	var sum float64
	var n int
	for _, values := range channels {
		sum += floats.Sum(values)
		n += len(values)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Aggregator computes sub-band energy from raw snapshots and tracks the
// overall energy peak.
type Aggregator struct {
	Bins    bands.Bins
	Sampler *sampler.Sampler
	Peak    peaks.Options
	state   peaks.State
}

// New returns an aggregator for the given FFT geometry.
func New(bins bands.Bins, s *sampler.Sampler, peak peaks.Options) *Aggregator {
	return &Aggregator{Bins: bins, Sampler: s, Peak: peak}
}

// Band returns the mean normalized bin value between lo and hi Hz, averaged
// over the given channel snapshots.
func (a *Aggregator) Band(lo, hi float64, data [][]float64) float64 {
	if len(data) == 0 || a.Sampler == nil {
		return 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	start := a.Bins.Index(lo, math.Round)
	end := a.Bins.Index(hi, math.Round)

	means := make([]float64, len(data))
	values := make([]float64, end-start+1)
	for i, snap := range data {
		for bin := start; bin <= end; bin++ {
			values[bin-start] = a.Sampler.Bin(snap, bin)
		}
		means[i] = stat.Mean(values, nil)
	}
	return stat.Mean(means, nil)
}

// Preset returns the energy of a named sub-band.
func (a *Aggregator) Preset(name string, data [][]float64) (float64, error) {
	r, ok := Presets[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return a.Band(r.Lo, r.Hi, data), nil
}

// Presets returns the energy of every preset band.
func (a *Aggregator) Presets(data [][]float64) map[string]float64 {
	out := make(map[string]float64, len(Presets))
	for name, r := range Presets {
		out[name] = a.Band(r.Lo, r.Hi, data)
	}
	return out
}

// Update runs the overall energy through the peak state machine.
func (a *Aggregator) Update(v, fps float64) peaks.State {
	a.Peak.Step(&a.state, v, fps)
	return a.state
}

// Reset clears the energy peak.
func (a *Aggregator) Reset() { a.state = peaks.State{} }
