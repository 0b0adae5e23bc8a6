package sampler

import (
	"fmt"
	"math"
	"strings"
)

// Filter identifies a frequency weighting curve applied to the spectrum
// before sampling.
type Filter int

const (
	FilterNone Filter = iota
	FilterA
	FilterB
	FilterC
	FilterD
	Filter468 // ITU-R 468
)

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool { return f >= FilterNone && f <= Filter468 }

func (f Filter) String() string {
	switch f {
	case FilterA:
		return "A"
	case FilterB:
		return "B"
	case FilterC:
		return "C"
	case FilterD:
		return "D"
	case Filter468:
		return "468"
	default:
		return "none"
	}
}

// ParseFilter parses a weighting filter name. An empty string means none.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE", "Z":
		return FilterNone, nil
	case "A":
		return FilterA, nil
	case "B":
		return FilterB, nil
	case "C":
		return FilterC, nil
	case "D":
		return FilterD, nil
	case "468", "ITU-R 468", "ITU468":
		return Filter468, nil
	}
	return FilterNone, fmt.Errorf("unknown weighting filter %q", s)
}

// Squared pole frequencies of the IEC 61672 analog prototypes.
const (
	sq20p6  = 424.36
	sq107p7 = 11599.29
	sq158p5 = 25122.25
	sq737p9 = 544496.41
	sq12194 = 148693636
)

func toDB(v float64) float64 { return 20 * math.Log10(v) }

// Gain returns the weighting offset in dB at freq. Curves are normalized
// to roughly 0 dB at 1 kHz (+18.2 dB peak region for ITU-R 468).
func (f Filter) Gain(freq float64) float64 {
	if freq <= 0 {
		return math.Inf(-1)
	}
	f2 := freq * freq
	switch f {
	case FilterA:
		r := sq12194 * f2 * f2 / ((f2 + sq20p6) * math.Sqrt((f2+sq107p7)*(f2+sq737p9)) * (f2 + sq12194))
		return 2 + toDB(r)
	case FilterB:
		r := sq12194 * f2 * freq / ((f2 + sq20p6) * math.Sqrt(f2+sq158p5) * (f2 + sq12194))
		return 0.17 + toDB(r)
	case FilterC:
		r := sq12194 * f2 / ((f2 + sq20p6) * (f2 + sq12194))
		return 0.06 + toDB(r)
	case FilterD:
		h := (math.Pow(1037918.48-f2, 2) + 1080768.16*f2) / (math.Pow(9837328-f2, 2) + 11723776*f2)
		r := freq / 6.8966888496476e-5 * math.Sqrt(h/((f2+79919.29)*(f2+1345600)))
		return toDB(r)
	case Filter468:
		h1 := -4.737338981378384e-24*math.Pow(freq, 6) + 2.043828333606125e-15*math.Pow(freq, 4) - 1.363894795463638e-7*f2 + 1
		h2 := 1.306612257412824e-19*math.Pow(freq, 5) - 2.118150887518656e-11*math.Pow(freq, 3) + 5.559488023498642e-4*freq
		r := 1.246332637532143e-4 * freq / math.Hypot(h1, h2)
		return 18.2 + toDB(r)
	default:
		return 0
	}
}

// Weights precomputes the per-bin dB offsets for a snapshot of fftSize/2
// bins. Bin 0 (DC) gets no offset. FilterNone returns nil.
func Weights(f Filter, fftSize int, sampleRate float64) []float64 {
	if f == FilterNone {
		return nil
	}
	w := make([]float64, fftSize/2)
	for i := 1; i < len(w); i++ {
		w[i] = f.Gain(float64(i) * sampleRate / float64(fftSize))
	}
	return w
}
