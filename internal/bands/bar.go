package bands

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is the band resolution. Discrete maps every FFT bin to its own column;
// a positive value N partitions the spectrum into 1/N octave bands.
type Mode int

const Discrete Mode = 0

var octaveResolutions = []Mode{1, 2, 3, 4, 6, 8, 12, 24}

// Valid reports whether m is Discrete or one of the supported octave fractions.
func (m Mode) Valid() bool {
	if m == Discrete {
		return true
	}
	for _, r := range octaveResolutions {
		if m == r {
			return true
		}
	}
	return false
}

// Octave reports whether m partitions the spectrum into octave bands.
func (m Mode) Octave() bool { return m > Discrete }

func (m Mode) String() string {
	if m == Discrete {
		return "discrete"
	}
	return "1/" + strconv.Itoa(int(m)) + " octave"
}

// ParseMode accepts "discrete", "1/3", "1/3 octave" or a bare "3".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "discrete" || s == "" {
		return Discrete, nil
	}
	s = strings.TrimSuffix(s, "octave")
	s = strings.TrimSpace(strings.TrimPrefix(s, "1/"))
	n, err := strconv.Atoi(s)
	if err != nil || !Mode(n).Valid() {
		return Discrete, fmt.Errorf("unknown band mode %q", s)
	}
	return Mode(n), nil
}

// Bar is one visual element covering a frequency sub-range. Frequencies are
// sorted ascending across a layout and so are positions.
type Bar struct {
	Index   int
	Freq    float64 // nominal center frequency
	FreqLo  float64
	FreqHi  float64
	BinLo   int
	BinHi   int
	RatioLo float64
	RatioHi float64
	PosX    float64
	// Average marks bars that share their FFT bin with a neighbor; the
	// sampler averages instead of taking the maximum.
	Average bool
}

// Span is the horizontal extent of a drawn bar.
type Span struct {
	X float64
	W float64
}
