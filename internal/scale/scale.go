package scale

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the perceptual scale used for the frequency axis.
type Kind int

const (
	Log Kind = iota
	Bark
	Mel
	Linear
)

// Valid reports whether k is a known scale.
func (k Kind) Valid() bool { return k >= Log && k <= Linear }

// String returns the configuration name of the scale.
func (k Kind) String() string {
	switch k {
	case Log:
		return "log"
	case Bark:
		return "bark"
	case Mel:
		return "mel"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseKind parses a scale name as written in configuration files.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "log", "logarithmic":
		return Log, nil
	case "bark":
		return Bark, nil
	case "mel":
		return Mel, nil
	case "linear", "lin":
		return Linear, nil
	}
	return Log, fmt.Errorf("unknown frequency scale %q", s)
}

// ToScaled maps a frequency in Hz onto the scaled axis.
func ToScaled(freq float64, k Kind) float64 {
	switch k {
	case Bark:
		return 26.81*freq/(1960+freq) - 0.53
	case Mel:
		return math.Log2(1 + freq/700)
	case Linear:
		return freq
	default:
		return math.Log2(freq)
	}
}

// FromScaled is the inverse of ToScaled.
func FromScaled(x float64, k Kind) float64 {
	switch k {
	case Bark:
		return 1960 / (26.81/(x+0.53) - 1)
	case Mel:
		return 700 * (math.Exp2(x) - 1)
	case Linear:
		return x
	default:
		return math.Exp2(x)
	}
}

// Axis maps scaled frequencies onto a pixel axis.
type Axis struct {
	Kind      Kind
	Min       float64 // scaled value at x = 0
	UnitWidth float64 // pixels per scaled unit
}

// NewAxis spans width pixels between minFreq and maxFreq.
func NewAxis(k Kind, minFreq, maxFreq, width float64) Axis {
	lo := ToScaled(minFreq, k)
	return Axis{Kind: k, Min: lo, UnitWidth: width / (ToScaled(maxFreq, k) - lo)}
}

// X returns the pixel offset of freq.
func (a Axis) X(freq float64) float64 {
	return a.UnitWidth * (ToScaled(freq, a.Kind) - a.Min)
}

// Freq returns the frequency at pixel offset x.
func (a Axis) Freq(x float64) float64 {
	return FromScaled(a.Min+x/a.UnitWidth, a.Kind)
}
