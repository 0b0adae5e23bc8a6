package sampler

import "math"

// Normalizer maps dB magnitudes onto [0,1].
type Normalizer struct {
	MinDB  float64
	MaxDB  float64
	Linear bool    // work on linear amplitude instead of dB
	Boost  float64 // linear mode only: values are raised to 1/Boost
}

func dbToLinear(db float64) float64 { return math.Pow(10, db/20) }

// Normalize returns the normalized amplitude of a dB value. Non-finite
// input (silence, or no analysis frame yet) yields 0.
func (n Normalizer) Normalize(db float64) float64 {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return 0
	}
	lo, hi, v := n.MinDB, n.MaxDB, db
	if n.Linear {
		exp := 1.0
		if n.Boost > 0 {
			exp = 1 / n.Boost
		}
		lo = math.Pow(dbToLinear(lo), exp)
		hi = math.Pow(dbToLinear(hi), exp)
		v = math.Pow(dbToLinear(v), exp)
	}
	if hi <= lo {
		return 0
	}
	return clamp01((v - lo) / (hi - lo))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
