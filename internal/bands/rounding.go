package bands

import "math"

// Renard R20 preferred numbers, used for nominal 1/1 and 1/2 and 1/3 octave
// ANSI band centers.
var r20 = []float64{1, 1.12, 1.25, 1.4, 1.6, 1.8, 2, 2.24, 2.5, 2.8, 3.15, 3.55, 4, 4.5, 5, 5.6, 6.3, 7.1, 8, 9, 10}

// nominalFrequency rounds a raw band center to its displayed value.
func nominalFrequency(freq float64, n int, ansi bool) float64 {
	if !ansi {
		return roundSignificant(freq, 4)
	}
	if n < 4 {
		return nearestPreferred(freq)
	}
	if leadingDigit(freq) < 5 {
		return roundSignificant(freq, 3)
	}
	return roundSignificant(freq, 2)
}

func roundSignificant(v float64, digits int) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	exp := math.Floor(math.Log10(math.Abs(v)))
	f := math.Pow(10, float64(digits-1)-exp)
	return math.Round(v*f) / f
}

func leadingDigit(v float64) int {
	if v <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(v))
	d := int(v / math.Pow(10, exp))
	return min(max(d, 1), 9)
}

func nearestPreferred(v float64) float64 {
	exp := math.Floor(math.Log10(v))
	norm := v / math.Pow(10, exp)

	i := 1
	for i < len(r20)-1 && norm > r20[i] {
		i++
	}
	if norm-r20[i-1] < r20[i]-norm {
		i--
	}
	return roundSignificant(r20[i]*math.Pow(10, exp), 5)
}
