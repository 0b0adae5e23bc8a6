package bands

import (
	"math"
	"testing"
)

func TestNominalFrequency(t *testing.T) {
	tests := []struct {
		freq float64
		n    int
		ansi bool
		want float64
	}{
		{16744.036, 1, false, 16740},
		{261.6256, 12, false, 261.6},
		{32.7032, 1, false, 32.7},
		{1000, 3, true, 1000},
		{1258.925, 6, true, 1260},
		{5623.413, 6, true, 5600},
		{31.6228, 1, true, 31.5},
	}
	for _, tt := range tests {
		got := nominalFrequency(tt.freq, tt.n, tt.ansi)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("nominalFrequency(%v, %d, %v) = %v, want %v", tt.freq, tt.n, tt.ansi, got, tt.want)
		}
	}
}
