package sampler

import (
	"math"
	"testing"

	"github.com/olivier-w/barscope/internal/bands"
)

func TestNormalizeDecibels(t *testing.T) {
	n := Normalizer{MinDB: -85, MaxDB: -25}
	tests := []struct {
		in, want float64
	}{
		{-85, 0},
		{-25, 1},
		{-55, 0.5},
		{-100, 0},
		{0, 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLinearBounds(t *testing.T) {
	n := Normalizer{MinDB: -85, MaxDB: -25, Linear: true, Boost: 2}
	if got := n.Normalize(-25); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Normalize(max) = %v, want 1", got)
	}
	if got := n.Normalize(-85); math.Abs(got) > 1e-12 {
		t.Fatalf("Normalize(min) = %v, want 0", got)
	}
	prev := -1.0
	for db := -85.0; db <= -25; db++ {
		v := n.Normalize(db)
		if v < prev {
			t.Fatalf("Normalize not monotonic at %v dB", db)
		}
		prev = v
	}
}

func TestRawTakesMaximumAcrossBins(t *testing.T) {
	data := []float64{-90, -60, -20, -70, -80, -90}
	b := bands.Bar{BinLo: 1, BinHi: 4, RatioLo: 0.5, RatioHi: 0.5}
	if got := Raw(b, data); got != -20 {
		t.Fatalf("Raw() = %v, want interior maximum -20", got)
	}

	b = bands.Bar{BinLo: 0, BinHi: 1, RatioLo: 0.5, RatioHi: 0.25}
	// interp(0,.5) = -75, interp(1,.25) = -50
	if got := Raw(b, data); got != -50 {
		t.Fatalf("Raw() = %v, want -50", got)
	}
}

func TestRawAveragesSharedBars(t *testing.T) {
	data := []float64{-60, -40, -90}
	b := bands.Bar{BinLo: 0, BinHi: 0, RatioLo: 0, RatioHi: 1, Average: true}
	if got := Raw(b, data); got != -50 {
		t.Fatalf("Raw() = %v, want mean -50", got)
	}
}

func TestRawUndefinedIsSilence(t *testing.T) {
	data := []float64{math.NaN(), math.NaN()}
	b := bands.Bar{BinLo: 0, BinHi: 0}
	if got := Raw(b, data); !math.IsInf(got, -1) {
		t.Fatalf("Raw() = %v, want -Inf", got)
	}
	if got := Raw(bands.Bar{BinLo: 5, BinHi: 6}, data); !math.IsInf(got, -1) {
		t.Fatalf("Raw() out of range = %v, want -Inf", got)
	}
}

func TestSampleNormalizesBars(t *testing.T) {
	s := New(Normalizer{MinDB: -100, MaxDB: 0}, FilterNone, 8, 8000)
	data := []float64{-100, -50, 0, math.NaN()}
	bars := []bands.Bar{{BinLo: 1, BinHi: 1}, {BinLo: 2, BinHi: 2}, {BinLo: 3, BinHi: 3}}
	got := s.Sample(nil, bars, data)
	want := []float64{0.5, 1, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Sample()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWeightingNearZeroAtOneKilohertz(t *testing.T) {
	for _, f := range []Filter{FilterA, FilterB, FilterC, FilterD, Filter468} {
		if g := f.Gain(1000); math.Abs(g) > 0.2 {
			t.Fatalf("%s.Gain(1000) = %v, want ~0", f, g)
		}
	}
	if g := FilterA.Gain(100); math.Abs(g+19.1) > 0.2 {
		t.Fatalf("A.Gain(100) = %v, want ~-19.1", g)
	}
	if g := FilterNone.Gain(100); g != 0 {
		t.Fatalf("none.Gain(100) = %v, want 0", g)
	}
}

func TestWeightsApplyPerBin(t *testing.T) {
	s := New(Normalizer{MinDB: -100, MaxDB: 0}, FilterA, 64, 6400)
	data := make([]float64, 32)
	for i := range data {
		data[i] = -50
	}
	out := s.Weighted(data)
	// bin 1 = 100 Hz
	if math.Abs(out[1]-(-50+FilterA.Gain(100))) > 1e-9 {
		t.Fatalf("weighted bin 1 = %v", out[1])
	}
	if data[1] != -50 {
		t.Fatal("Weighted modified its input")
	}
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{"": FilterNone, "a": FilterA, "468": Filter468, "D": FilterD} {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Fatalf("ParseFilter(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFilter("K"); err == nil {
		t.Fatal("expected error for K weighting")
	}
}
