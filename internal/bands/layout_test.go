package bands

import (
	"errors"
	"math"
	"testing"

	"github.com/olivier-w/barscope/internal/scale"
)

func baseParams() Params {
	return Params{
		Scale:      scale.Log,
		Mode:       Discrete,
		MinFreq:    20,
		MaxFreq:    20000,
		FFTSize:    8192,
		SampleRate: 44100,
		Width:      1000,
	}
}

func TestDiscreteFirstBin(t *testing.T) {
	l, err := Build(baseParams())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := int(math.Round(20 * 8192.0 / 44100))
	if got := l.Bars[0].BinLo; got != want {
		t.Fatalf("first BinLo = %d, want %d", got, want)
	}
}

func TestDiscreteBarsStrictlyIncreasing(t *testing.T) {
	for _, k := range []scale.Kind{scale.Log, scale.Bark, scale.Mel, scale.Linear} {
		p := baseParams()
		p.Scale = k
		l, err := Build(p)
		if err != nil {
			t.Fatalf("%s: Build() error = %v", k, err)
		}
		bins := Bins{FFTSize: p.FFTSize, SampleRate: p.SampleRate}
		span := bins.Index(p.MaxFreq, math.Round) - bins.Index(p.MinFreq, math.Round) + 1
		if len(l.Bars) > span {
			t.Fatalf("%s: %d bars exceed bin span %d", k, len(l.Bars), span)
		}
		for i := 1; i < len(l.Bars); i++ {
			prev, cur := l.Bars[i-1], l.Bars[i]
			if cur.PosX <= prev.PosX {
				t.Fatalf("%s: bar %d PosX %v not above %v", k, i, cur.PosX, prev.PosX)
			}
			if cur.FreqLo <= prev.FreqHi {
				t.Fatalf("%s: bar %d overlaps previous in frequency", k, i)
			}
		}
	}
}

func TestDiscreteMergedBarUsesGeometricMean(t *testing.T) {
	p := baseParams()
	p.Width = 100
	l, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	last := l.Bars[len(l.Bars)-1]
	if last.BinHi == last.BinLo {
		t.Fatal("expected high bins to merge at 100px")
	}
	if want := math.Sqrt(last.FreqLo * last.FreqHi); math.Abs(last.Freq-want) > 1e-9 {
		t.Fatalf("merged Freq = %v, want %v", last.Freq, want)
	}
}

func TestTemperedFullOctaves(t *testing.T) {
	p := baseParams()
	p.Mode = 1
	l, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []float64{31, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}
	if len(l.Bars) != len(want) {
		t.Fatalf("got %d bands, want %d", len(l.Bars), len(want))
	}
	for i, w := range want {
		if d := math.Abs(math.Log2(l.Bars[i].Freq / w)); d > 0.1 {
			t.Fatalf("band %d center %v too far from %v", i, l.Bars[i].Freq, w)
		}
	}
	if got, want := l.Bars[0].FreqLo, l.Bars[0].FreqHi/2; math.Abs(got-want) > 1e-9 {
		t.Fatalf("first FreqLo = %v, want one octave below FreqHi", got)
	}
	if got := l.Bars[len(l.Bars)-1].FreqHi; got != 20000 {
		t.Fatalf("last FreqHi = %v, want clamped to 20000", got)
	}
}

func TestOctaveAxisUsesUnclampedEdges(t *testing.T) {
	p := baseParams()
	p.Mode = 1
	p.MinFreq = 25
	l, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := l.Bars[0].FreqLo; got != 25 {
		t.Fatalf("first FreqLo = %v, want clamped to 25", got)
	}
	// The raw lower edge (~23 Hz) anchors the axis, so 25 Hz sits to the
	// right of the origin.
	if x := l.Axis.X(25); x <= 0 {
		t.Fatalf("Axis.X(25) = %v, want > 0", x)
	}
}

func TestANSIReferenceBand(t *testing.T) {
	for _, n := range []Mode{1, 3} {
		p := baseParams()
		p.Mode = n
		p.ANSI = true
		l, err := Build(p)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		found := false
		for _, b := range l.Bars {
			if b.Freq == 1000 {
				found = true
			}
		}
		if !found {
			t.Fatalf("1/%d ANSI bands missing exact 1000 Hz center", n)
		}
	}
}

func TestANSIEvenResolutionPutsReferenceOnEdge(t *testing.T) {
	p := baseParams()
	p.Mode = 2
	p.ANSI = true
	l, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, b := range l.Bars {
		if math.Abs(b.FreqHi-1000) < 1e-6 {
			return
		}
	}
	t.Fatal("expected a band edge at 1000 Hz")
}

func TestOctaveDeterministic(t *testing.T) {
	p := baseParams()
	p.Mode = 24
	a, _ := Build(p)
	b, _ := Build(p)
	if len(a.Bars) != len(b.Bars) {
		t.Fatal("band count differs between builds")
	}
	for i := range a.Bars {
		if a.Bars[i] != b.Bars[i] {
			t.Fatalf("bar %d differs between builds", i)
		}
	}
}

func TestOctaveScaledFixedCount(t *testing.T) {
	for _, k := range []scale.Kind{scale.Bark, scale.Mel, scale.Linear} {
		p := baseParams()
		p.Scale = k
		p.Mode = 3
		l, err := Build(p)
		if err != nil {
			t.Fatalf("%s: Build() error = %v", k, err)
		}
		if len(l.Bars) != 30 {
			t.Fatalf("%s: got %d bars, want 30", k, len(l.Bars))
		}
		if math.Abs(l.Bars[0].FreqLo-20) > 1e-6 || math.Abs(l.Bars[29].FreqHi-20000) > 1e-6 {
			t.Fatalf("%s: edges %v-%v, want 20-20000", k, l.Bars[0].FreqLo, l.Bars[29].FreqHi)
		}
		if l.BarWidth != p.Width/30 {
			t.Fatalf("%s: BarWidth = %v", k, l.BarWidth)
		}
	}
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	tests := []func(*Params){
		func(p *Params) { p.MinFreq = 0 },
		func(p *Params) { p.MaxFreq = -1 },
		func(p *Params) { p.MinFreq = 30000 },
		func(p *Params) { p.FFTSize = 1000 },
		func(p *Params) { p.Width = 0 },
		func(p *Params) { p.Mode = 5 },
	}
	for i, mutate := range tests {
		p := baseParams()
		mutate(&p)
		if _, err := Build(p); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("case %d: error = %v, want ErrInvalidParams", i, err)
		}
	}
}

func TestAverageMarksSharedLowBins(t *testing.T) {
	p := baseParams()
	p.Mode = 24
	p.FFTSize = 1024
	p.Average = true
	l, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !l.Bars[0].Average {
		t.Fatal("expected lowest 1/24 octave bands to share a bin")
	}
	if l.Bars[len(l.Bars)-1].Average {
		t.Fatal("highest band should not be averaged")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"discrete", Discrete},
		{"1/3", 3},
		{"1/24 octave", 24},
		{"8", 8},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseMode("1/5"); err == nil {
		t.Fatal("expected error for 1/5")
	}
}
