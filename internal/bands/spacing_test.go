package bands

import (
	"math"
	"testing"
)

func TestSpacePx(t *testing.T) {
	tests := []struct {
		space, width, want float64
	}{
		{0.25, 20, 5},
		{3, 20, 3},
		{0.5, 1.5, 0.5},
		{30, 20, 19},
		{0, 20, 0},
	}
	for _, tt := range tests {
		if got := SpacePx(tt.space, tt.width); got != tt.want {
			t.Fatalf("SpacePx(%v, %v) = %v, want %v", tt.space, tt.width, got, tt.want)
		}
	}
}

func TestSpansGaplessWithoutSpacing(t *testing.T) {
	bars := make([]Bar, 7)
	width := 10.9
	for i := range bars {
		bars[i].PosX = float64(i) * width
	}
	spans := Spans(bars, width, 0, false)
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if cur.X != prev.X+prev.W {
			t.Fatalf("span %d starts at %v, previous ends at %v", i, cur.X, prev.X+prev.W)
		}
		if cur.X != math.Trunc(cur.X) || cur.W != math.Trunc(cur.W) {
			t.Fatalf("span %d not snapped: %+v", i, cur)
		}
	}
}

func TestSpansWithSpacing(t *testing.T) {
	bars := []Bar{{PosX: 0}, {PosX: 20}}
	spans := Spans(bars, 20, 0.25, false)
	if spans[1].X != 22.5 || spans[1].W != 15 {
		t.Fatalf("span = %+v, want {22.5 15}", spans[1])
	}
}

func TestLedsQuantize(t *testing.T) {
	l := NewLeds(3, 100, LedOptions{Height: 9, Gap: 1})
	if l.Count != 10 {
		t.Fatalf("Count = %d, want 10", l.Count)
	}
	if got := l.Quantize(1); math.Abs(got-100) > 1e-9 {
		t.Fatalf("Quantize(1) = %v, want 100", got)
	}
	if got := l.Quantize(0.05); got != 0 {
		t.Fatalf("Quantize(0.05) = %v, want 0", got)
	}
	if got := l.Lit(0.55); got != 5 {
		t.Fatalf("Lit(0.55) = %d, want 5", got)
	}
}

func TestLedsDerivedFromMode(t *testing.T) {
	l := NewLeds(Discrete, 400, LedOptions{})
	if l.Count < 1 || l.Height <= 0 {
		t.Fatalf("unexpected leds %+v", l)
	}
	total := float64(l.Count)*(l.Height+l.Gap) - l.Gap
	if math.Abs(total-400) > 1e-6 {
		t.Fatalf("cells cover %v px, want 400", total)
	}
}
