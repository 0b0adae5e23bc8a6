package peaks

import (
	"testing"
	"time"
)

func TestStepKeepsPeakAboveValue(t *testing.T) {
	for _, mode := range []DecayMode{Decay, Fade} {
		o := DefaultOptions()
		o.Mode = mode
		var s State
		values := []float64{0.2, 0.9, 0.5, 0.85, 0.1, 0, 0.3, 0.7, 0.69, 0.2}
		for frame := 0; frame < 400; frame++ {
			v := values[frame%len(values)]
			if frame > 40 {
				v *= 0.5
			}
			o.Step(&s, v, 60)
			if s.Peak < s.Value {
				t.Fatalf("%s frame %d: peak %v below value %v", mode, frame, s.Peak, s.Value)
			}
		}
	}
}

func TestStepHoldsForHoldTime(t *testing.T) {
	o := DefaultOptions()
	var s State
	o.Step(&s, 1, 60)
	if s.Hold != 30 {
		t.Fatalf("Hold = %d, want 30 frames at 60fps", s.Hold)
	}
	for range 30 {
		o.Step(&s, 0, 60)
		if s.Peak != 1 {
			t.Fatalf("peak moved during hold: %v", s.Peak)
		}
	}
	o.Step(&s, 0, 60)
	if s.Peak >= 1 {
		t.Fatal("peak did not fall after hold expired")
	}
}

func TestDecayNonIncreasingAndAccelerating(t *testing.T) {
	o := DefaultOptions()
	o.HoldTime = 0
	var s State
	o.Step(&s, 1, 60)

	prev := s.Peak
	prevDrop := 0.0
	for s.Peak > 0 {
		o.Step(&s, 0, 60)
		if s.Peak > prev {
			t.Fatalf("peak increased from %v to %v", prev, s.Peak)
		}
		drop := prev - s.Peak
		if s.Peak > 0 && drop < prevDrop {
			t.Fatalf("fall slowed down: %v after %v", drop, prevDrop)
		}
		prev, prevDrop = s.Peak, drop
	}
}

func TestDecayIndependentOfFrameRate(t *testing.T) {
	fallTime := func(fps float64) float64 {
		o := DefaultOptions()
		o.HoldTime = 0
		var s State
		o.Step(&s, 1, fps)
		frames := 0
		for s.Peak > 0 {
			o.Step(&s, 0, fps)
			frames++
		}
		return float64(frames) / fps
	}
	a, b := fallTime(30), fallTime(144)
	if d := a - b; d > 0.1 || d < -0.1 {
		t.Fatalf("fall time %vs at 30fps vs %vs at 144fps", a, b)
	}
}

func TestFadeLowersAlphaThenClearsPeak(t *testing.T) {
	o := DefaultOptions()
	o.Mode = Fade
	o.HoldTime = 0
	o.FadeTime = 500 * time.Millisecond
	var s State
	o.Step(&s, 0.8, 60)
	if s.Alpha != 1 {
		t.Fatalf("Alpha = %v, want 1 on a fresh peak", s.Alpha)
	}
	prev := s.Alpha
	frames := 0
	for s.Alpha > 0 {
		o.Step(&s, 0, 60)
		frames++
		if s.Alpha > prev {
			t.Fatalf("alpha increased from %v to %v", prev, s.Alpha)
		}
		if s.Alpha > 0 && s.Peak != 0.8 {
			t.Fatalf("peak moved while fading: %v", s.Peak)
		}
		prev = s.Alpha
	}
	if s.Peak != 0 {
		t.Fatalf("Peak = %v after fade, want 0", s.Peak)
	}
	if frames < 29 || frames > 31 {
		t.Fatalf("fade took %d frames, want ~30", frames)
	}
}

func TestFreshAlphaFollowsRenderingMode(t *testing.T) {
	o := DefaultOptions()
	o.AlphaBars = true
	var s State
	o.Step(&s, 0.4, 60)
	if s.Alpha != 0.4 {
		t.Fatalf("alpha bars: Alpha = %v, want 0.4", s.Alpha)
	}

	o = DefaultOptions()
	o.FillAlpha = 0.25
	s = State{}
	o.Step(&s, 0.4, 60)
	if s.Alpha != 0.25 {
		t.Fatalf("outline: Alpha = %v, want 0.25", s.Alpha)
	}
}

func TestTrackerResetClearsState(t *testing.T) {
	tr := NewTracker(DefaultOptions())
	tr.Reset(4, 2)
	tr.Update(1, []float64{0.5, 0.6, 0.7, 0.8}, 60)
	if got := tr.States(1)[3].Peak; got != 0.8 {
		t.Fatalf("Peak = %v, want 0.8", got)
	}
	tr.Reset(3, 2)
	for ch := range 2 {
		for i, s := range tr.States(ch) {
			if s != (State{}) {
				t.Fatalf("channel %d bar %d not reset: %+v", ch, i, s)
			}
		}
	}
	if tr.States(2) != nil {
		t.Fatal("expected nil for unknown channel")
	}
}

func TestParseDecayMode(t *testing.T) {
	if m, err := ParseDecayMode("fade"); err != nil || m != Fade {
		t.Fatalf("ParseDecayMode(fade) = %v, %v", m, err)
	}
	if _, err := ParseDecayMode("bounce"); err == nil {
		t.Fatal("expected error")
	}
}
