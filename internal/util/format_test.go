package util

import (
	"testing"
	"time"
)

func TestFormatFreq(t *testing.T) {
	tests := []struct {
		hz   float64
		want string
	}{
		{20, "20"},
		{440.4, "440"},
		{1000, "1k"},
		{1250, "1.3k"},
		{16000, "16k"},
		{22050, "22k"},
		{-5, "0"},
	}
	for _, tt := range tests {
		if got := FormatFreq(tt.hz); got != tt.want {
			t.Errorf("FormatFreq(%v) = %q, want %q", tt.hz, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(20, 22000); got != "20-22k Hz" {
		t.Errorf("FormatRange() = %q, want %q", got, "20-22k Hz")
	}
}

func TestFormatMillis(t *testing.T) {
	if got := FormatMillis(750 * time.Millisecond); got != "750ms" {
		t.Errorf("expected 750ms, got %s", got)
	}
	if got := FormatMillis(-time.Second); got != "0ms" {
		t.Errorf("expected 0ms, got %s", got)
	}
}
