package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatFreq formats a frequency in Hz as "440", "1.2k" or "16k".
func FormatFreq(hz float64) string {
	if math.IsNaN(hz) || hz < 0 {
		hz = 0
	}
	if hz < 1000 {
		return strconv.FormatFloat(math.Round(hz), 'f', -1, 64)
	}
	k := math.Round(hz/100) / 10
	if k == math.Trunc(k) || k >= 10 {
		return fmt.Sprintf("%.0fk", k)
	}
	return fmt.Sprintf("%.1fk", k)
}

// FormatRange formats a frequency range as "20-22k Hz".
func FormatRange(lo, hi float64) string {
	return FormatFreq(lo) + "-" + FormatFreq(hi) + " Hz"
}

// FormatMillis formats a duration as whole milliseconds.
func FormatMillis(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
