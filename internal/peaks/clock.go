package peaks

import "time"

// Clock measures the instantaneous frame rate from frame timestamps.
type Clock struct {
	// MaxGap is the longest frame interval treated as continuous playback.
	// Anything longer is a resume and restarts measurement.
	MaxGap time.Duration

	last    time.Time
	running bool
	fps     float64
}

// NewClock returns a clock that treats gaps above one second as a resume.
func NewClock() *Clock {
	return &Clock{MaxGap: time.Second, fps: fallbackFPS}
}

// Tick records a frame at now and returns the frame rate to use for it.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.running {
		c.running = true
		c.last = now
		return c.fps
	}
	gap := now.Sub(c.last)
	c.last = now
	if gap <= 0 || (c.MaxGap > 0 && gap > c.MaxGap) {
		return c.fps
	}
	c.fps = 1 / gap.Seconds()
	return c.fps
}

// Resume forgets the last timestamp so the next frame does not consume the
// time spent suspended.
func (c *Clock) Resume() {
	c.running = false
}

// FPS returns the last measured frame rate.
func (c *Clock) FPS() float64 { return c.fps }
