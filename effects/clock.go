package effects

import "time"

// clock measures how long an effect has been running, ignoring the time it
// spent paused.  The first draw after a resume re-anchors the clock so the
// gap is not counted.
type clock struct {
	elapsed  time.Duration
	last     time.Duration
	anchored bool
	paused   bool
}

// advance moves the clock to now and returns the running time
func (c *clock) advance(now time.Duration) time.Duration {
	if !c.anchored {
		c.anchored = true
		c.last = now
		return c.elapsed
	}
	if !c.paused && now > c.last {
		c.elapsed += now - c.last
	}
	c.last = now
	return c.elapsed
}

func (c *clock) pause() {
	c.paused = true
}

func (c *clock) resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.anchored = false
}

func (c *clock) reset() {
	c.elapsed = 0
	c.anchored = false
}
