package fx

import "time"

// Transition tracks the timing of a single crossfade.  A new Transition is
// started for every switch request, they are never queued.
type Transition struct {
	start    time.Duration
	duration time.Duration
	active   bool
}

// Start (re)arms the transition to begin at now and last for duration
func (tr *Transition) Start(now time.Duration, duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	tr.start = now
	tr.duration = duration
	tr.active = true
}

// Stop marks the transition as finished
func (tr *Transition) Stop() {
	tr.active = false
}

// Active reports whether the transition has been started and not stopped
func (tr *Transition) Active() bool {
	return tr.active
}

// Progress returns how far the transition has run at now, scaled to 0..255.
//
// It is 0 at the start time (and before it), 255 once duration has elapsed
// and stays at 255 from then on.  A zero duration completes immediately.  A
// transition that is not active reports 255 so that callers see the current
// effect at full strength.
func (tr *Transition) Progress(now time.Duration) uint8 {
	if !tr.active {
		return 255
	}
	if now < tr.start {
		return 0
	}
	elapsed := now - tr.start
	if elapsed >= tr.duration {
		return 255
	}
	// elapsed < duration here so the result is always below 255, the
	// division is done in float space to avoid overflowing on long durations
	return uint8(float64(elapsed) * 255 / float64(tr.duration))
}
