/*
Package fx contains the effect registry, the transition state machine and the
compositing needed to drive an addressable pixel strip from a set of pluggable
effects, crossfading between them on request.

Nothing in this package starts goroutines or takes locks. An Engine must be
driven from a single goroutine, typically a render loop, which supplies the
current time on every call.
*/
package fx

import (
	"image/color"
	"strconv"
	"time"
)

// DrawContext is handed to an effect each time it is asked to render
type DrawContext struct {
	// Now is the caller supplied monotonic time of the frame being generated
	Now time.Duration
	// Surface is the buffer to be filled, one element per LED.  The alpha
	// channel is treated as an optional white channel
	Surface []color.RGBA
}

// Effect is an interface for animation units that can be registered with an
// Engine.
//
// Effects are shared with whoever created them, the engine never assumes it is
// the sole owner.
//
// Pause and Resume must be idempotent.  When switch requests arrive in quick
// succession the engine may call Resume on an effect that is already running,
// or Pause on one that has already been paused, and implementations are
// expected to treat the repeated call as a no-op.
type Effect interface {
	// Draw fills ctx.Surface with the frame appropriate for ctx.Now
	Draw(ctx DrawContext)
	// Pause is called when the effect stops being visible
	Pause()
	// Resume is called when the effect is about to become visible
	Resume()
}

// Named can optionally be implemented by an Effect to give it a name in logs
type Named interface {
	Name() string
}

func effectName(effect Effect, idx int) string {
	if named, ok := effect.(Named); ok {
		return named.Name()
	}
	return "#" + strconv.Itoa(idx)
}
