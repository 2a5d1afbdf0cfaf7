package effects

import (
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/TeamNorCal/fxstrip/fx"
)

// Chase runs a lit segment along the strip, the head at full brightness and
// the tail fading towards black
type Chase struct {
	name   string
	color  colorful.Color
	length int
	speed  float64 // LEDs per second
	clock  clock
}

// NewChase creates a Chase effect with a segment of length LEDs moving at
// speed LEDs per second
func NewChase(name string, c colorful.Color, length int, speed float64) *Chase {
	if length < 1 {
		length = 1
	}
	return &Chase{name: name, color: c, length: length, speed: speed}
}

func (effect *Chase) Name() string { return effect.name }

// Draw generates an animation frame
func (effect *Chase) Draw(ctx fx.DrawContext) {
	elapsed := effect.clock.advance(ctx.Now)

	fill(ctx.Surface, color.RGBA{})
	n := len(ctx.Surface)
	if n == 0 {
		return
	}

	head := int(effect.speed*elapsed.Seconds()) % n
	if head < 0 {
		head += n
	}
	black := colorful.Color{}
	for i := 0; i < effect.length && i < n; i++ {
		pos := (head - i + n) % n
		t := float64(i) / float64(effect.length)
		ctx.Surface[pos] = toRGBA(effect.color.BlendRgb(black, t))
	}
}

func (effect *Chase) Pause()  { effect.clock.pause() }
func (effect *Chase) Resume() { effect.clock.resume() }

// Blink alternates the whole strip between two colors, each shown for half of
// period.  Every resume restarts the cycle on the first color.
type Blink struct {
	name    string
	on, off color.RGBA
	period  time.Duration
	clock   clock
}

// NewBlink creates a Blink effect
func NewBlink(name string, on, off colorful.Color, period time.Duration) *Blink {
	return &Blink{name: name, on: toRGBA(on), off: toRGBA(off), period: period}
}

func (effect *Blink) Name() string { return effect.name }

// Draw generates an animation frame
func (effect *Blink) Draw(ctx fx.DrawContext) {
	elapsed := effect.clock.advance(ctx.Now)
	if effect.period <= 0 || elapsed%effect.period < effect.period/2 {
		fill(ctx.Surface, effect.on)
		return
	}
	fill(ctx.Surface, effect.off)
}

func (effect *Blink) Pause() { effect.clock.pause() }

func (effect *Blink) Resume() {
	if !effect.clock.paused {
		return
	}
	effect.clock.resume()
	effect.clock.reset()
}
