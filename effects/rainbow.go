package effects

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/TeamNorCal/fxstrip/fx"
)

// Rainbow cycles the hue of the strip over Period, with the hue spread across
// the strip by Spread degrees
type Rainbow struct {
	name   string
	period time.Duration
	spread float64
	clock  clock
}

// NewRainbow creates a Rainbow effect, a zero period leaves the hue fixed
func NewRainbow(name string, period time.Duration, spread float64) *Rainbow {
	return &Rainbow{name: name, period: period, spread: spread}
}

func (effect *Rainbow) Name() string { return effect.name }

// Draw generates an animation frame
func (effect *Rainbow) Draw(ctx fx.DrawContext) {
	elapsed := effect.clock.advance(ctx.Now)

	base := 0.0
	if effect.period > 0 {
		base = 360.0 * float64(elapsed%effect.period) / float64(effect.period)
	}

	n := float64(len(ctx.Surface))
	for i := range ctx.Surface {
		hue := math.Mod(base+effect.spread*float64(i)/n, 360.0)
		if hue < 0 {
			hue += 360.0
		}
		ctx.Surface[i] = toRGBA(colorful.Hsv(hue, 1.0, 1.0))
	}
}

// Pause freezes the hue cycle
func (effect *Rainbow) Pause() { effect.clock.pause() }

// Resume continues the hue cycle from where it was paused
func (effect *Rainbow) Resume() { effect.clock.resume() }
