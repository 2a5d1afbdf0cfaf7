/*
Package effects contains implementations of effects that can be registered
with an fx.Engine.  Time based effects only count the time they are running,
pausing an effect freezes its animation until it is resumed.
*/
package effects

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/TeamNorCal/fxstrip/fx"
)

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b}
}

func fill(buf []color.RGBA, c color.RGBA) {
	for i := range buf {
		buf[i] = c
	}
}

// Solid fills the strip with a single color
type Solid struct {
	name  string
	color color.RGBA
}

// NewSolid creates a Solid effect
func NewSolid(name string, c colorful.Color) *Solid {
	return &Solid{name: name, color: toRGBA(c)}
}

func (effect *Solid) Name() string { return effect.name }

// Draw generates an animation frame
func (effect *Solid) Draw(ctx fx.DrawContext) {
	fill(ctx.Surface, effect.color)
}

func (effect *Solid) Pause()  {}
func (effect *Solid) Resume() {}

// Gradient paints a static gradient along the strip, interpolated in Lab
// space between two colors
type Gradient struct {
	name     string
	from, to colorful.Color
	cache    []color.RGBA
}

// NewGradient creates a Gradient effect running from one end of the strip to
// the other
func NewGradient(name string, from, to colorful.Color) *Gradient {
	return &Gradient{name: name, from: from, to: to}
}

func (effect *Gradient) Name() string { return effect.name }

// Draw generates an animation frame
func (effect *Gradient) Draw(ctx fx.DrawContext) {
	if len(effect.cache) != len(ctx.Surface) {
		effect.cache = make([]color.RGBA, len(ctx.Surface))
		last := float64(len(ctx.Surface) - 1)
		for i := range effect.cache {
			t := 0.0
			if last > 0 {
				t = float64(i) / last
			}
			effect.cache[i] = toRGBA(effect.from.BlendLab(effect.to, t))
		}
	}
	copy(ctx.Surface, effect.cache)
}

func (effect *Gradient) Pause()  {}
func (effect *Gradient) Resume() {}
