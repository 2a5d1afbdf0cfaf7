package fx

// This file contains the engine that renders the active effect each frame and
// crossfades to an incoming effect when a switch is requested

import (
	"image/color"
	"time"

	logxi "github.com/mgutz/logxi/v1"
)

var logger = logxi.New("fx")

// Engine drives a strip of LEDs from a registry of effects.  Each call to Tick
// produces one frame, either the current effect verbatim or, while a
// transition is in flight, a blend of the current and incoming effects.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	numLeds    int
	effects    *Registry
	compositor *Compositor

	current    int
	incoming   int
	transition Transition
}

// NewEngine creates an engine for a strip of numLeds pixels that accepts up to
// DefaultMaxEffects effects
func NewEngine(numLeds int) (engine *Engine) {
	return NewEngineWithCapacity(numLeds, DefaultMaxEffects)
}

// NewEngineWithCapacity creates an engine for a strip of numLeds pixels that
// accepts up to maxEffects effects
func NewEngineWithCapacity(numLeds int, maxEffects int) (engine *Engine) {
	if numLeds < 0 {
		numLeds = 0
	}
	return &Engine{
		numLeds:    numLeds,
		effects:    NewRegistry(maxEffects),
		compositor: NewCompositor(numLeds),
	}
}

// AddEffect registers an effect, returning false when the engine is already
// holding its maximum number of effects
func (engine *Engine) AddEffect(effect Effect) bool {
	if !engine.effects.Add(effect) {
		if logger.IsDebug() {
			logger.Debug("effect rejected", "count", engine.effects.Len(), "max", engine.effects.Cap())
		}
		return false
	}
	return true
}

// NumLeds is the strip length the engine was created for
func (engine *Engine) NumLeds() int {
	return engine.numLeds
}

// Len is the number of registered effects
func (engine *Engine) Len() int {
	return engine.effects.Len()
}

// Cap is the maximum number of effects the engine accepts
func (engine *Engine) Cap() int {
	return engine.effects.Cap()
}

// Effect returns the registered effect at idx, or nil when idx is out of range
func (engine *Engine) Effect(idx int) Effect {
	return engine.effects.At(idx)
}

// Current is the index of the effect currently on display, or the outgoing
// effect while a transition is running
func (engine *Engine) Current() int {
	return engine.current
}

// Incoming returns the index of the effect being faded in, the second return
// value being false when no transition is running
func (engine *Engine) Incoming() (idx int, isPresent bool) {
	return engine.incoming, engine.transition.Active()
}

// Transitioning reports whether a crossfade is in flight
func (engine *Engine) Transitioning() bool {
	return engine.transition.Active()
}

// Progress returns the progress of the running transition at now in the range
// 0..255, and 255 when no transition is running
func (engine *Engine) Progress(now time.Duration) uint8 {
	return engine.transition.Progress(now)
}

// Advance starts a transition to the effect following the current one,
// wrapping around at the end of the registry
func (engine *Engine) Advance(now time.Duration, duration time.Duration) bool {
	if engine.effects.Empty() {
		return false
	}
	return engine.SwitchTo((engine.current+1)%engine.effects.Len(), now, duration)
}

// SwitchTo starts a transition from the current effect to the effect at index
// target lasting duration.
//
// When a transition is already running it is completed immediately before the
// new one starts, only one transition is ever in flight.  false is returned,
// and nothing changes, when the registry is empty or target is not a valid
// index.
func (engine *Engine) SwitchTo(target int, now time.Duration, duration time.Duration) bool {
	if engine.effects.Empty() {
		return false
	}
	if (target < 0 || target >= engine.effects.Len()) && target != engine.current {
		return false
	}

	if engine.transition.Active() {
		if logger.IsDebug() {
			logger.Debug("completing transition early", "from", engine.name(engine.current), "to", engine.name(engine.incoming))
		}
		engine.complete()
	}

	if target == engine.current {
		return true
	}

	engine.incoming = target
	engine.effects.At(target).Resume()
	engine.transition.Start(now, duration)

	if logger.IsDebug() {
		logger.Debug("transition started", "from", engine.name(engine.current), "to", engine.name(target), "duration", duration)
	}
	return true
}

// complete pauses the outgoing effect and makes the incoming effect current
func (engine *Engine) complete() {
	engine.effects.At(engine.current).Pause()
	engine.current = engine.incoming
	engine.transition.Stop()
}

// Tick renders the frame for now into out.  Nothing is written when no effects
// have been registered.
func (engine *Engine) Tick(now time.Duration, out []color.RGBA) {
	if engine.effects.Empty() {
		return
	}

	surface0 := engine.compositor.Layers[0].Surface
	engine.effects.At(engine.current).Draw(DrawContext{Now: now, Surface: surface0})

	if !engine.transition.Active() || engine.effects.Len() < 2 {
		copy(out, surface0)
		return
	}

	surface1 := engine.compositor.Layers[1].Surface
	engine.effects.At(engine.incoming).Draw(DrawContext{Now: now, Surface: surface1})

	progress := engine.transition.Progress(now)
	Blend(out, surface0, surface1, progress)

	if progress == 255 {
		if logger.IsDebug() {
			logger.Debug("transition complete", "from", engine.name(engine.current), "to", engine.name(engine.incoming))
		}
		engine.complete()
	}
}

func (engine *Engine) name(idx int) string {
	effect := engine.effects.At(idx)
	if effect == nil {
		return "none"
	}
	return effectName(effect, idx)
}
