package fxstrip

// This file contains the render loop.  The loop is the only goroutine that
// touches the engine, control requests are passed to it over a channel and
// applied between frames.

import (
	"image/color"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/fxstrip/fx"
	"github.com/TeamNorCal/fxstrip/model"
)

var logger = logxi.New("fxstrip")

// Player renders frames from an engine at a fixed refresh rate
type Player struct {
	engine     *fx.Engine
	transition time.Duration // Default crossfade duration
	dwell      time.Duration // Time an effect is fully on display before auto advancing, 0 disables

	requestC chan *model.Request

	pixels  []color.RGBA
	seq     uint64
	shownAt time.Duration // When the current effect finished fading in
}

// NewPlayer creates a player for engine.  Requests without a duration fade
// over transition and, when dwell is not zero, the player moves to the next
// effect once the current one has been on display for dwell.
func NewPlayer(engine *fx.Engine, transition time.Duration, dwell time.Duration) (player *Player) {
	return &Player{
		engine:     engine,
		transition: transition,
		dwell:      dwell,
		// Allow a few requests to queue up, they are drained every frame
		requestC: make(chan *model.Request, 8),
		pixels:   make([]color.RGBA, engine.NumLeds()),
	}
}

// Requests returns the channel on which control requests are accepted
func (player *Player) Requests() chan<- *model.Request {
	return player.requestC
}

// apply performs a control request against the engine at now, returning false
// when the engine refused it
func (player *Player) apply(req *model.Request, now time.Duration) (accepted bool) {
	if req == nil {
		return false
	}

	duration := req.Duration
	if duration <= 0 {
		duration = player.transition
	}

	switch req.Kind {
	case model.SwitchRequest:
		accepted = player.engine.SwitchTo(req.Index, now, duration)
	case model.NextRequest:
		accepted = player.engine.Advance(now, duration)
	default:
		logger.Warn("unknown request", "kind", req.Kind)
		return false
	}

	if !accepted {
		logger.Warn("request refused", "kind", req.Kind, "index", req.Index, "effects", player.engine.Len())
		return false
	}
	if !player.engine.Transitioning() {
		// The request landed on the effect already being faded in, it is now
		// fully on display
		player.shownAt = now
	}
	return true
}

// autoAdvance moves to the next effect when the current one has been fully on
// display for the dwell time
func (player *Player) autoAdvance(now time.Duration) {
	if player.dwell <= 0 || player.engine.Len() < 2 || player.engine.Transitioning() {
		return
	}
	if now-player.shownAt < player.dwell {
		return
	}
	player.engine.Advance(now, player.transition)
}

// render produces the frame for now
func (player *Player) render(now time.Duration) (frame *model.Frame) {
	player.autoAdvance(now)

	frame = &model.Frame{
		Seq:      player.seq,
		Time:     now,
		Current:  player.engine.Current(),
		Incoming: -1,
		Progress: player.engine.Progress(now),
	}
	if idx, isPresent := player.engine.Incoming(); isPresent {
		frame.Incoming = idx
	}
	player.seq++

	wasTransitioning := player.engine.Transitioning()
	player.engine.Tick(now, player.pixels)
	frame.Pixels = player.pixels

	if wasTransitioning && !player.engine.Transitioning() {
		player.shownAt = now
	}

	return frame
}

// Run renders a frame every refresh interval until quitC is closed, frames
// being sent to frameC.  Frames are dropped rather than stalling the loop when
// frameC is not ready.
func (player *Player) Run(refresh time.Duration, frameC chan<- *model.Frame, quitC <-chan struct{}) {

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	start := time.Now()
	dropped := 0

	for {
		select {
		case req := <-player.requestC:
			player.apply(req, time.Since(start))

		case <-ticker.C:
			frame := player.render(time.Since(start)).DeepCopy()

			select {
			case frameC <- frame:
			default:
				dropped++
				if logger.IsDebug() {
					logger.Debug("frame dropped", "seq", frame.Seq, "dropped", dropped)
				}
			}

		case <-quitC:
			return
		}
	}
}
