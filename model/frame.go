package model

// This module defines the messages exchanged between the render loop and the
// components that consume its output or control it

import (
	"image/color"
	"time"
)

// Frame is a single rendered frame of the strip
type Frame struct {
	Seq      uint64        `json:"seq"`
	Time     time.Duration `json:"time"`     // Time offset the frame was rendered for
	Current  int           `json:"current"`  // Index of the effect on display, the outgoing one during a transition
	Incoming int           `json:"incoming"` // Index of the incoming effect, -1 when idle
	Progress uint8         `json:"progress"` // 0..255 progress of the running transition
	Pixels   []color.RGBA  `json:"pixels"`
}

// DeepCopy copies the frame, including its pixels, so the result can be handed
// to another goroutine
func (frame *Frame) DeepCopy() (cpy *Frame) {
	cpy = &Frame{}
	*cpy = *frame
	cpy.Pixels = make([]color.RGBA, len(frame.Pixels))
	copy(cpy.Pixels, frame.Pixels)
	return cpy
}

// RequestKind identifies the type of a control Request
type RequestKind int

const (
	SwitchRequest RequestKind = iota // Crossfade to the effect at Request.Index
	NextRequest                      // Crossfade to the effect following the current one
)

// Request is a control message for the render loop
type Request struct {
	Kind     RequestKind   `json:"kind"`
	Index    int           `json:"index"`
	Duration time.Duration `json:"duration"` // Crossfade duration, 0 uses the playlist default
}

// Control is the document served to remote controllers.  Effect selects an
// effect by index, -1 leaving the selection alone.  Next is a counter, a
// poll that sees it increased advances once to the following effect.
type Control struct {
	Effect int    `json:"effect"`
	Next   uint64 `json:"next"`
	Fade   string `json:"fade,omitempty"` // Optional crossfade duration, time.ParseDuration syntax
}

// DeepCopy copies the control document, it holds no references so a plain
// copy suffices
func (ctl *Control) DeepCopy() (cpy *Control) {
	cpy = &Control{}
	*cpy = *ctl
	return cpy
}
