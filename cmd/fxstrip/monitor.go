package main

import (
	"fmt"

	"github.com/TeamNorCal/fxstrip/model"
)

// This file implements a monitor that subscribe to and displays
// a summary of the rendered frames using the frame subscription

func runMonitoring(subscribeC chan chan *model.Frame, quitC <-chan struct{}) {

	frameC := make(chan *model.Frame, 1)
	subscribeC <- frameC

	lastCurrent, lastIncoming := -1, -1

	for {
		select {
		case frame := <-frameC:
			if frame == nil {
				continue
			}
			// Only report changes of state, frames arrive at the refresh rate
			if frame.Current != lastCurrent || frame.Incoming != lastIncoming {
				lastCurrent, lastIncoming = frame.Current, frame.Incoming
				logger.Debug(fmt.Sprintf("frame %d current %d incoming %d progress %d", frame.Seq, frame.Current, frame.Incoming, frame.Progress))
			}
		case <-quitC:
			return
		}
	}
}
