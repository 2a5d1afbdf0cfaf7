package fxstrip

// This file wires the render loop to its frame consumers and control sources

import (
	"net/url"
	"time"

	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/fxstrip/model"
)

// Options controls which outputs and control sources a Gateway starts
type Options struct {
	Refresh   time.Duration // Interval between rendered frames
	OPCServer string        // host:port of an OPC server, empty to disable
	Remote    *url.URL      // Remote control document, nil to disable
	Poll      time.Duration // Interval between remote control polls
}

// Gateway runs a playlist, broadcasting the frames it renders
type Gateway struct {
	Player *Player
	subs   *Subs
}

// Start builds the engine for the playlist and starts the render loop along
// with the outputs requested in opts.  The returned channel can be used to add
// further frame subscribers.
func (gw *Gateway) Start(pl *Playlist, opts Options, errorC chan<- errors.Error, quitC <-chan struct{}) (subscribeC chan chan *model.Frame, err errors.Error) {

	engine, err := pl.Build()
	if err != nil {
		return nil, err
	}
	transition, dwell, err := pl.Timing()
	if err != nil {
		return nil, err
	}

	if opts.Refresh <= 0 {
		opts.Refresh = 20 * time.Millisecond
	}
	if opts.Poll <= 0 {
		opts.Poll = time.Second
	}

	frameC, subscribeC, subs := startFanOut(quitC)
	gw.subs = subs

	gw.Player = NewPlayer(engine, transition, dwell)
	go gw.Player.Run(opts.Refresh, frameC, quitC)

	logger.Info("playlist started", "playlist", pl.Name, "leds", engine.NumLeds(), "effects", engine.Len())

	// After creating the broadcast channel we add a listener
	// for the fadecandy so that it can push frames to the LEDs
	//
	if len(opts.OPCServer) != 0 {
		StartFadeCandy(opts.OPCServer, pl.Channel, opts.Refresh, subscribeC, errorC, quitC)
	}

	if opts.Remote != nil {
		go NewRemote(*opts.Remote, gw.Player.Requests(), errorC).Run(opts.Poll, quitC)
	}

	return subscribeC, nil
}

// Subscribers is the number of frame subscribers currently attached
func (gw *Gateway) Subscribers() int {
	if gw.subs == nil {
		return 0
	}
	return gw.subs.Len()
}
