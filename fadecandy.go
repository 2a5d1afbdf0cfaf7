package fxstrip

// This file contains a function that when started will listen for rendered
// frames and will keep the latest one in a data structure that another
// function checks for on a regular basis and uses to update the LEDs attached
// to one or more fadecandy device(s) using the Open Pixel Control protocol

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kellydunn/go-opc"

	"github.com/TeamNorCal/fxstrip/model"
)

// LastFrame holds the most recent frame received from the render loop
type LastFrame struct {
	frame *model.Frame
	sync.Mutex
}

// opcPixels is the portion of a frame that is hashed to detect changes, frame
// sequence numbers and times change every frame even when the pixels do not
type opcPixels struct {
	Pixels []color.RGBA
}

// opcSender is implemented by *opc.Client
type opcSender interface {
	Send(m *opc.Message) error
}

// StartFadeCandy subscribes to rendered frames and pushes them to the OPC
// server every refresh interval, skipping frames that are identical to the
// one last sent
func StartFadeCandy(server string, channel uint8, refresh time.Duration, subscribeC chan chan *model.Frame, errorC chan<- errors.Error, quitC <-chan struct{}) {

	frameC := make(chan *model.Frame, 1)
	subscribeC <- frameC

	last := &LastFrame{}

	go func() {
		defer close(frameC)
		for {
			select {
			case frame := <-frameC:
				if nil == frame {
					continue
				}
				last.Lock()
				last.frame = frame
				last.Unlock()
			case <-quitC:
				return
			}
		}
	}()

	go runFadeCandyOPC(last, server, channel, refresh, errorC, quitC)
}

// MaxOPCLeds is the number of RGB pixels that fit into the 16 bit length of
// an OPC message
const MaxOPCLeds = 0xFFFF / 3

// clampOPC limits pixels to what a single OPC message can carry
func clampOPC(pixels []color.RGBA) []color.RGBA {
	if len(pixels) > MaxOPCLeds {
		return pixels[:MaxOPCLeds]
	}
	return pixels
}

func pixelsMessage(channel uint8, pixels []color.RGBA) (m *opc.Message) {
	pixels = clampOPC(pixels)

	m = opc.NewMessage(channel)
	m.SetLength(uint16(len(pixels) * 3))

	for i, pixel := range pixels {
		m.SetPixelColor(i, pixel.R, pixel.G, pixel.B)
	}
	return m
}

// sendPixels transmits the pixels unless they hash to the same value as last,
// returning the hash of what is now on the strip
func sendPixels(oc opcSender, channel uint8, pixels []color.RGBA, last []byte) (hash []byte, err errors.Error) {
	hash = structhash.Md5(opcPixels{Pixels: pixels}, 1)
	if bytes.Equal(last, hash) {
		return last, nil
	}

	if errGo := oc.Send(pixelsMessage(channel, pixels)); errGo != nil {
		return last, errors.Wrap(errGo).With("channel", channel).With("stack", stack.Trace().TrimRuntime())
	}
	return hash, nil
}

func reportError(err errors.Error, errorC chan<- errors.Error) {
	select {
	case errorC <- err:
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

func runFadeCandyOPC(status *LastFrame, server string, channel uint8, refresh time.Duration, errorC chan<- errors.Error, quitC <-chan struct{}) {

	last := []byte{}

	oc := opc.NewClient()
	connected := false
	retryAt := time.Time{}

	connect := func() {
		if errGo := oc.Connect("tcp", server); errGo != nil {
			retryAt = time.Now().Add(time.Second)
			reportError(errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime()), errorC)
			return
		}
		logger.Info("connected to OPC server", "url", server)
		connected = true
		// Force the next frame out onto the new connection
		last = []byte{}
	}
	connect()

	for {
		select {
		case <-time.After(refresh):
			if !connected {
				if time.Now().Before(retryAt) {
					continue
				}
				connect()
				if !connected {
					continue
				}
			}

			status.Lock()
			frame := status.frame
			status.Unlock()

			if frame == nil {
				continue
			}

			hash, err := sendPixels(oc, channel, frame.Pixels, last)
			if err != nil {
				connected = false
				reportError(err.With("url", server), errorC)
				continue
			}
			last = hash

		case <-quitC:
			return
		}
	}
}
