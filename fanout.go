package fxstrip

import (
	"sync"
	"time"

	"github.com/TeamNorCal/fxstrip/model"
)

// Subs holds the channels frames are broadcast to
type Subs struct {
	subs []chan *model.Frame
	sync.Mutex
}

// Len is the number of active subscriptions
func (subs *Subs) Len() int {
	subs.Lock()
	defer subs.Unlock()
	return len(subs.subs)
}

// send delivers a frame to a single subscriber, returning false if the
// subscriber has closed its channel
func send(ch chan *model.Frame, frame *model.Frame, timeout time.Duration) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			alive = false
		}
	}()

	select {
	case ch <- frame:
	case <-time.After(timeout):
		logger.Debug("subscription failed to send", "seq", frame.Seq)
	}
	return true
}

// startFanOut implement a broadcast mechanisim for accepting rendered frames
// and relaying them to subscribers.  The function returns a single channel
// to which frames get sent and, a channel that can be used to add
// listeners.  Every subscriber receives its own copy of a frame.
//
func startFanOut(quitC <-chan struct{}) (inC chan *model.Frame, subC chan chan *model.Frame, subs *Subs) {

	inC = make(chan *model.Frame, 1)
	subC = make(chan chan *model.Frame, 1)
	subs = &Subs{
		subs: []chan *model.Frame{},
	}

	go func(quitC <-chan struct{}) {
		defer logger.Debug("fanout stopped")
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					subs.Lock()
					subs.subs = append(subs.subs, sub)
					subs.Unlock()
					logger.Debug("subscription added")
				}
			case frame := <-inC:
				if frame == nil {
					continue
				}
				// Subscribers are groomed out when their channel has been closed
				// using https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
				subs.Lock()
				newSubs := subs.subs[:0]
				for _, ch := range subs.subs {
					if send(ch, frame.DeepCopy(), 20*time.Millisecond) {
						newSubs = append(newSubs, ch)
						continue
					}
					logger.Debug("subscription dropped")
				}
				subs.subs = newSubs
				subs.Unlock()
			}
		}
	}(quitC)

	return inC, subC, subs
}
