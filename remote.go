package fxstrip

// This module implements a poller for a remote control document served over
// HTTP.  Changes to the document are turned into requests for the render
// loop, allowing effects to be selected from other devices.

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/fxstrip/model"
)

type remote struct {
	url      url.URL
	client   *http.Client
	requestC chan<- *model.Request
	errorC   chan<- errors.Error

	last *model.Control
}

// NewRemote creates a poller for the control document at url, requests being
// delivered to requestC
func NewRemote(url url.URL, requestC chan<- *model.Request, errorC chan<- errors.Error) (rem *remote) {
	return &remote{
		url:      url,
		client:   &http.Client{Timeout: 2 * time.Second},
		requestC: requestC,
		errorC:   errorC,
	}
}

// checkRemote retrieves the current control document
//
func (rem *remote) checkRemote() (ctl *model.Control, err errors.Error) {

	switch rem.url.Scheme {
	case "http", "https":
	default:
		errGo := fmt.Errorf("unknown scheme %s for the remote control URI", rem.url.Scheme)
		return nil, errors.Wrap(errGo).With("url", rem.url.String()).With("stack", stack.Trace().TrimRuntime())
	}

	resp, errGo := rem.client.Get(rem.url.String())
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("url", rem.url.String()).With("stack", stack.Trace().TrimRuntime())
	}

	body, errGo := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("url", rem.url.String()).With("stack", stack.Trace().TrimRuntime())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status").With("url", rem.url.String()).With("status", resp.Status).With("stack", stack.Trace().TrimRuntime())
	}

	ctl = &model.Control{Effect: -1}
	if errGo = json.Unmarshal(body, ctl); errGo != nil {
		return nil, errors.Wrap(errGo).With("url", rem.url.String()).With("body", string(body)).With("stack", stack.Trace().TrimRuntime())
	}
	return ctl, nil
}

// requests compares a control document with the last one seen and returns
// the requests needed to act on the differences.  The first document only
// establishes the baseline for the next counter, an increase of the counter
// yields a single Next request.
func (rem *remote) requests(ctl *model.Control) (reqs []*model.Request, err errors.Error) {

	fade := time.Duration(0)
	if len(ctl.Fade) != 0 {
		d, errGo := time.ParseDuration(ctl.Fade)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("url", rem.url.String()).With("fade", ctl.Fade).With("stack", stack.Trace().TrimRuntime())
		}
		fade = d
	}

	last := rem.last
	rem.last = ctl.DeepCopy()

	if ctl.Effect >= 0 && (last == nil || last.Effect != ctl.Effect) {
		reqs = append(reqs, &model.Request{Kind: model.SwitchRequest, Index: ctl.Effect, Duration: fade})
	}

	// Only one advance is made per changed counter however far it moved, the
	// counter may have been reset or bumped many times between polls
	if last != nil && ctl.Next > last.Next {
		reqs = append(reqs, &model.Request{Kind: model.NextRequest, Duration: fade})
	}
	return reqs, nil
}

func (rem *remote) sendError(err errors.Error) {
	go func(err errors.Error) {
		select {
		case rem.errorC <- err:
		case <-time.After(500 * time.Millisecond):
			fmt.Fprintf(os.Stderr, "could not send error for remote control update %s\n", err.Error())
		}
	}(err)
}

func (rem *remote) poll() {
	ctl, err := rem.checkRemote()
	if err != nil {
		rem.sendError(err)
		return
	}

	reqs, err := rem.requests(ctl)
	if err != nil {
		rem.sendError(err)
		return
	}

	for _, req := range reqs {
		select {
		case rem.requestC <- req:
		case <-time.After(750 * time.Millisecond):
			rem.sendError(errors.New("remote request dropped").With("url", rem.url.String()).With("stack", stack.Trace().TrimRuntime()))
		}
	}
}

// Run polls the remote control document every interval until quitC is closed
//
func (rem *remote) Run(interval time.Duration, quitC <-chan struct{}) {

	poll := time.NewTicker(interval)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			rem.poll()

		case <-quitC:
			return
		}
	}
}
