package fxstrip

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/fxstrip/model"
)

func newTestRemote(t *testing.T, rawURL string, requestC chan *model.Request) (rem *remote) {
	u, errGo := url.Parse(rawURL)
	if errGo != nil {
		t.Fatal(errGo)
	}
	return NewRemote(*u, requestC, make(chan errors.Error, 8))
}

func TestRemoteRequests(t *testing.T) {
	rem := newTestRemote(t, "http://localhost/control", nil)

	reqs, err := rem.requests(&model.Control{Effect: -1, Next: 5})
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(reqs) != 0 {
		t.Fatalf("first document produced requests %+v", reqs)
	}

	if reqs, err = rem.requests(&model.Control{Effect: 2, Next: 5, Fade: "750ms"}); err != nil {
		t.Fatal(err.Error())
	}
	if len(reqs) != 1 || reqs[0].Kind != model.SwitchRequest || reqs[0].Index != 2 || reqs[0].Duration != 750*time.Millisecond {
		t.Fatalf("expected a single switch to 2, got %+v", reqs)
	}

	if reqs, err = rem.requests(&model.Control{Effect: 2, Next: 7}); err != nil {
		t.Fatal(err.Error())
	}
	if len(reqs) != 1 || reqs[0].Kind != model.NextRequest {
		t.Fatalf("expected one next request, got %+v", reqs)
	}

	if reqs, err = rem.requests(&model.Control{Effect: 2, Next: 7}); err != nil || len(reqs) != 0 {
		t.Fatalf("unchanged document produced requests %+v", reqs)
	}

	if _, err = rem.requests(&model.Control{Effect: 1, Fade: "slowly"}); err == nil {
		t.Fatal("invalid fade was expected to fail")
	}
}

func TestRemoteNextJump(t *testing.T) {
	rem := newTestRemote(t, "http://localhost/control", nil)

	if _, err := rem.requests(&model.Control{Effect: -1}); err != nil {
		t.Fatal(err.Error())
	}

	reqs, err := rem.requests(&model.Control{Effect: -1, Next: 5000000})
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(reqs) != 1 || reqs[0].Kind != model.NextRequest {
		t.Fatalf("a large jump in the next counter produced %d requests", len(reqs))
	}

	// A counter that went backwards, a restarted server for example, only
	// resets the baseline
	if reqs, err = rem.requests(&model.Control{Effect: -1, Next: 2}); err != nil || len(reqs) != 0 {
		t.Fatalf("a reset next counter produced requests %+v", reqs)
	}
	if reqs, err = rem.requests(&model.Control{Effect: -1, Next: 3}); err != nil || len(reqs) != 1 {
		t.Fatalf("expected one next request after the reset, got %+v", reqs)
	}
}

func TestRemoteFirstDocumentSwitches(t *testing.T) {
	rem := newTestRemote(t, "http://localhost/control", nil)

	reqs, err := rem.requests(&model.Control{Effect: 3})
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(reqs) != 1 || reqs[0].Index != 3 {
		t.Fatalf("expected a switch to 3 got %+v", reqs)
	}
}

func TestRemoteCheck(t *testing.T) {
	body := `{"effect": 1, "next": 0}`
	status := http.StatusOK
	lock := sync.Mutex{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		defer lock.Unlock()
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	requestC := make(chan *model.Request, 4)
	rem := newTestRemote(t, server.URL, requestC)

	ctl, err := rem.checkRemote()
	if err != nil {
		t.Fatal(err.Error())
	}
	if ctl.Effect != 1 {
		t.Fatalf("unexpected control document %+v", ctl)
	}

	rem.poll()
	select {
	case req := <-requestC:
		if req.Kind != model.SwitchRequest || req.Index != 1 {
			t.Fatalf("unexpected request %+v", req)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("poll did not produce a request")
	}

	lock.Lock()
	body = `{"effect": `
	lock.Unlock()
	if _, err = rem.checkRemote(); err == nil {
		t.Fatal("truncated document was expected to fail")
	}

	lock.Lock()
	body = `{}`
	status = http.StatusInternalServerError
	lock.Unlock()
	if _, err = rem.checkRemote(); err == nil {
		t.Fatal("server error was expected to fail")
	}
}

func TestRemoteScheme(t *testing.T) {
	rem := newTestRemote(t, "serial:///dev/ttyUSB0", nil)
	if _, err := rem.checkRemote(); err == nil {
		t.Fatal("serial scheme was expected to fail")
	}
}

func TestRemoteMissingEffect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"next": 4}`)
	}))
	defer server.Close()

	rem := newTestRemote(t, server.URL, nil)
	ctl, err := rem.checkRemote()
	if err != nil {
		t.Fatal(err.Error())
	}
	if ctl.Effect != -1 || ctl.Next != 4 {
		t.Fatalf("absent effect expected to decode as -1, got %+v", ctl)
	}
}
