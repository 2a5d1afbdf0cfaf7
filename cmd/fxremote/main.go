package main

// fxremote serves the remote control document polled by fxstrip, allowing
// effects to be selected using plain HTTP requests such as
// "curl http://host:8080/switch/3" or "curl http://host:8080/next"

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/karlmutch/envflag"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/fxstrip/model"
)

var (
	listen = flag.String("listen", ":8080", "Address to bind to")
	fade   = flag.Duration("fade", 0, "Crossfade duration advertised to players, 0 leaves the playlist default in place")
	cycle  = flag.Duration("cycle", 0, "When not zero the next counter is incremented on this interval")
)

type controlState struct {
	ctl model.Control
	sync.Mutex
}

var (
	// create Logger interface
	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stdout), "fxremote")

	state = &controlState{
		ctl: model.Control{Effect: -1},
	}
)

func (cs *controlState) current() (ctl *model.Control) {
	cs.Lock()
	defer cs.Unlock()
	return cs.ctl.DeepCopy()
}

func (cs *controlState) switchTo(effect int) {
	cs.Lock()
	defer cs.Unlock()
	cs.ctl.Effect = effect
}

func (cs *controlState) next() {
	cs.Lock()
	defer cs.Unlock()
	cs.ctl.Next++
	// Once the player has moved on the effect selection no longer describes
	// what is on display
	cs.ctl.Effect = -1
}

func main() {

	if !flag.Parsed() {
		envflag.Parse()
	}

	if *fade > 0 {
		state.ctl.Fade = fade.String()
	}

	if *cycle > 0 {
		go autoCycle(*cycle)
	}

	http.HandleFunc("/", serveHandler)

	if errGo := http.ListenAndServe(*listen, nil); errGo != nil {
		logW.Warn(errGo.Error())
		os.Exit(-1)
	}
}

func autoCycle(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for range tick.C {
		state.next()
		logW.Debug("cycled to the next effect")
	}
}

func serveSwitch(w http.ResponseWriter, r *http.Request) {
	idx, errGo := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/switch/"))
	if errGo != nil || idx < 0 {
		http.Error(w, "switch paths must end in an effect index", http.StatusBadRequest)
		return
	}
	state.switchTo(idx)
	logW.Debug(fmt.Sprintf("switching to %d", idx))
	serveControl(w, r)
}

func serveControl(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if errGo := json.NewEncoder(w).Encode(state.current()); errGo != nil {
		logW.Warn(errGo.Error())
	}
}

func serveHandler(w http.ResponseWriter, r *http.Request) {

	switch {
	case strings.HasPrefix(r.URL.Path, "/switch/"):
		serveSwitch(w, r)
	case r.URL.Path == "/next":
		state.next()
		logW.Debug("next effect requested")
		serveControl(w, r)
	case r.URL.Path == "/" || r.URL.Path == "/control":
		serveControl(w, r)
	default:
		http.NotFound(w, r)
	}
}
