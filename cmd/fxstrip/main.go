package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-stack/stack"
	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/fxstrip"
	"github.com/TeamNorCal/fxstrip/model"
	"github.com/TeamNorCal/fxstrip/preview"
	"github.com/TeamNorCal/fxstrip/version"
)

var (
	logger = logxi.New("fxstrip-cli")

	verbose   = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	playlist  = flag.String("playlist", "playlist.yaml", "The YAML or TOML playlist describing the strip and its effects")
	opcServer = flag.String("opc", "", "host:port of the fadecandy OPC server, leave empty to disable LED output")
	remoteURL = flag.String("remote", "", "URL of a remote control document polled for effect changes, leave empty to disable")
	poll      = flag.Duration("poll", time.Second, "Interval at which the remote control document is polled")
	refresh   = flag.Duration("refresh", 20*time.Millisecond, "Interval between rendered frames")
	showTerm  = flag.Bool("preview", false, "Render the strip in the terminal")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       playlist → effects → OPC (fxstrip)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "fxstrip plays a playlist of effects, crossfading between them, onto OPC based USB fadecandy boards")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	// Turn off logging regardless of the default levels if the verbose flag is not enabled.
	// By design this is a CLI tool and outputs information that is expected to be used by shell
	// scripts etc
	//
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
}

func run() (err errors.Error) {

	pl, err := fxstrip.LoadPlaylist(*playlist)
	if err != nil {
		return err
	}

	opts := fxstrip.Options{
		Refresh:   *refresh,
		OPCServer: *opcServer,
		Poll:      *poll,
	}
	if len(*remoteURL) != 0 {
		u, errGo := url.Parse(*remoteURL)
		if errGo != nil {
			return errors.Wrap(errGo).With("url", *remoteURL).With("stack", stack.Trace().TrimRuntime())
		}
		opts.Remote = u
	}

	quitC := make(chan struct{})
	quit := sync.OnceFunc(func() { close(quitC) })
	defer quit()

	if *showTerm {
		// The terminal preview owns stdout, errors go to the log instead
		msgV = nil
	}

	errC := make(chan errors.Error, 8)
	msgC := make(chan string, 8)
	go msgWatch(msgC, errC, quitC)

	gw := &fxstrip.Gateway{}
	subscribeC, err := gw.Start(pl, opts, errC, quitC)
	if err != nil {
		return err
	}

	stopC := make(chan struct{})
	var term *preview.Terminal

	if *showTerm {
		screen, errGo := tcell.NewScreen()
		if errGo != nil {
			return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
		if term, err = preview.NewTerminal(screen); err != nil {
			return err
		}
		frameC := make(chan *model.Frame, 1)
		subscribeC <- frameC
		go term.Run(frameC, stopC, quitC)
	} else if *verbose {
		go runMonitoring(subscribeC, quitC)
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigC)

	select {
	case <-sigC:
	case <-stopC:
	}
	logger.Debug("stopping")

	quit()
	if term != nil {
		// The process must not exit before the preview has restored the terminal
		select {
		case <-term.Done():
		case <-time.After(2 * time.Second):
		}
	}
	return nil
}
