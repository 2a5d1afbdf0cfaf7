/*
Package preview draws rendered frames onto a terminal, one character cell per
LED, so that playlists can be tried out without any hardware attached.
*/
package preview

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/fxstrip/model"
)

var logger = logxi.New("preview")

// ledRune is drawn for every LED
const ledRune = '█'

// Terminal renders frames to a tcell screen
type Terminal struct {
	screen tcell.Screen
	fini   sync.Once
	doneC  chan struct{}
}

// NewTerminal initializes screen for use as a preview
func NewTerminal(screen tcell.Screen) (term *Terminal, err errors.Error) {
	if errGo := screen.Init(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen, doneC: make(chan struct{})}, nil
}

// Done is closed once Run has returned and the terminal has been restored
func (term *Terminal) Done() <-chan struct{} {
	return term.doneC
}

func (term *Terminal) finish() {
	term.fini.Do(term.screen.Fini)
}

// Draw renders a frame, wrapping the strip across rows when it is wider than
// the screen.  The last row shows the effect indices and transition progress.
func (term *Terminal) Draw(frame *model.Frame) {
	width, height := term.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	for i, pixel := range frame.Pixels {
		x, y := i%width, i/width
		if y >= height-1 {
			break
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(pixel.R), int32(pixel.G), int32(pixel.B)))
		term.screen.SetContent(x, y, ledRune, nil, style)
	}

	status := statusLine(frame)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		term.screen.SetContent(x, height-1, r, nil, tcell.StyleDefault)
	}
	term.screen.Show()
}

func statusLine(frame *model.Frame) string {
	if frame.Incoming < 0 {
		return fmt.Sprintf("effect %d", frame.Current)
	}
	return fmt.Sprintf("effect %d -> %d %d%%", frame.Current, frame.Incoming, int(frame.Progress)*100/255)
}

// Run draws every frame received on frameC until quitC is closed or a key
// that ends the preview is pressed, in which case the terminal is restored
// and then stopC is closed
func (term *Terminal) Run(frameC <-chan *model.Frame, stopC chan<- struct{}, quitC <-chan struct{}) {
	defer close(term.doneC)
	defer term.finish()

	eventC := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := term.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventC <- ev:
			default:
			}
		}
	}()

	for {
		select {
		case frame := <-frameC:
			if frame != nil {
				term.Draw(frame)
			}
		case ev := <-eventC:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					logger.Debug("preview stopped by key")
					term.finish()
					close(stopC)
					return
				}
			case *tcell.EventResize:
				term.screen.Clear()
				term.screen.Sync()
			}
		case <-quitC:
			return
		}
	}
}
