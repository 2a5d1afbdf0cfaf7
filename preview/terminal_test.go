package preview

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/TeamNorCal/fxstrip/model"
)

func newTestTerminal(t *testing.T, width, height int) (term *Terminal, screen tcell.SimulationScreen) {
	screen = tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(screen)
	if err != nil {
		t.Fatal(err.Error())
	}
	screen.SetSize(width, height)
	return term, screen
}

func TestDrawPixels(t *testing.T) {
	term, screen := newTestTerminal(t, 4, 3)
	defer screen.Fini()

	frame := &model.Frame{
		Incoming: -1,
		Pixels: []color.RGBA{
			{R: 255}, {G: 255}, {B: 255}, {R: 10, G: 20, B: 30},
			{R: 255, B: 255},
		},
	}
	term.Draw(frame)

	for i, pixel := range frame.Pixels {
		x, y := i%4, i/4
		r, _, style, _ := screen.GetContent(x, y)
		if r != ledRune {
			t.Errorf("pixel %d at %d,%d expected %q got %q", i, x, y, ledRune, r)
		}
		expected := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(pixel.R), int32(pixel.G), int32(pixel.B)))
		if style != expected {
			t.Errorf("pixel %d at %d,%d has the wrong style", i, x, y)
		}
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		frame    model.Frame
		expected string
	}{
		{model.Frame{Current: 2, Incoming: -1}, "effect 2"},
		{model.Frame{Current: 0, Incoming: 1, Progress: 255}, "effect 0 -> 1 100%"},
		{model.Frame{Current: 3, Incoming: 0, Progress: 0}, "effect 3 -> 0 0%"},
	}
	for _, test := range tests {
		if got := statusLine(&test.frame); got != test.expected {
			t.Errorf("expected %q got %q", test.expected, got)
		}
	}
}

func TestDrawStatusRow(t *testing.T) {
	term, screen := newTestTerminal(t, 20, 2)
	defer screen.Fini()

	term.Draw(&model.Frame{Current: 1, Incoming: -1, Pixels: make([]color.RGBA, 40)})

	line := ""
	for x := 0; x < 8; x++ {
		r, _, _, _ := screen.GetContent(x, 1)
		line += string(r)
	}
	if line != "effect 1" {
		t.Fatalf("status row expected %q got %q", "effect 1", line)
	}
}

// finiScreen records when the screen has been restored
type finiScreen struct {
	tcell.SimulationScreen
	once  sync.Once
	finiC chan struct{}
}

func (screen *finiScreen) Fini() {
	screen.once.Do(func() { close(screen.finiC) })
	screen.SimulationScreen.Fini()
}

func newFiniScreen() *finiScreen {
	return &finiScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8"), finiC: make(chan struct{})}
}

func TestRunStopKeyRestoresFirst(t *testing.T) {
	screen := newFiniScreen()
	term, err := NewTerminal(screen)
	if err != nil {
		t.Fatal(err.Error())
	}

	stopC := make(chan struct{})
	quitC := make(chan struct{})
	defer close(quitC)

	go term.Run(make(chan *model.Frame), stopC, quitC)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-stopC:
	case <-time.After(5 * time.Second):
		t.Fatal("stop key did not end the preview")
	}
	select {
	case <-screen.finiC:
	default:
		t.Fatal("stop was signalled before the terminal was restored")
	}

	select {
	case <-term.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("preview did not finish")
	}
}

func TestRunQuitRestores(t *testing.T) {
	screen := newFiniScreen()
	term, err := NewTerminal(screen)
	if err != nil {
		t.Fatal(err.Error())
	}

	quitC := make(chan struct{})
	go term.Run(make(chan *model.Frame), make(chan struct{}), quitC)
	close(quitC)

	select {
	case <-term.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("preview did not finish")
	}
	select {
	case <-screen.finiC:
	default:
		t.Fatal("preview finished without restoring the terminal")
	}
}
