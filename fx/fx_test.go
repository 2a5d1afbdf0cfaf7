package fx

import (
	"image/color"
	"time"
)

// recorder is a fake effect that fills its surface with a single color and
// keeps a log of the calls made to it
type recorder struct {
	name    string
	fill    color.RGBA
	draws   int
	pauses  int
	resumes int
	lastNow time.Duration
	events  *[]string
}

func newRecorder(name string, fill color.RGBA, events *[]string) (rec *recorder) {
	return &recorder{name: name, fill: fill, events: events}
}

func (rec *recorder) Name() string { return rec.name }

func (rec *recorder) Draw(ctx DrawContext) {
	rec.draws++
	rec.lastNow = ctx.Now
	for i := range ctx.Surface {
		ctx.Surface[i] = rec.fill
	}
}

func (rec *recorder) Pause() {
	rec.pauses++
	if rec.events != nil {
		*rec.events = append(*rec.events, rec.name+".pause")
	}
}

func (rec *recorder) Resume() {
	rec.resumes++
	if rec.events != nil {
		*rec.events = append(*rec.events, rec.name+".resume")
	}
}

var (
	magenta = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	green   = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	black   = color.RGBA{}
)
