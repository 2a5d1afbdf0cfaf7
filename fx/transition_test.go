package fx

import (
	"testing"
	"time"
)

func TestTransitionProgress(t *testing.T) {
	tr := Transition{}
	tr.Start(time.Second, 100*time.Millisecond)

	tests := []struct {
		now      time.Duration
		expected uint8
	}{
		{500 * time.Millisecond, 0},
		{time.Second, 0},
		{time.Second + 50*time.Millisecond, 127},
		{time.Second + 99*time.Millisecond, 252},
		{time.Second + 100*time.Millisecond, 255},
		{time.Hour, 255},
	}
	for _, test := range tests {
		if got := tr.Progress(test.now); got != test.expected {
			t.Errorf("progress at %v expected %d got %d", test.now, test.expected, got)
		}
	}
}

func TestTransitionMonotone(t *testing.T) {
	tr := Transition{}
	tr.Start(0, 1234*time.Millisecond)

	last := uint8(0)
	for now := time.Duration(0); now <= 2*time.Second; now += time.Millisecond {
		p := tr.Progress(now)
		if p < last {
			t.Fatalf("progress went backwards at %v, %d after %d", now, p, last)
		}
		last = p
	}
	if last != 255 {
		t.Fatalf("progress did not saturate, ended at %d", last)
	}
}

func TestTransitionZeroDuration(t *testing.T) {
	tr := Transition{}
	tr.Start(10*time.Millisecond, 0)
	if p := tr.Progress(10 * time.Millisecond); p != 255 {
		t.Fatalf("zero duration transition expected 255 got %d", p)
	}
}

func TestTransitionIdle(t *testing.T) {
	tr := Transition{}
	if p := tr.Progress(0); p != 255 {
		t.Fatalf("idle transition expected 255 got %d", p)
	}
	tr.Start(0, time.Second)
	tr.Stop()
	if p := tr.Progress(0); p != 255 {
		t.Fatalf("stopped transition expected 255 got %d", p)
	}
}
