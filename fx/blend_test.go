package fx

import (
	"image/color"
	"testing"
)

func TestBlendPixelLaw(t *testing.T) {
	a := color.RGBA{R: 200, G: 10, B: 255, A: 40}
	b := color.RGBA{R: 30, G: 250, B: 255, A: 0}

	for p := 0; p <= 255; p++ {
		progress := uint8(p)
		inv := 255 - p
		expect := func(x, y uint8) uint8 {
			v := int(x)*inv/255 + int(y)*p/255
			if v > 255 {
				v = 255
			}
			return uint8(v)
		}
		got := BlendPixel(a, b, progress)
		want := color.RGBA{R: expect(a.R, b.R), G: expect(a.G, b.G), B: expect(a.B, b.B), A: expect(a.A, b.A)}
		if got != want {
			t.Fatalf("progress %d expected %v got %v", p, want, got)
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	b := color.RGBA{R: 250, G: 251, B: 252, A: 253}
	if got := BlendPixel(a, b, 0); got != a {
		t.Errorf("progress 0 expected %v got %v", a, got)
	}
	if got := BlendPixel(a, b, 255); got != b {
		t.Errorf("progress 255 expected %v got %v", b, got)
	}
}

func TestBlendShortBuffers(t *testing.T) {
	dst := make([]color.RGBA, 4)
	a := []color.RGBA{magenta, magenta}
	b := []color.RGBA{green, green, green}
	Blend(dst, a, b, 255)
	if dst[0] != green || dst[1] != green {
		t.Errorf("expected the first two pixels to be green, got %v", dst[:2])
	}
	if dst[2] != black || dst[3] != black {
		t.Errorf("pixels beyond the shortest surface were written, got %v", dst[2:])
	}
}
