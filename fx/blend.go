package fx

import "image/color"

// scale8 scales a channel value by frac/255
func scale8(v uint8, frac uint8) uint8 {
	return uint8(uint16(v) * uint16(frac) / 255)
}

// qadd8 is a saturating add
func qadd8(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// BlendPixel cross dissolves two pixels, progress 0 returning a and 255
// returning b.  All four channels are blended with the same weights.
func BlendPixel(a, b color.RGBA, progress uint8) color.RGBA {
	inv := 255 - progress
	return color.RGBA{
		R: qadd8(scale8(a.R, inv), scale8(b.R, progress)),
		G: qadd8(scale8(a.G, inv), scale8(b.G, progress)),
		B: qadd8(scale8(a.B, inv), scale8(b.B, progress)),
		A: qadd8(scale8(a.A, inv), scale8(b.A, progress)),
	}
}

// Blend writes the cross dissolve of surfaces a and b into dst, weighted by
// progress.  Only as many pixels as the shortest of the three buffers are
// written.
func Blend(dst, a, b []color.RGBA, progress uint8) {
	n := len(dst)
	if len(a) < n {
		n = len(a)
	}
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = BlendPixel(a[i], b[i], progress)
	}
}
