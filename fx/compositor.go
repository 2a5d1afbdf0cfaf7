package fx

import "image/color"

// Layer is an off screen surface an effect is rendered into
type Layer struct {
	Surface []color.RGBA
}

// Compositor owns the off screen layers used by the engine, each sized to the
// strip length and allocated once for the lifetime of the compositor
type Compositor struct {
	Layers []*Layer
}

const numLayers = 2

// NewCompositor allocates the layers for a strip of numLeds pixels
func NewCompositor(numLeds int) (comp *Compositor) {
	if numLeds < 0 {
		numLeds = 0
	}
	comp = &Compositor{
		Layers: make([]*Layer, numLayers),
	}
	for idx := range comp.Layers {
		// Create a slice filled with zero values
		comp.Layers[idx] = &Layer{Surface: make([]color.RGBA, numLeds)}
	}
	return comp
}
