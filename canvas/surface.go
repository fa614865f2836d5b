package canvas

import "math"

// Dimensions is the drawable size in physical pixels.
type Dimensions struct {
	Width, Height int
}

// surface tracks the drawable size and keeps the viewport in step with it.
type surface struct {
	gl    GL
	scale float64

	dims    Dimensions
	box     Box
	applied bool
}

func newSurface(gl GL, scale float64) *surface {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &surface{gl: gl, scale: scale}
}

// physical converts a logical box to physical pixels. Negative or
// non-finite boxes collapse to zero and sizes beyond what the viewport can
// hold saturate at math.MaxInt32.
func (s *surface) physical(box Box) Dimensions {
	return Dimensions{
		Width:  toPixels(box.Width * s.scale),
		Height: toPixels(box.Height * s.scale),
	}
}

func toPixels(v float64) int {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(v))
}

// resize records box and applies its physical size to both the dimensions
// and the viewport. Nothing runs between the two updates.
func (s *surface) resize(box Box) Dimensions {
	s.box = box
	s.dims = s.physical(box)
	s.gl.Viewport(0, 0, int32(s.dims.Width), int32(s.dims.Height))
	s.applied = true
	return s.dims
}
