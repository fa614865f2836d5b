package programs

import _ "embed"

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

func init() {
	NewProgram(Program{
		Name:           "mandelbrot",
		Description:    "mandelbrot set, zooming into the seahorse valley",
		FragmentShader: mandelbrotFragment,
	})
}
