package programs

import _ "embed"

//go:embed shaders/julia.frag
var juliaFragment string

func init() {
	NewProgram(Program{
		Name:           "julia",
		Description:    "quadratic julia set orbiting c around the main cardioid",
		FragmentShader: juliaFragment,
	})
}
