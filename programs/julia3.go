package programs

import _ "embed"

//go:embed shaders/julia3.frag
var julia3Fragment string

func init() {
	NewProgram(Program{
		Name:           "julia3",
		Description:    "cubic julia set",
		FragmentShader: julia3Fragment,
	})
}
