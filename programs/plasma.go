package programs

import _ "embed"

//go:embed shaders/plasma.frag
var plasmaFragment string

func init() {
	NewProgram(Program{
		Name:           "plasma",
		Description:    "sine plasma",
		FragmentShader: plasmaFragment,
	})
}
