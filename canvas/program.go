package canvas

import (
	_ "embed"
)

// VertexShader is the built-in pass-through vertex stage. It forwards
// a_position to clip space unchanged.
//
//go:embed shaders/fullscreen.vert
var VertexShader string

// Names every fragment source used with a Canvas must agree on.
const (
	PositionAttrib    = "a_position"
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_time"
)

// Program is a linked GPU program together with its resolved uniform
// locations.
type Program struct {
	ID       uint32
	Vertex   uint32
	Fragment uint32
	Linked   bool
	Valid    bool

	// Validation holds the non-fatal validation report, if any.
	Validation *ValidateError

	resolutionLoc int32
	timeLoc       int32
}

// BuildProgram compiles vertexSource and fragmentSource, links them into a
// program, validates it and makes it the active program.
//
// Compile and link failures return a *CompileError or *LinkError and leave no
// GPU objects behind. A validation failure is recorded on the returned
// program and does not prevent its use.
func BuildProgram(gl GL, vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := compileShader(gl, VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}

	fragment, err := compileShader(gl, FragmentStage, fragmentSource)
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, err
	}

	p := &Program{
		ID:       gl.CreateProgram(),
		Vertex:   vertex,
		Fragment: fragment,
	}
	gl.AttachShader(p.ID, vertex)
	gl.AttachShader(p.ID, fragment)
	gl.LinkProgram(p.ID)

	// The program keeps its own copy of the compiled stages once linked.
	defer gl.DeleteShader(vertex)
	defer gl.DeleteShader(fragment)

	if !gl.ProgramLinked(p.ID) {
		log := gl.ProgramInfoLog(p.ID)
		gl.DeleteProgram(p.ID)
		return nil, &LinkError{Log: log}
	}
	p.Linked = true
	gl.DetachShader(p.ID, vertex)
	gl.DetachShader(p.ID, fragment)

	gl.ValidateProgram(p.ID)
	p.Valid = gl.ProgramValidated(p.ID)
	if !p.Valid {
		p.Validation = &ValidateError{Log: gl.ProgramInfoLog(p.ID)}
	}

	gl.UseProgram(p.ID)
	p.resolutionLoc = gl.UniformLocation(p.ID, ResolutionUniform)
	p.timeLoc = gl.UniformLocation(p.ID, TimeUniform)

	return p, nil
}

func compileShader(gl GL, stage Stage, source string) (uint32, error) {
	shader := gl.CreateShader(stage)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if !gl.ShaderCompiled(shader) {
		log := gl.ShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, &CompileError{
			Stage:  stage,
			Source: source,
			Log:    log,
		}
	}

	return shader, nil
}

// Delete releases the program object.
func (p *Program) Delete(gl GL) {
	if p == nil || p.ID == 0 {
		return
	}
	gl.DeleteProgram(p.ID)
	p.ID = 0
	p.Linked = false
}
