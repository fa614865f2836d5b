// Package gldriver implements canvas.GL on top of go-gl's OpenGL 4.6 core
// bindings.
package gldriver

import (
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/fragcanvas/canvas"
	"github.com/stewi1014/fragcanvas/log"
)

var logger = log.New("gl")

var _ canvas.GL = (*Driver)(nil)

// Driver issues GL calls against whichever context is current on the calling
// thread.
type Driver struct{}

// New loads the GL function pointers for the current context. It fails with
// a *canvas.ContextError when no usable context is current.
func New() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, &canvas.ContextError{Err: err}
	}
	logger.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return &Driver{}, nil
}

func shaderType(stage canvas.Stage) uint32 {
	if stage == canvas.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func mode(p canvas.Primitive) uint32 {
	if p == canvas.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func (d *Driver) CreateShader(stage canvas.Stage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	source += "\x00"
	defer runtime.KeepAlive(source)
	csources, free := gl.Strs(source)
	defer free()

	gl.ShaderSource(shader, 1, csources, nil)
}

func (d *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var l int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)
	if l == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(l+1))
	gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (d *Driver) programStatus(program, pname uint32) bool {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	return status != gl.FALSE
}

func (d *Driver) ProgramLinked(program uint32) bool {
	return d.programStatus(program, gl.LINK_STATUS)
}

func (d *Driver) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (d *Driver) ProgramValidated(program uint32) bool {
	return d.programStatus(program, gl.VALIDATE_STATUS)
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var l int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)
	if l == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(l+1))
	gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Driver) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, cstr(name))
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (d *Driver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Driver) Uniform2f(location int32, v0, v1 float32) { gl.Uniform2f(location, v0, v1) }

func (d *Driver) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Driver) BindBuffer(buffer uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, buffer) }

func (d *Driver) BufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, 0, 0)
}

func (d *Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Driver) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (d *Driver) DrawArrays(m canvas.Primitive, first, count int32) {
	gl.DrawArrays(mode(m), first, count)
}
