package canvas

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vert"
	case FragmentStage:
		return "frag"
	}
	return "unknown"
}

// Primitive is a draw topology accepted by DrawArrays.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// GL is the immediate-mode GPU API a Canvas drives. Implementations are bound
// to one context and must only be called from the thread owning it.
//
// Object handles of 0 are never valid. Location lookups return -1 for names
// that are not active in the program.
type GL interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ValidateProgram(program uint32)
	ProgramValidated(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v0, v1 float32)

	CreateBuffer() uint32
	// BindBuffer binds buffer to the array buffer target.
	BindBuffer(buffer uint32)
	// BufferData uploads static vertex data to the bound array buffer.
	BufferData(data []float32)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes tightly packed float components read from
	// the bound array buffer.
	VertexAttribPointer(index uint32, size int32)
	DeleteVertexArray(vao uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	// Clear clears the color buffer.
	Clear()
	DrawArrays(mode Primitive, first, count int32)
}
