package canvas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const validFragment = `#version 330 core
uniform vec2 u_resolution;
uniform float u_time;
out vec4 color;
void main() { color = vec4(gl_FragCoord.xy / u_resolution, sin(u_time), 1.0); }
`

const brokenFragment = `#version 330 core
void main() { this is not glsl }
`

// fakeGL records every call and keeps just enough state to answer queries.
type fakeGL struct {
	calls []string
	next  uint32

	shaders  map[uint32]string
	stages   map[uint32]Stage
	programs map[uint32]bool
	buffers  map[uint32]bool
	vaos     map[uint32]bool

	failLink     bool
	failValidate bool
	noPosition   bool

	viewport [4]int32
	uniforms map[int32][]float32
	draws    int
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		shaders:  make(map[uint32]string),
		stages:   make(map[uint32]Stage),
		programs: make(map[uint32]bool),
		buffers:  make(map[uint32]bool),
		vaos:     make(map[uint32]bool),
		uniforms: make(map[int32][]float32),
	}
}

func (g *fakeGL) record(format string, v ...interface{}) {
	g.calls = append(g.calls, fmt.Sprintf(format, v...))
}

func (g *fakeGL) handle() uint32 {
	g.next++
	return g.next
}

// count returns the number of recorded calls starting with prefix.
func (g *fakeGL) count(prefix string) int {
	n := 0
	for _, c := range g.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// index returns the position of the first call starting with prefix, or -1.
func (g *fakeGL) index(prefix string) int {
	for i, c := range g.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func (g *fakeGL) CreateShader(stage Stage) uint32 {
	h := g.handle()
	g.stages[h] = stage
	g.shaders[h] = ""
	g.record("CreateShader %v", stage)
	return h
}

func (g *fakeGL) ShaderSource(shader uint32, source string) {
	g.shaders[shader] = source
}

func (g *fakeGL) CompileShader(shader uint32) { g.record("CompileShader %d", shader) }

func (g *fakeGL) ShaderCompiled(shader uint32) bool {
	return !strings.Contains(g.shaders[shader], "not glsl")
}

func (g *fakeGL) ShaderInfoLog(shader uint32) string {
	if g.ShaderCompiled(shader) {
		return ""
	}
	return "0:2(15): error: syntax error, unexpected IDENTIFIER"
}

func (g *fakeGL) DeleteShader(shader uint32) {
	delete(g.shaders, shader)
	g.record("DeleteShader %d", shader)
}

func (g *fakeGL) CreateProgram() uint32 {
	h := g.handle()
	g.programs[h] = false
	g.record("CreateProgram")
	return h
}

func (g *fakeGL) AttachShader(program, shader uint32) {
	g.record("AttachShader %d %d", program, shader)
}

func (g *fakeGL) DetachShader(program, shader uint32) {
	g.record("DetachShader %d %d", program, shader)
}

func (g *fakeGL) LinkProgram(program uint32) {
	g.programs[program] = !g.failLink
	g.record("LinkProgram %d", program)
}

func (g *fakeGL) ProgramLinked(program uint32) bool { return g.programs[program] }

func (g *fakeGL) ValidateProgram(program uint32) { g.record("ValidateProgram %d", program) }

func (g *fakeGL) ProgramValidated(program uint32) bool { return !g.failValidate }

func (g *fakeGL) ProgramInfoLog(program uint32) string {
	switch {
	case g.failLink:
		return "error: fragment shader output not written"
	case g.failValidate:
		return "validation: no vertex array object bound"
	}
	return ""
}

func (g *fakeGL) UseProgram(program uint32) { g.record("UseProgram %d", program) }

func (g *fakeGL) DeleteProgram(program uint32) {
	delete(g.programs, program)
	g.record("DeleteProgram %d", program)
}

func (g *fakeGL) AttribLocation(program uint32, name string) int32 {
	if name != PositionAttrib || g.noPosition {
		return -1
	}
	return 0
}

func (g *fakeGL) UniformLocation(program uint32, name string) int32 {
	switch name {
	case ResolutionUniform:
		return 1
	case TimeUniform:
		return 2
	}
	return -1
}

func (g *fakeGL) Uniform1f(location int32, v float32) {
	g.uniforms[location] = []float32{v}
	g.record("Uniform1f %d", location)
}

func (g *fakeGL) Uniform2f(location int32, v0, v1 float32) {
	g.uniforms[location] = []float32{v0, v1}
	g.record("Uniform2f %d", location)
}

func (g *fakeGL) CreateBuffer() uint32 {
	h := g.handle()
	g.buffers[h] = true
	g.record("CreateBuffer")
	return h
}

func (g *fakeGL) BindBuffer(buffer uint32) { g.record("BindBuffer %d", buffer) }

func (g *fakeGL) BufferData(data []float32) { g.record("BufferData %d", len(data)) }

func (g *fakeGL) DeleteBuffer(buffer uint32) {
	delete(g.buffers, buffer)
	g.record("DeleteBuffer %d", buffer)
}

func (g *fakeGL) CreateVertexArray() uint32 {
	h := g.handle()
	g.vaos[h] = true
	g.record("CreateVertexArray")
	return h
}

func (g *fakeGL) BindVertexArray(vao uint32) { g.record("BindVertexArray %d", vao) }

func (g *fakeGL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray %d", index)
}

func (g *fakeGL) VertexAttribPointer(index uint32, size int32) {
	g.record("VertexAttribPointer %d %d", index, size)
}

func (g *fakeGL) DeleteVertexArray(vao uint32) {
	delete(g.vaos, vao)
	g.record("DeleteVertexArray %d", vao)
}

func (g *fakeGL) Viewport(x, y, width, height int32) {
	g.viewport = [4]int32{x, y, width, height}
	g.record("Viewport %d %d", width, height)
}

func (g *fakeGL) ClearColor(r, gr, b, a float32) {
	g.record("ClearColor %v %v %v %v", r, gr, b, a)
}

func (g *fakeGL) Clear() { g.record("Clear") }

func (g *fakeGL) DrawArrays(mode Primitive, first, count int32) {
	g.draws++
	g.record("DrawArrays %d %d %d", mode, first, count)
}

// fakeScheduler queues callbacks until the test steps it.
type fakeScheduler struct {
	posted chan func()
	frames []func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{posted: make(chan func(), 16)}
}

func (s *fakeScheduler) Post(fn func()) { s.posted <- fn }

func (s *fakeScheduler) RequestFrame(fn func()) { s.frames = append(s.frames, fn) }

// drainPosted waits for one posted callback and runs it.
func (s *fakeScheduler) drainPosted() error {
	select {
	case fn := <-s.posted:
		fn()
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("timed out waiting for posted callback")
	}
}

// tick runs the frames queued for the current refresh.
func (s *fakeScheduler) tick() int {
	frames := s.frames
	s.frames = nil
	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

type fakeObserver struct {
	box       Box
	listeners []func(Box)
	stopped   bool
}

func (o *fakeObserver) Observe(fn func(Box)) func() {
	o.listeners = append(o.listeners, fn)
	return func() { o.stopped = true }
}

func (o *fakeObserver) Measure() Box { return o.box }

func (o *fakeObserver) set(box Box) {
	o.box = box
	if o.stopped {
		return
	}
	for _, fn := range o.listeners {
		fn(box)
	}
}

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) clock() time.Duration { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now += d }

type fakeFetcher struct {
	sources map[string]string
	gate    chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if f.gate != nil {
		<-f.gate
	}
	source, ok := f.sources[locator]
	if !ok {
		return "", fmt.Errorf("GET %s: 404 Not Found", locator)
	}
	return source, nil
}

type harness struct {
	gl       *fakeGL
	sched    *fakeScheduler
	observer *fakeObserver
	clock    *fakeClock
	fetcher  *fakeFetcher
	canvas   *Canvas
	errs     []error
	resized  []Dimensions
	rendered []FrameInfo
}

func newHarness(locator string, scale float64, box Box) (*harness, error) {
	h := &harness{
		gl:       newFakeGL(),
		sched:    newFakeScheduler(),
		observer: &fakeObserver{box: box},
		clock:    &fakeClock{now: 5 * time.Second},
		fetcher: &fakeFetcher{sources: map[string]string{
			"/shaders/plasma.frag": validFragment,
			"/shaders/broken.frag": brokenFragment,
		}},
	}

	c, err := New(h.gl, Options{
		Shader:     locator,
		PixelScale: scale,
		Fetcher:    h.fetcher,
		Scheduler:  h.sched,
		Observer:   h.observer,
		Clock:      h.clock.clock,
	})
	if err != nil {
		return nil, err
	}

	c.OnError(func(err error) { h.errs = append(h.errs, err) })
	c.OnResized(func(d Dimensions) { h.resized = append(h.resized, d) })
	c.OnFrame(func(f FrameInfo) { h.rendered = append(h.rendered, f) })
	h.canvas = c
	return h, nil
}

// attach attaches the canvas and runs the fetch continuation.
func (h *harness) attach() error {
	if err := h.canvas.OnAttach(context.Background()); err != nil {
		return err
	}
	return h.sched.drainPosted()
}
