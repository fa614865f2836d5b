package canvas

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms are the values written to the program every frame.
type Uniforms struct {
	Resolution mgl32.Vec2
	Time       float32
}

// FrameInfo describes a completed frame.
type FrameInfo struct {
	Index    uint64
	Elapsed  time.Duration
	Uniforms Uniforms
}

// Stats summarises the render loop so far.
type Stats struct {
	State      State
	Frames     uint64
	Elapsed    time.Duration
	Dimensions Dimensions
}

// FPS is the mean frame rate over Elapsed.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

func (c *Canvas) Stats() Stats {
	return Stats{
		State:      c.state,
		Frames:     c.frames,
		Elapsed:    c.lastElapsed,
		Dimensions: c.surface.dims,
	}
}

func (c *Canvas) requestFrame() {
	if c.framePending {
		return
	}
	c.framePending = true
	c.opts.Scheduler.RequestFrame(c.frame)
}

// frame draws once and schedules its successor.
func (c *Canvas) frame() {
	c.framePending = false
	if c.state != Ready {
		return
	}

	gl := c.gl
	bg := c.opts.ClearColor
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear()

	now := c.clock()
	if !c.started {
		c.start = now
		c.started = true
	}
	elapsed := now - c.start
	if elapsed < c.lastElapsed {
		elapsed = c.lastElapsed
	}
	c.lastElapsed = elapsed
	c.uniforms.Time = float32(elapsed.Seconds())

	gl.UseProgram(c.program.ID)
	gl.Uniform2f(c.program.resolutionLoc, c.uniforms.Resolution[0], c.uniforms.Resolution[1])
	gl.Uniform1f(c.program.timeLoc, c.uniforms.Time)

	c.geometry.Draw(gl)

	info := FrameInfo{
		Index:    c.frames,
		Elapsed:  elapsed,
		Uniforms: c.uniforms,
	}
	c.frames++

	for _, fn := range c.frameFns {
		fn(info)
	}

	// A frame callback may have detached the canvas.
	if c.state == Ready {
		c.requestFrame()
	}
}
