package canvas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/fragcanvas/log"
)

var logger = log.New("canvas")

// State is the lifecycle position of a Canvas.
type State int

const (
	Uninitialized State = iota
	Loading
	Building
	Ready
	Failed
	Detached
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Building:
		return "building"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Detached:
		return "detached"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Options struct {
	// Shader locator of the fragment source.
	Shader string

	// Device pixel scale, captured once. Values <= 0 mean 1.
	PixelScale float64

	// Color the surface is cleared to before every draw.
	ClearColor mgl32.Vec4

	// Upper bound on the shader fetch. Zero means no limit.
	FetchTimeout time.Duration

	Fetcher   Fetcher
	Scheduler Scheduler
	Observer  BoxObserver
	// Defaults to MonotonicClock.
	Clock Clock
}

// Canvas renders one fragment shader over a full-screen quad, sized to its
// container and animated by real time.
//
// Apart from New, every method must be called on the host UI thread.
type Canvas struct {
	gl    GL
	opts  Options
	clock Clock
	state State

	surface  *surface
	program  *Program
	geometry *Geometry

	stopObserve  func()
	framePending bool

	started     bool
	start       time.Duration
	lastElapsed time.Duration
	frames      uint64
	uniforms    Uniforms

	resizedFns []func(Dimensions)
	frameFns   []func(FrameInfo)
	errorFns   []func(error)
}

// New returns an unattached Canvas drawing through gl. A nil gl yields a
// *ContextError.
func New(gl GL, opts Options) (*Canvas, error) {
	if gl == nil {
		return nil, &ContextError{}
	}
	if opts.Fetcher == nil {
		return nil, errors.New("canvas: a Fetcher is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("canvas: a Scheduler is required")
	}
	if opts.Observer == nil {
		return nil, errors.New("canvas: a BoxObserver is required")
	}
	if opts.Clock == nil {
		opts.Clock = MonotonicClock()
	}

	return &Canvas{
		gl:      gl,
		opts:    opts,
		clock:   opts.Clock,
		surface: newSurface(gl, opts.PixelScale),
	}, nil
}

// SetShader changes the shader locator. It is only allowed before OnAttach.
func (c *Canvas) SetShader(locator string) error {
	if c.state != Uninitialized {
		return ErrAlreadyAttached
	}
	c.opts.Shader = locator
	return nil
}

func (c *Canvas) Shader() string { return c.opts.Shader }

func (c *Canvas) State() State { return c.state }

// Dimensions returns the drawable size last applied.
func (c *Canvas) Dimensions() Dimensions { return c.surface.dims }

// Program returns the linked program, or nil before Ready.
func (c *Canvas) Program() *Program { return c.program }

// OnResized registers fn to run after every applied resize, starting with
// the initial one that precedes the first frame. It is not one-shot;
// subscribers that only want the first size must ignore later calls.
func (c *Canvas) OnResized(fn func(Dimensions)) {
	c.resizedFns = append(c.resizedFns, fn)
}

// OnFrame registers fn to run after every rendered frame.
func (c *Canvas) OnFrame(fn func(FrameInfo)) {
	c.frameFns = append(c.frameFns, fn)
}

// OnError registers fn to receive every reported failure.
func (c *Canvas) OnError(fn func(error)) {
	c.errorFns = append(c.errorFns, fn)
}

// OnAttach starts the fetch, build and render sequence. The fetch runs on its
// own goroutine; everything after it runs on the UI thread through the
// Scheduler.
func (c *Canvas) OnAttach(ctx context.Context) error {
	switch c.state {
	case Uninitialized:
	case Detached:
		return ErrDetached
	default:
		return ErrAlreadyAttached
	}

	c.stopObserve = c.opts.Observer.Observe(c.OnResize)

	locator := c.opts.Shader
	if locator == "" {
		c.fail(&FetchError{Err: ErrNoShader})
		return nil
	}

	c.state = Loading
	logger.Debugf("fetching %s", locator)

	fetchCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.opts.FetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.opts.FetchTimeout)
	}

	fetcher := c.opts.Fetcher
	go func() {
		defer cancel()
		source, err := fetcher.Fetch(fetchCtx, locator)
		c.opts.Scheduler.Post(func() {
			c.loaded(locator, source, err)
		})
	}()

	return nil
}

// loaded continues initialization once the fetch completes.
func (c *Canvas) loaded(locator, source string, err error) {
	if c.state != Loading {
		logger.Debugf("dropping %s: canvas is %v", locator, c.state)
		return
	}

	if err != nil {
		c.fail(&FetchError{Locator: locator, Err: err})
		return
	}

	c.state = Building
	program, err := BuildProgram(c.gl, VertexShader, source)
	if err != nil {
		c.fail(err)
		return
	}
	if program.Validation != nil {
		c.report(program.Validation)
	}

	geometry, err := NewFullscreenQuad(c.gl, program)
	if err != nil {
		program.Delete(c.gl)
		c.fail(err)
		return
	}

	c.program = program
	c.geometry = geometry
	c.state = Ready
	logger.Infof("%s linked as program %d", locator, program.ID)

	c.applyResize(c.opts.Observer.Measure())
	c.requestFrame()
}

// OnResize applies a new container box. Boxes observed before the program
// is ready are dropped; the first frame is preceded by a fresh measurement.
func (c *Canvas) OnResize(box Box) {
	if c.state != Ready {
		logger.Debugf("ignoring resize to %vx%v while %v", box.Width, box.Height, c.state)
		return
	}
	c.applyResize(box)
}

func (c *Canvas) applyResize(box Box) {
	dims := c.surface.resize(box)
	c.uniforms.Resolution = mgl32.Vec2{float32(dims.Width), float32(dims.Height)}
	logger.Debugf("surface resized to %dx%d", dims.Width, dims.Height)

	for _, fn := range c.resizedFns {
		fn(dims)
	}
}

// OnDetach stops the render loop and releases every GPU object. A detached
// canvas cannot be attached again.
func (c *Canvas) OnDetach() {
	if c.state == Detached {
		return
	}
	c.state = Detached

	if c.stopObserve != nil {
		c.stopObserve()
		c.stopObserve = nil
	}

	c.geometry.Delete(c.gl)
	c.geometry = nil
	c.program.Delete(c.gl)
	c.program = nil

	logger.Debugf("detached after %d frames", c.frames)
}

func (c *Canvas) fail(err error) {
	c.state = Failed
	c.report(err)
}

func (c *Canvas) report(err error) {
	var validate *ValidateError
	if errors.As(err, &validate) {
		logger.Warning(err)
	} else {
		logger.Error(err)
	}

	for _, fn := range c.errorFns {
		fn(err)
	}
}
