// Package glfwhost runs a canvas in a GLFW window.
//
// All functions except Window.Post, Window.Wake and Window.Close must be
// called from the main thread.
package glfwhost

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/fragcanvas/canvas"
	"github.com/stewi1014/fragcanvas/gldriver"
	"github.com/stewi1014/fragcanvas/log"
)

var logger = log.New("glfw")

type Options struct {
	Width, Height int
	Title         string
	// Composite the cleared color with the desktop.
	Transparent bool
	// Create the window hidden; used for offline compilation.
	Hidden bool
	// Enable GL debug output.
	Debug bool
}

var (
	_ canvas.Scheduler   = (*Window)(nil)
	_ canvas.BoxObserver = (*Window)(nil)
)

// Window owns a GLFW window and its GL context, and provides the scheduler
// and box observer a canvas needs.
type Window struct {
	*glfw.Window
	driver *gldriver.Driver
	scale  float64

	// mu guards posted and closed, and is held across wake so Close cannot
	// return while a wake-up is in progress.
	mu     sync.Mutex
	posted []func()
	wake   func()
	closed bool

	frames    []func()
	observers []func(canvas.Box)
}

// NewWindow creates a window with a current OpenGL 4.6 core context.
// glfw.Init must have been called.
func NewWindow(opts Options) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if opts.Transparent {
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	}
	if opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(
		opts.Width,
		opts.Height,
		opts.Title,
		nil,
		nil,
	)
	if err != nil {
		return nil, &canvas.ContextError{Err: fmt.Errorf("glfw.CreateWindow failed: %w", err)}
	}

	w := &Window{
		Window: window,
		wake:   glfw.PostEmptyEvent,
	}

	w.MakeContextCurrent()
	w.driver, err = gldriver.New()
	if err != nil {
		window.Destroy()
		return nil, err
	}
	if opts.Debug {
		w.driver.EnableDebugOutput()
	}
	glfw.SwapInterval(1)

	width, _ := w.GetSize()
	fbWidth, _ := w.GetFramebufferSize()
	w.scale = pixelScale(width, fbWidth)
	xscale, yscale := w.GetContentScale()
	logger.Debugf("pixel scale %v, content scale %vx%v", w.scale, xscale, yscale)

	w.SetSizeCallback(w.resize)

	return w, nil
}

func pixelScale(width, fbWidth int) float64 {
	if width <= 0 || fbWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(width)
}

func (w *Window) Driver() *gldriver.Driver { return w.driver }

// PixelScale is the ratio of framebuffer pixels to window coordinates,
// measured when the window was created.
func (w *Window) PixelScale() float64 { return w.scale }

func (w *Window) RequestFrame(fn func()) {
	w.frames = append(w.frames, fn)
}

// Post queues fn for the main loop. It is safe to call from any goroutine.
// After Close, fn is dropped.
func (w *Window) Post(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.posted = append(w.posted, fn)
	w.wakeLocked()
}

// Wake interrupts a blocking wait in the main loop. It does nothing after
// Close.
func (w *Window) Wake() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.wakeLocked()
	}
}

func (w *Window) wakeLocked() {
	if w.wake != nil {
		w.wake()
	}
}

// Close stops the window accepting posted work and discards anything still
// queued. It must be called before the window is destroyed or glfw is
// terminated, since later posts would otherwise wake a dead event loop.
func (w *Window) Close() {
	w.mu.Lock()
	w.closed = true
	w.posted = nil
	w.mu.Unlock()
}

func (w *Window) Observe(fn func(canvas.Box)) func() {
	i := len(w.observers)
	w.observers = append(w.observers, fn)
	return func() {
		w.observers[i] = nil
	}
}

func (w *Window) Measure() canvas.Box {
	width, height := w.GetSize()
	return canvas.Box{Width: float64(width), Height: float64(height)}
}

func (w *Window) resize(_ *glfw.Window, width, height int) {
	box := canvas.Box{Width: float64(width), Height: float64(height)}
	for _, fn := range w.observers {
		if fn != nil {
			fn(box)
		}
	}
}

func (w *Window) runPosted() {
	w.mu.Lock()
	posted := w.posted
	w.posted = nil
	w.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// runFrames runs the frames requested for this refresh and reports whether
// any ran.
func (w *Window) runFrames() bool {
	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn()
	}
	return len(frames) > 0
}
