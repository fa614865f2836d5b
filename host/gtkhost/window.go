// Package gtkhost runs a canvas inside a GTK3 GLArea.
package gtkhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/fragcanvas/canvas"
	"github.com/stewi1014/fragcanvas/gldriver"
	"github.com/stewi1014/fragcanvas/log"
)

var logger = log.New("gtk")

type Options struct {
	AppID         string
	Title         string
	Width, Height int
	Transparent   bool
	Debug         bool
	// Show a dialog for failures that stop the canvas.
	ErrorDialogs bool
}

var (
	_ canvas.Scheduler   = (*RenderWindow)(nil)
	_ canvas.BoxObserver = (*RenderWindow)(nil)
)

// RenderWindow hosts one canvas in a GLArea. The canvas is created when the
// area is realized and detached when it is unrealized.
type RenderWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea

	opts       Options
	canvasOpts canvas.Options
	setup      func(*canvas.Canvas)

	ctx  context.Context
	quit context.CancelCauseFunc

	canvas    *canvas.Canvas
	driver    *gldriver.Driver
	frames    []func()
	observers []func(canvas.Box)
}

func NewRenderWindow(
	app *gtk.Application,
	ctx context.Context,
	quit context.CancelCauseFunc,
	opts Options,
	canvasOpts canvas.Options,
	setup func(*canvas.Canvas),
) (*RenderWindow, error) {
	var err error
	w := &RenderWindow{
		opts:       opts,
		canvasOpts: canvasOpts,
		setup:      setup,
		ctx:        ctx,
		quit:       quit,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	w.SetDefaultSize(opts.Width, opts.Height)
	w.SetTitle(opts.Title)

	if opts.Transparent {
		if screen, err := gdk.ScreenGetDefault(); err == nil {
			if visual, err := screen.GetRGBAVisual(); err == nil && visual != nil {
				w.SetVisual(visual)
			}
		}
		w.SetAppPaintable(true)
	}

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.GLAreaNew: %w", err)
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasAlpha(opts.Transparent)
	w.gla.SetAutoRender(false)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("resize", w.glaResize)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.Add(w.gla)
	w.ShowAll()

	return w, nil
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	defer CatchPanicToContext(w.quit)

	gla.MakeCurrent()
	if err := gla.GetError(); err != nil {
		w.fatal(&canvas.ContextError{Err: err})
		return
	}

	var err error
	w.driver, err = gldriver.New()
	if err != nil {
		w.fatal(err)
		return
	}
	if w.opts.Debug {
		w.driver.EnableDebugOutput()
	}

	opts := w.canvasOpts
	opts.Scheduler = w
	opts.Observer = w
	if opts.PixelScale == 0 {
		opts.PixelScale = float64(gla.GetScaleFactor())
	}

	w.canvas, err = canvas.New(w.driver, opts)
	if err != nil {
		w.fatal(err)
		return
	}
	if w.setup != nil {
		w.setup(w.canvas)
	}
	if w.opts.ErrorDialogs {
		w.canvas.OnError(w.showError)
	}

	if err = w.canvas.OnAttach(w.ctx); err != nil {
		w.fatal(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	defer CatchPanicToContext(w.quit)

	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn()
	}

	// Nothing was drawn; leave the area transparent rather than undefined.
	if len(frames) == 0 && w.driver != nil {
		w.driver.ClearColor(0, 0, 0, 0)
		w.driver.Clear()
	}
	return true
}

func (w *RenderWindow) glaResize(gla *gtk.GLArea, width, height int) {
	defer CatchPanicToContext(w.quit)

	box := w.Measure()
	for _, fn := range w.observers {
		if fn != nil {
			fn(box)
		}
	}
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	if w.canvas != nil {
		w.canvas.OnDetach()
		logStats(w.canvas.Stats())
	}
}

func logStats(stats canvas.Stats) {
	logger.Infof("%d frames in %v (%.1f fps)", stats.Frames, stats.Elapsed, stats.FPS())
}

// Canvas returns the mounted canvas, or nil before the area is realized.
func (w *RenderWindow) Canvas() *canvas.Canvas { return w.canvas }

// RequestFrame queues fn for the next render of the area.
func (w *RenderWindow) RequestFrame(fn func()) {
	w.frames = append(w.frames, fn)
	w.gla.QueueRender()
}

// Post runs fn from the GLib main loop with the area's context current.
func (w *RenderWindow) Post(fn func()) {
	glib.IdleAdd(func() bool {
		defer CatchPanicToContext(w.quit)
		w.gla.MakeCurrent()
		fn()
		return false
	})
}

func (w *RenderWindow) Observe(fn func(canvas.Box)) func() {
	i := len(w.observers)
	w.observers = append(w.observers, fn)
	return func() {
		w.observers[i] = nil
	}
}

// Measure returns the allocated size of the area in logical pixels.
func (w *RenderWindow) Measure() canvas.Box {
	return canvas.Box{
		Width:  float64(w.gla.GetAllocatedWidth()),
		Height: float64(w.gla.GetAllocatedHeight()),
	}
}

func (w *RenderWindow) fatal(err error) {
	logger.Error(err)
	if w.opts.ErrorDialogs {
		w.showError(err)
	}
}

// showError queues a dialog for err. Validation reports are only logged.
func (w *RenderWindow) showError(err error) {
	var validate *canvas.ValidateError
	if errors.As(err, &validate) {
		return
	}
	glib.IdleAdd(func() {
		NewErrorDialog(w.ApplicationWindow, err)
	})
}
