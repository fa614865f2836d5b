package glfwhost

import (
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/fragcanvas/canvas"
)

// idleWait bounds how long the loop blocks for events while no frame is
// pending.
const idleWait = 0.1

// Run opens a window, mounts a canvas built from opts in it and renders
// until the window closes or ctx is done. setup is called with the canvas
// before it is attached.
func Run(ctx context.Context, wopts Options, opts canvas.Options, setup func(*canvas.Canvas)) error {
	if err := glfw.Init(); err != nil {
		return &canvas.ContextError{Err: fmt.Errorf("glfw.Init failed: %w", err)}
	}
	defer glfw.Terminate()

	w, err := NewWindow(wopts)
	if err != nil {
		return err
	}
	defer w.Destroy()
	// Before Destroy and Terminate: a fetch finishing during shutdown must
	// not reach glfw.
	defer w.Close()

	opts.Scheduler = w
	opts.Observer = w
	if opts.PixelScale == 0 {
		opts.PixelScale = w.PixelScale()
	}

	c, err := canvas.New(w.Driver(), opts)
	if err != nil {
		return err
	}
	if setup != nil {
		setup(c)
	}

	if err = c.OnAttach(ctx); err != nil {
		return err
	}
	defer c.OnDetach()

	// Wake the loop when ctx ends so it does not sit in WaitEvents.
	stop := context.AfterFunc(ctx, w.Wake)
	defer stop()

	return w.loop(ctx)
}

func (w *Window) loop(ctx context.Context) error {
	for !w.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		if len(w.frames) > 0 {
			glfw.PollEvents()
		} else {
			glfw.WaitEventsTimeout(idleWait)
		}

		w.runPosted()
		if w.runFrames() {
			w.SwapBuffers()
		}
	}
	return nil
}
