package gtkhost

import (
	"context"
	"fmt"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/fragcanvas/canvas"
)

// Run starts a GTK application with one render window and blocks until it
// quits. It must be called from the main thread.
func Run(ctx context.Context, opts Options, canvasOpts canvas.Options, setup func(*canvas.Canvas)) error {
	gtk.Init(nil)

	app, err := gtk.ApplicationNew(opts.AppID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	defer appQuit(nil)

	app.Connect("activate", func() {
		w, err := NewRenderWindow(app, appContext, appQuit, opts, canvasOpts, setup)
		if err != nil {
			appQuit(err)
			return
		}
		w.Connect("destroy", func() {
			appQuit(nil)
		})
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()

	app.Run(nil)
	return context.Cause(appContext)
}
