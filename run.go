package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/stewi1014/fragcanvas/canvas"
	"github.com/stewi1014/fragcanvas/fetch"
	"github.com/stewi1014/fragcanvas/host/glfwhost"
	"github.com/stewi1014/fragcanvas/host/gtkhost"
	"github.com/urfave/cli"
)

const (
	appID = "com.github.stewi1014.fragcanvas"

	// Frames between progress reports at debug level.
	reportEvery = 600
)

// Run renders a shader in a window until it is closed.
func Run(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	locator := ctx.String("shader")
	if ctx.NArg() > 0 {
		locator = ctx.Args().First()
	}

	fetcher := fetch.New()
	if base := ctx.String("base-url"); base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid base url: %w", err)
		}
		fetcher.Base = u
	}

	opts := canvas.Options{
		Shader:       locator,
		PixelScale:   ctx.Float64("scale"),
		FetchTimeout: ctx.Duration("fetch-timeout"),
		Fetcher:      fetcher,
		Clock:        canvas.MonotonicClock(),
	}

	runCtx, quit := context.WithCancelCause(context.Background())
	defer quit(nil)

	runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt)
	defer stop()

	if d := ctx.Duration("duration"); d > 0 {
		timer := time.AfterFunc(d, func() { quit(nil) })
		defer timer.Stop()
	}

	var mounted *canvas.Canvas
	setup := func(c *canvas.Canvas) {
		mounted = c
		c.OnResized(func(d canvas.Dimensions) {
			logger.Infof("drawable resized to %dx%d", d.Width, d.Height)
		})
		c.OnFrame(func(f canvas.FrameInfo) {
			if f.Index%reportEvery == 0 {
				logger.Debugf("frame %d at %.2fs", f.Index, f.Elapsed.Seconds())
			}
		})
		if ctx.Bool("exit-on-error") {
			c.OnError(func(err error) {
				var validate *canvas.ValidateError
				if !errors.As(err, &validate) {
					quit(err)
				}
			})
		}
	}

	var err error
	switch host := ctx.String("host"); host {
	case "glfw":
		err = glfwhost.Run(runCtx, glfwhost.Options{
			Width:       ctx.Int("width"),
			Height:      ctx.Int("height"),
			Title:       "fragcanvas - " + locator,
			Transparent: ctx.Bool("transparent"),
			Debug:       ctx.Bool("gl-debug"),
		}, opts, setup)
	case "gtk":
		err = gtkhost.Run(runCtx, gtkhost.Options{
			AppID:        appID,
			Title:        "fragcanvas - " + locator,
			Width:        ctx.Int("width"),
			Height:       ctx.Int("height"),
			Transparent:  ctx.Bool("transparent"),
			Debug:        ctx.Bool("gl-debug"),
			ErrorDialogs: !ctx.Bool("exit-on-error"),
		}, opts, setup)
	default:
		return fmt.Errorf("unknown host %q", host)
	}

	if mounted != nil {
		printStats(mounted.Stats())
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
