package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/olekukonko/tablewriter"
	"github.com/stewi1014/fragcanvas/canvas"
	"github.com/stewi1014/fragcanvas/fetch"
	"github.com/stewi1014/fragcanvas/gldriver"
	"github.com/stewi1014/fragcanvas/host/glfwhost"
	"github.com/urfave/cli"
)

// withHiddenContext runs fn with a current GL context and no visible window.
func withHiddenContext(fn func(d *gldriver.Driver) error) error {
	if err := glfw.Init(); err != nil {
		return &canvas.ContextError{Err: fmt.Errorf("glfw.Init failed: %w", err)}
	}
	defer glfw.Terminate()

	w, err := glfwhost.NewWindow(glfwhost.Options{
		Width:  1,
		Height: 1,
		Title:  "fragcanvas",
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer w.Destroy()

	return fn(w.Driver())
}

type compileResult struct {
	locator string
	status  string
	log     string
	failed  bool
}

func compileOne(ctx context.Context, gl canvas.GL, fetcher canvas.Fetcher, locator string) compileResult {
	r := compileResult{locator: locator}

	source, err := fetcher.Fetch(ctx, locator)
	if err != nil {
		r.status, r.log, r.failed = "fetch failed", err.Error(), true
		return r
	}

	program, err := canvas.BuildProgram(gl, canvas.VertexShader, source)
	var (
		compileErr *canvas.CompileError
		linkErr    *canvas.LinkError
	)
	switch {
	case errors.As(err, &compileErr):
		r.status, r.log, r.failed = fmt.Sprintf("%v stage failed to compile", compileErr.Stage), compileErr.Log, true
		return r
	case errors.As(err, &linkErr):
		r.status, r.log, r.failed = "failed to link", linkErr.Log, true
		return r
	case err != nil:
		r.status, r.log, r.failed = "failed", err.Error(), true
		return r
	}
	defer program.Delete(gl)

	r.status = "ok"
	if program.Validation != nil {
		r.status, r.log = "ok (validation warning)", program.Validation.Log
	}
	return r
}

// Compile builds every shader argument and reports the driver diagnostics.
func Compile(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing shader argument")
	}

	var results []compileResult
	err := withHiddenContext(func(d *gldriver.Driver) error {
		fetcher := fetch.New()
		for _, locator := range ctx.Args() {
			fetchCtx, cancel := context.Background(), context.CancelFunc(func() {})
			if timeout := ctx.Duration("fetch-timeout"); timeout > 0 {
				fetchCtx, cancel = context.WithTimeout(fetchCtx, timeout)
			}
			results = append(results, compileOne(fetchCtx, d, fetcher, locator))
			cancel()
		}
		return nil
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shader", "Status"})

	failed := 0
	for _, r := range results {
		table.Append([]string{r.locator, r.status})
		if r.failed {
			failed++
		}
	}
	table.Render()
	fmt.Print(buf.String())

	for _, r := range results {
		if r.log == "" {
			continue
		}
		if r.failed {
			logger.Errorf("%s:\n%s", r.locator, r.log)
		} else {
			logger.Warningf("%s:\n%s", r.locator, r.log)
		}
	}

	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d shaders failed", failed, len(results)), 1)
	}
	return nil
}
