package main

import (
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli"
)

// GLFW and GTK must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "fragcanvas"
	app.Usage = "render a fragment shader over a resizable, animated surface"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log",
			Usage:  "per-module log levels, e.g. canvas=debug,fetch=info (modules: canvas, gl, fetch, glfw, gtk, fragcanvas)",
			EnvVar: "FRAGCANVAS_LOG",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "render a fragment shader until the window is closed",
			Description: `
Fetch the fragment shader named by the locator, link it against the built-in
pass-through vertex stage and draw it over a full-window quad every display
refresh. The shader receives u_resolution (drawable size in pixels) and
u_time (seconds since the first frame).

Locators may be http(s) URLs, file:// URLs, filesystem paths or
builtin:<name> (see the list command).`,
			ArgsUsage: "[shader]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "shader, s",
					Value:  "builtin:plasma",
					Usage:  "fragment shader locator",
					EnvVar: "FRAGCANVAS_SHADER",
				},
				cli.StringFlag{
					Name:   "host",
					Value:  "glfw",
					Usage:  "window system host: glfw or gtk",
					EnvVar: "FRAGCANVAS_HOST",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 1200,
					Usage: "initial window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 800,
					Usage: "initial window height",
				},
				cli.Float64Flag{
					Name:  "scale",
					Usage: "device pixel scale; 0 uses the value reported by the host",
				},
				cli.StringFlag{
					Name:   "base-url",
					Usage:  "resolve scheme-less locators against this URL",
					EnvVar: "FRAGCANVAS_BASE_URL",
				},
				cli.DurationFlag{
					Name:  "fetch-timeout",
					Value: 10 * time.Second,
					Usage: "give up fetching the shader after this long",
				},
				cli.DurationFlag{
					Name:  "duration",
					Usage: "stop rendering after this long; 0 renders until closed",
				},
				cli.BoolFlag{
					Name:  "transparent",
					Usage: "let the cleared surface show through to the desktop",
				},
				cli.BoolFlag{
					Name:  "exit-on-error",
					Usage: "exit instead of staying open when the shader fails to load",
				},
				cli.BoolFlag{
					Name:  "gl-debug",
					Usage: "log OpenGL debug output",
				},
			},
			Action: Run,
		},
		{
			Name:  "compile",
			Usage: "compile and link fragment shaders without rendering",
			Description: `
Build each shader against the built-in vertex stage in a hidden context and
report the driver diagnostics. Exits non-zero if any shader fails.`,
			ArgsUsage: "shader1 shader2 ...",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "fetch-timeout",
					Value: 10 * time.Second,
					Usage: "give up fetching a shader after this long",
				},
			},
			Action: Compile,
		},
		{
			Name:   "info",
			Usage:  "print OpenGL driver information",
			Action: Info,
		},
		{
			Name:   "list",
			Usage:  "list built-in shaders",
			Action: List,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
