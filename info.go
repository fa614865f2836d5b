package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/stewi1014/fragcanvas/gldriver"
	"github.com/stewi1014/fragcanvas/programs"
	"github.com/urfave/cli"
)

// Info prints the OpenGL driver behind a fresh context.
func Info(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	return withHiddenContext(func(d *gldriver.Driver) error {
		info := d.Info()

		var buf bytes.Buffer
		table := tablewriter.NewWriter(&buf)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.AppendBulk([][]string{
			{"Vendor", info.Vendor},
			{"Renderer", info.Renderer},
			{"Version", info.Version},
			{"GLSL version", info.GLSLVersion},
		})
		table.Render()

		fmt.Print(buf.String())
		return nil
	})
}

// List prints the built-in shaders.
func List(ctx *cli.Context) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Locator", "Description"})
	for _, p := range programs.Programs() {
		table.Append([]string{"builtin:" + p.Name, p.Description})
	}
	table.Render()

	fmt.Print(buf.String())
	return nil
}
