package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/stewi1014/fragcanvas/canvas"
)

func printStats(stats canvas.Stats) {
	var buf bytes.Buffer
	buf.WriteString("\nRender statistics:\n")

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"State", "Frames", "Elapsed", "Mean FPS", "Drawable"})
	table.Append([]string{
		stats.State.String(),
		fmt.Sprintf("%d", stats.Frames),
		stats.Elapsed.Round(time.Millisecond).String(),
		fmt.Sprintf("%.1f", stats.FPS()),
		fmt.Sprintf("%dx%d", stats.Dimensions.Width, stats.Dimensions.Height),
	})
	table.Render()

	logger.Notice(buf.String())
}
