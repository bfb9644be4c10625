// perfchart renders the repository's performance chart: measured per-tick
// time against concurrent player count, with a tick time threshold line, an
// under-threshold band and per-point annotations, written as one PNG.
//
// With no flags it renders the builtin benchmark samples at 50ms to
// performance.png. A JSONC dataset file (full-line // comments) can be
// supplied with -data; threshold, output path, figure geometry and DPI are
// all overridable.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andrewgazelka/perfchart/src/dataset"
	"github.com/andrewgazelka/perfchart/src/render"
)

// benchmarkSamples are the measured tick times the chart ships with.
func benchmarkSamples() []dataset.Sample {
	return []dataset.Sample{
		{Players: 1, TickMs: 0.24},
		{Players: 10, TickMs: 0.30},
		{Players: 100, TickMs: 0.46},
		{Players: 1000, TickMs: 0.40},
		{Players: 5000, TickMs: 1.42},
	}
}

func main() {
	dataPath := flag.String("data", "", "Path to JSONC dataset file (array of {\"players\", \"tick_ms\"}); empty renders the builtin benchmark samples")
	threshold := flag.Float64("threshold", 50, "Tick time threshold in milliseconds")
	out := flag.String("out", "performance.png", "Output PNG path")
	dpi := flag.Float64("dpi", render.DefaultDPI, "Raster DPI")
	width := flag.Int("width", render.DefaultWidth, "Figure width in pixels")
	height := flag.Int("height", render.DefaultHeight, "Figure height in pixels")
	title := flag.String("title", render.DefaultTitle, "Chart title")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	render.SetLogLevel(*logLevel)

	var (
		ds  dataset.Dataset
		err error
	)
	if *dataPath != "" {
		ds, err = dataset.Load(*dataPath)
	} else {
		ds, err = dataset.New(benchmarkSamples())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "perfchart: %v\n", err)
		os.Exit(1)
	}

	spec, err := render.Render(ds, *threshold, *out, render.Options{
		Width:  *width,
		Height: *height,
		DPI:    *dpi,
		Title:  *title,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "perfchart: %v\n", err)
		os.Exit(1)
	}
	render.Infof("wrote %s (%dx%d @%.0f DPI, %d samples, %d x-ticks)",
		*out, spec.Width, spec.Height, spec.DPI, ds.Len(), len(spec.XTicks))
}
