// Package render derives a chart spec from a benchmark dataset and a tick
// time threshold, and rasterizes it into a single PNG artifact.
//
// The split mirrors compute-then-render: BuildSpec is pure and fully
// deterministic (axis bounds, tick set, annotation text, style palette as
// data), Render turns a Spec into pixels and exactly one file write.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andrewgazelka/perfchart/src/dataset"
)

// Figure defaults: 12x7 inches at 150 DPI, sized for a repository README.
const (
	DefaultWidth  = 1800
	DefaultHeight = 1050
	DefaultDPI    = 150
	DefaultTitle  = "Server Performance Analysis: Tick Time vs Player Count"
)

// DefaultCountTicks is the baseline x tick set. The derived tick set is the
// ascending deduplicated union of these and the dataset's player counts.
var DefaultCountTicks = []int64{1, 10, 100, 1000}

// Palette collects every color/width choice in one value so visual policy is
// data rather than literals scattered through the drawing code.
type Palette struct {
	Data      drawing.Color // data series line and markers
	Threshold drawing.Color // threshold line and its annotation
	BandLine  drawing.Color // band legend swatch
	BandFill  drawing.Color // shaded under-threshold region (low alpha)
	Grid      drawing.Color

	DataWidth      float64
	ThresholdWidth float64
	MarkerWidth    float64
	GridWidth      float64
	ThresholdDash  []float64
	GridDash       []float64
}

// DefaultPalette returns the stock look: blue data series, dashed red
// threshold line, faint orange band, dashed gray grid.
func DefaultPalette() Palette {
	band := drawing.ColorFromHex("ff7f0e")
	return Palette{
		Data:      drawing.ColorFromHex("1f77b4"),
		Threshold: drawing.ColorFromHex("d62728"),
		BandLine:  band,
		BandFill:  band.WithAlpha(26),
		Grid:      drawing.Color{R: 128, G: 128, B: 128, A: 178},

		DataWidth:      2,
		ThresholdWidth: 2,
		MarkerWidth:    5,
		GridWidth:      0.5,
		ThresholdDash:  []float64{8.0, 6.0},
		GridDash:       []float64{4.0, 4.0},
	}
}

// Label is a text annotation positioned in data coordinates.
type Label struct {
	X    float64
	Y    float64
	Text string
}

// Spec is the derived rendering configuration for one chart. It is computed
// deterministically from the dataset, the threshold and the options, and
// carries everything the rasterizer needs.
type Spec struct {
	Title  string
	XLabel string
	YLabel string

	Width  int
	Height int
	DPI    float64

	// count axis is logarithmic: [1, maxPlayers*1.1]
	XMin float64
	XMax float64
	// tick time axis is linear: [0, threshold+10]; taller samples clip
	YMin float64
	YMax float64

	// shaded region between the threshold and maxTickMs*1.2
	BandLower float64
	BandUpper float64

	XTicks []chart.Tick

	SeriesName    string
	ThresholdName string
	BandName      string

	Threshold      float64
	ThresholdLabel Label
	PointLabels    []Label
	Footnote       string

	Palette Palette
}

// Options are caller overrides for figure geometry and text. Zero values
// select the defaults.
type Options struct {
	Width  int
	Height int
	DPI    float64
	Title  string
	// DefaultTicks overrides DefaultCountTicks when non-nil.
	DefaultTicks []int64
}

// BuildSpec derives the chart spec for the dataset and threshold.
// The dataset is valid by construction; the threshold is checked here.
func BuildSpec(ds dataset.Dataset, thresholdMs float64, opts Options) (Spec, error) {
	if math.IsNaN(thresholdMs) || math.IsInf(thresholdMs, 0) || thresholdMs <= 0 {
		return Spec{}, errors.Wrapf(ErrInvalidThreshold, "%v ms must be a positive number", thresholdMs)
	}
	if ds.Len() == 0 {
		return Spec{}, errors.Wrap(dataset.ErrInvalidDataset, "empty sample set")
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	defTicks := opts.DefaultTicks
	if defTicks == nil {
		defTicks = DefaultCountTicks
	}

	maxPlayers := float64(ds.MaxPlayers())
	thresholdText := formatMs(thresholdMs)

	spec := Spec{
		Title:  title,
		XLabel: "Number of Players",
		YLabel: "Tick Time (ms)",

		Width:  width,
		Height: height,
		DPI:    dpi,

		XMin: 1,
		XMax: maxPlayers * 1.1,
		YMin: 0,
		YMax: thresholdMs + 10,

		BandLower: thresholdMs,
		BandUpper: ds.MaxTickMs() * 1.2,

		XTicks: countTicks(ds, defTicks),

		SeriesName:    "Measured Tick Time",
		ThresholdName: thresholdText + "ms Threshold",
		BandName:      "Under Threshold",

		Threshold: thresholdMs,
		Footnote: "Note: values below " + thresholdText + "ms indicate optimal server performance.\n" +
			"Higher values may result in server lag.",

		Palette: DefaultPalette(),
	}

	// identify the threshold line just above it, toward the left of the axis
	tx := maxPlayers * 0.05
	if tx < spec.XMin {
		tx = spec.XMin
	}
	spec.ThresholdLabel = Label{X: tx, Y: thresholdMs + 2, Text: thresholdText + "ms Tick Limit"}

	for _, s := range ds.Samples() {
		spec.PointLabels = append(spec.PointLabels, Label{
			X:    float64(s.Players),
			Y:    s.TickMs,
			Text: fmt.Sprintf("%.2f ms", s.TickMs),
		})
	}
	return spec, nil
}

// countTicks merges the default tick positions with the dataset's player
// counts, deduplicated and sorted ascending, with thousands-separated labels.
func countTicks(ds dataset.Dataset, defaults []int64) []chart.Tick {
	seen := make(map[int64]struct{}, len(defaults)+ds.Len())
	var counts []int64
	add := func(v int64) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		counts = append(counts, v)
	}
	for _, v := range defaults {
		add(v)
	}
	for _, s := range ds.Samples() {
		add(s.Players)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	ticks := make([]chart.Tick, 0, len(counts))
	for _, v := range counts {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: humanize.Comma(v)})
	}
	return ticks
}

// formatMs renders a millisecond value without trailing zeros ("50", "2.5").
func formatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
