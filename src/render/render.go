package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/andrewgazelka/perfchart/src/dataset"
)

// Render derives the chart spec for the dataset and threshold, rasterizes it
// and writes the PNG artifact to outPath. The artifact appears atomically:
// the image is fully encoded in memory, written to a temp file next to the
// destination and renamed into place, so a failure never leaves a partial
// file at outPath. All rendering state is scoped to this call.
func Render(ds dataset.Dataset, thresholdMs float64, outPath string, opts Options) (Spec, error) {
	defer TimeTrack(time.Now(), "render "+outPath)

	spec, err := BuildSpec(ds, thresholdMs, opts)
	if err != nil {
		return Spec{}, err
	}
	Debugf("spec: %dx%d @%.0f DPI, x=[%g,%g] y=[%g,%g], %d x-ticks",
		spec.Width, spec.Height, spec.DPI, spec.XMin, spec.XMax, spec.YMin, spec.YMax, len(spec.XTicks))

	img, err := rasterize(spec, ds.Samples())
	if err != nil {
		return Spec{}, err
	}
	img = drawFootnote(img, spec.Footnote)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Spec{}, errors.Wrapf(ErrRenderBackend, "png encode: %v", err)
	}
	if err := writeArtifact(outPath, buf.Bytes()); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// rasterize assembles the go-chart figure and renders it to an in-memory
// image. Series order is z-order: band lowest, then the threshold line,
// then the data series, annotations on top.
func rasterize(spec Spec, samples []dataset.Sample) (image.Image, error) {
	ch := assemble(spec, samples)

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrapf(ErrRenderBackend, "chart render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, errors.Wrapf(ErrRenderBackend, "png decode: %v", err)
	}
	return img, nil
}

func assemble(spec Spec, samples []dataset.Sample) chart.Chart {
	pal := spec.Palette

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(s.Players)
		ys[i] = s.TickMs
	}

	pointNotes := make([]chart.Value2, 0, len(spec.PointLabels))
	for _, l := range spec.PointLabels {
		pointNotes = append(pointNotes, chart.Value2{XValue: l.X, YValue: l.Y, Label: l.Text})
	}

	series := []chart.Series{
		bandSeries{
			name:  spec.BandName,
			lower: spec.BandLower,
			upper: spec.BandUpper,
			style: chart.Style{
				FillColor:   pal.BandFill,
				StrokeColor: pal.BandLine,
				StrokeWidth: pal.DataWidth,
			},
		},
		chart.ContinuousSeries{
			Name:    spec.ThresholdName,
			XValues: []float64{spec.XMin, spec.XMax},
			YValues: []float64{spec.Threshold, spec.Threshold},
			Style: chart.Style{
				StrokeColor:     pal.Threshold,
				StrokeWidth:     pal.ThresholdWidth,
				StrokeDashArray: pal.ThresholdDash,
			},
		},
		chart.ContinuousSeries{
			Name:    spec.SeriesName,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: pal.Data,
				StrokeWidth: pal.DataWidth,
				DotColor:    pal.Data,
				DotWidth:    pal.MarkerWidth,
			},
		},
		chart.AnnotationSeries{
			Annotations: pointNotes,
			Style: chart.Style{
				FontColor:   pal.Data,
				StrokeColor: pal.Data,
				FillColor:   chart.ColorWhite,
			},
		},
		chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: spec.ThresholdLabel.X,
				YValue: spec.ThresholdLabel.Y,
				Label:  spec.ThresholdLabel.Text,
			}},
			Style: chart.Style{
				FontColor:   pal.Threshold,
				StrokeColor: pal.Threshold,
				FillColor:   chart.ColorWhite,
			},
		},
	}

	grid := chart.Style{
		StrokeColor:     pal.Grid,
		StrokeWidth:     pal.GridWidth,
		StrokeDashArray: pal.GridDash,
	}

	ch := chart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		DPI:    spec.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 25, Left: 25, Right: 25, Bottom: 25},
		},
		XAxis: chart.XAxis{
			Name:           spec.XLabel,
			Ticks:          spec.XTicks,
			Range:          &chart.LogarithmicRange{Min: spec.XMin, Max: spec.XMax},
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          &chart.ContinuousRange{Min: spec.YMin, Max: spec.YMax},
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// drawFootnote draws the explanatory note into the bottom-right corner of
// the rendered chart, one line per \n, right-aligned.
func drawFootnote(src image.Image, note string) image.Image {
	if src == nil || strings.TrimSpace(note) == "" {
		return src
	}
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, src, b.Min, draw.Src)

	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 85, G: 85, B: 85, A: 255})
	lineH := face.Metrics().Height.Ceil() + 2

	lines := strings.Split(note, "\n")
	y := b.Max.Y - 8 - lineH*(len(lines)-1)
	for _, line := range lines {
		dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
		tw := dr.MeasureString(line).Ceil()
		dr.Dot = fixed.Point26_6{X: fixed.I(b.Max.X - tw - 10), Y: fixed.I(y)}
		dr.DrawString(line)
		y += lineH
	}
	return rgba
}

// writeArtifact writes data to path via a temp file in the same directory
// and a rename, removing the temp file on any failure.
func writeArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(ErrOutputWrite, "create temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(ErrOutputWrite, "write %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrOutputWrite, "close %s: %v", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrOutputWrite, "chmod %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(ErrOutputWrite, "rename to %s: %v", path, err)
	}
	return nil
}
