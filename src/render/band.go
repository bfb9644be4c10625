package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
)

// bandSeries shades the horizontal region between two y values across the
// whole x range. go-chart draws series in slice order, so the band goes first
// to render beneath both the data line and the threshold line.
type bandSeries struct {
	name  string
	style chart.Style
	lower float64
	upper float64
}

func (bs bandSeries) GetName() string           { return bs.name }
func (bs bandSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs bandSeries) GetStyle() chart.Style     { return bs.style }
func (bs bandSeries) Validate() error           { return nil }

func (bs bandSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.style.InheritFrom(defaults)

	lo, hi := bs.lower, bs.upper
	if lo > hi {
		lo, hi = hi, lo
	}
	// clamp to the visible y range; a band fully outside it draws nothing
	if hi < yrange.GetMin() || lo > yrange.GetMax() {
		return
	}
	if lo < yrange.GetMin() {
		lo = yrange.GetMin()
	}
	if hi > yrange.GetMax() {
		hi = yrange.GetMax()
	}

	top := canvasBox.Bottom - yrange.Translate(hi)
	bottom := canvasBox.Bottom - yrange.Translate(lo)

	r.SetFillColor(style.GetFillColor())
	r.MoveTo(canvasBox.Left, top)
	r.LineTo(canvasBox.Right, top)
	r.LineTo(canvasBox.Right, bottom)
	r.LineTo(canvasBox.Left, bottom)
	r.Close()
	r.Fill()
}
