// Package render draws hysteresis sweeps as PNG charts and composes chart
// sets into grid images and standalone HTML galleries.
//
// A chart plots the field column on the x axis, the resistance column on
// the left y axis in steel blue and, when configured, the derivative
// column on a secondary y axis in dark orange. Rows whose plotted cells
// are NaN or infinite are left out of the affected series.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cwbudde/algo-hyst/curve"
)

// ErrNoPoints reports a value series with nothing finite left to draw.
var ErrNoPoints = errors.New("render: no drawable points")

var (
	valueColor      = drawing.ColorFromHex("4682B4") // steel blue
	derivativeColor = drawing.ColorFromHex("FF8C00") // dark orange
	gridColor       = drawing.ColorFromHex("D0D0D0")
	frameColor      = color.NRGBA{R: 0xD0, G: 0xD0, B: 0xD0, A: 0xFF}
)

// Chart renders c as a PNG into w.
func Chart(w io.Writer, c *curve.Curve, opts ...Option) error {
	cfg := ApplyOptions(opts...)

	field, err := c.Column(cfg.FieldColumn)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	value, err := c.Column(cfg.ValueColumn)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	xs, ys := seriesValues(field, value)
	if len(xs) == 0 {
		return fmt.Errorf("%w: %q over %q", ErrNoPoints, cfg.ValueColumn, cfg.FieldColumn)
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    cfg.ValueColumn,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 1, StrokeColor: valueColor},
		},
	}

	if cfg.DerivativeColumn != "" {
		deriv, err := c.Column(cfg.DerivativeColumn)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if dx, dy := seriesValues(field, deriv); len(dx) > 0 {
			series = append(series, chart.ContinuousSeries{
				Name:    cfg.DerivativeColumn,
				XValues: dx,
				YValues: dy,
				Style:   chart.Style{StrokeWidth: 1, StrokeColor: derivativeColor},
				YAxis:   chart.YAxisSecondary,
			})
		}
	}

	dashedGrid := chart.Style{
		StrokeWidth:     0.5,
		StrokeColor:     gridColor,
		StrokeDashArray: []float64{4.0, 4.0},
	}
	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           cfg.FieldColumn,
			GridMajorStyle: dashedGrid,
		},
		YAxis: chart.YAxis{
			Name:           cfg.ValueColumn,
			NameStyle:      chart.Style{FontColor: valueColor},
			TickStyle:      chart.Style{FontColor: valueColor},
			GridMajorStyle: dashedGrid,
		},
		YAxisSecondary: chart.YAxis{
			Name:      cfg.DerivativeColumn,
			NameStyle: chart.Style{FontColor: derivativeColor},
			TickStyle: chart.Style{FontColor: derivativeColor},
		},
		Series: series,
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Placeholder renders a blank framed PNG of the configured size, used for
// grid slots with no measurement behind them.
func Placeholder(w io.Writer, opts ...Option) error {
	cfg := ApplyOptions(opts...)

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	frame(img)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// seriesValues keeps the finite (x, y) pairs. A lone survivor is doubled
// with a nudged x so the chart still has a drawable range.
func seriesValues(x, y []float64) (xs, ys []float64) {
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func frame(img *image.RGBA) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		img.Set(x, b.Min.Y, frameColor)
		img.Set(x, b.Max.Y-1, frameColor)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.Set(b.Min.X, y, frameColor)
		img.Set(b.Max.X-1, y, frameColor)
	}
}
