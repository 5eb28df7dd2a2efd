// Package chart renders candles and indicator readings as PNG line charts.
package chart

import (
	"io"
	"time"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/c9s/tacandle/pkg/types"
)

var ErrNothingToPlot = errors.New("nothing to plot")

type Canvas struct {
	gochart.Chart
	Timeframe time.Duration
}

func NewCanvas(title string, timeframe time.Duration) *Canvas {
	var valueFormatter gochart.ValueFormatter
	switch {
	case timeframe >= types.Day:
		valueFormatter = gochart.TimeDateValueFormatter
	case timeframe > time.Hour:
		valueFormatter = gochart.TimeHourValueFormatter
	default:
		valueFormatter = gochart.TimeMinuteValueFormatter
	}

	out := &Canvas{
		Chart: gochart.Chart{
			Title: title,
			XAxis: gochart.XAxis{
				ValueFormatter: valueFormatter,
			},
		},
		Timeframe: timeframe,
	}
	out.Chart.Elements = []gochart.Renderable{
		gochart.LegendLeft(&out.Chart),
	}
	return out
}

// Plot adds a time series of the numeric readings stored under address.
// Candles without a numeric reading are skipped. It reports whether the
// series was added; go-chart needs two points to draw a line.
func (canvas *Canvas) Plot(tag string, bars types.CandleSlice, address string) bool {
	var xs []time.Time
	var ys []float64
	for i := range bars {
		v, ok := bars.FloatAt(address, i)
		if !ok {
			continue
		}
		xs = append(xs, bars[i].Timestamp)
		ys = append(ys, v)
	}

	if len(xs) < 2 {
		return false
	}

	if tag == "" {
		tag = address
	}

	canvas.Series = append(canvas.Series, gochart.TimeSeries{
		Name:    tag,
		XValues: xs,
		YValues: ys,
	})
	return true
}

// PlotSignals marks the candles whose boolean reading under address is true.
func (canvas *Canvas) PlotSignals(tag string, bars types.CandleSlice, address string) {
	canvas.Series = append(canvas.Series, NewSignalSeries(tag, bars, address))
}

// Render writes the chart as PNG.
func (canvas *Canvas) Render(w io.Writer) error {
	plotted := 0
	for _, s := range canvas.Series {
		if _, ok := s.(gochart.TimeSeries); ok {
			plotted++
		}
	}

	if plotted == 0 {
		return ErrNothingToPlot
	}

	return canvas.Chart.Render(gochart.PNG, w)
}
