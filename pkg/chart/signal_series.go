package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/tacandle/pkg/types"
)

var (
	_ gochart.Series = &SignalSeries{}
)

// SignalSeries draws a dot over the close of every candle holding a true
// boolean reading, e.g. a pattern or a crossover flag.
type SignalSeries struct {
	Name    string
	Address string
	Radius  float64

	bars types.CandleSlice
}

func NewSignalSeries(name string, bars types.CandleSlice, address string) *SignalSeries {
	if name == "" {
		name = address
	}

	return &SignalSeries{
		Name:    name,
		Address: address,
		Radius:  3,
		bars:    bars,
	}
}

func (s *SignalSeries) GetName() string {
	return s.Name
}

func (s *SignalSeries) GetStyle() gochart.Style {
	return gochart.Style{
		StrokeWidth: 1.0,
		StrokeColor: drawing.ColorRed,
		FillColor:   drawing.ColorRed,
	}
}

func (s *SignalSeries) GetYAxis() gochart.YAxisType {
	return gochart.YAxisPrimary
}

func (s *SignalSeries) Validate() error {
	return nil
}

// Signals returns the indexes of the flagged candles.
func (s *SignalSeries) Signals() []int {
	var out []int
	for i := range s.bars {
		if b, ok := s.bars.ReadingAt(s.Address, i).Bool(); ok && b {
			out = append(out, i)
		}
	}
	return out
}

func (s *SignalSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xRange, yRange gochart.Range, defaults gochart.Style) {
	style := s.GetStyle().InheritFrom(defaults)
	for _, i := range s.Signals() {
		c := s.bars[i]
		x := canvasBox.Left + xRange.Translate(gochart.TimeToFloat64(c.Timestamp))
		y := canvasBox.Bottom - yRange.Translate(c.Close)
		gochart.Draw.Circle(r, s.Radius, x, y, style)
	}
}
