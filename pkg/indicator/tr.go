package indicator

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

// TR is the true range: max(high - low, |high - prev close|, |low - prev close|).
// The first candle has no previous close and no reading.
type TR struct {
	Base
}

func NewTR(options ...Option) *TR {
	return setup(&TR{}, options...)
}

func (inc *TR) Kind() string {
	return "TR"
}

func (inc *TR) Params() []interface{} {
	return nil
}

func (inc *TR) Validate() error {
	return nil
}

func (inc *TR) Initialise() error {
	return nil
}

func (inc *TR) CalculateReading(i int) types.Reading {
	if i < 1 {
		return types.Absent
	}

	bars := inc.Candles()
	c, prev := bars[i], bars[i-1]
	return types.Number(math.Max(c.High-c.Low, math.Max(
		math.Abs(c.High-prev.Close),
		math.Abs(c.Low-prev.Close),
	)))
}
