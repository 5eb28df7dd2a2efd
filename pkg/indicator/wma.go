package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// WMA is the linearly weighted moving average: the newest value weighs
// period, the oldest 1, divided by period * (period + 1) / 2.
type WMA struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`
}

func NewWMA(period int, source string, options ...Option) *WMA {
	return setup(&WMA{Period: period, Source: source}, options...)
}

func (inc *WMA) Kind() string {
	return "WMA"
}

func (inc *WMA) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *WMA) Validate() error {
	if inc.Period <= 0 {
		return invalid("WMA", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *WMA) Initialise() error {
	return nil
}

func (inc *WMA) CalculateReading(i int) types.Reading {
	values, ok := inc.window(inc.Source, inc.Period, i)
	if !ok {
		return types.Absent
	}

	var sum float64
	for k, v := range values {
		sum += float64(k+1) * v
	}

	n := float64(inc.Period)
	return types.Number(sum / (n * (n + 1) / 2))
}
