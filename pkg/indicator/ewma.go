package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// EMA is the exponential moving average with alpha = 2 / (period + 1),
// seeded with the simple average of the first period values.
//
// Refer: https://www.investopedia.com/terms/e/ema.asp
type EMA struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`
}

func NewEMA(period int, source string, options ...Option) *EMA {
	return setup(&EMA{Period: period, Source: source}, options...)
}

func (inc *EMA) Kind() string {
	return "EMA"
}

func (inc *EMA) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *EMA) Validate() error {
	if inc.Period <= 0 {
		return invalid("EMA", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *EMA) Initialise() error {
	return nil
}

func (inc *EMA) CalculateReading(i int) types.Reading {
	x, ok := inc.value(inc.Source, i)
	if !ok {
		return types.Absent
	}

	if prev, ok := inc.previous(i).Float64(); ok {
		alpha := 2.0 / float64(inc.Period+1)
		return types.Number(alpha*x + (1-alpha)*prev)
	}

	if !inc.warmedUp(inc.Source, inc.Period, i) {
		return types.Absent
	}

	values, _ := inc.window(inc.Source, inc.Period, i)
	return types.Number(values.Mean())
}
