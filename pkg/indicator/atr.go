package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// ATR is the average true range. The first reading is the mean of the first
// period true ranges, the following ones use Wilder's smoothing
// (prev * (period - 1) + tr) / period.
//
// Refer: https://www.investopedia.com/terms/a/atr.asp
type ATR struct {
	Base
	Period int `json:"period"`

	tr Indicator
}

func NewATR(period int, options ...Option) *ATR {
	return setup(&ATR{Period: period}, options...)
}

func (inc *ATR) Kind() string {
	return "ATR"
}

func (inc *ATR) Params() []interface{} {
	return []interface{}{inc.Period}
}

func (inc *ATR) Validate() error {
	if inc.Period <= 0 {
		return invalid("ATR", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *ATR) Initialise() error {
	inc.tr = inc.AddSub(&TR{}, true)
	return nil
}

func (inc *ATR) CalculateReading(i int) types.Reading {
	tr, ok := inc.value(inc.tr.Name(), i)
	if !ok {
		return types.Absent
	}

	if prev, ok := inc.previous(i).Float64(); ok {
		n := float64(inc.Period)
		return types.Number((prev*(n-1) + tr) / n)
	}

	values, ok := inc.window(inc.tr.Name(), inc.Period, i)
	if !ok {
		return types.Absent
	}
	return types.Number(values.Mean())
}
