package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// SMA is the simple moving average. The running window sum is kept in a
// managed helper so every step only adds the incoming value and subtracts
// the outgoing one.
type SMA struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`

	sum *Managed
}

func NewSMA(period int, source string, options ...Option) *SMA {
	return setup(&SMA{Period: period, Source: source}, options...)
}

func (inc *SMA) Kind() string {
	return "SMA"
}

func (inc *SMA) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *SMA) Validate() error {
	if inc.Period <= 0 {
		return invalid("SMA", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *SMA) Initialise() error {
	inc.sum = inc.manage("sum", WithRounding(NoRounding))
	return nil
}

func (inc *SMA) CalculateReading(i int) types.Reading {
	sum, ok := inc.windowSum(i)
	if !ok {
		inc.sum.SetReading(i, types.Absent)
		return types.Absent
	}

	inc.sum.SetReading(i, types.Number(sum))
	return types.Number(sum / float64(inc.Period))
}

func (inc *SMA) windowSum(i int) (float64, bool) {
	x, ok := inc.value(inc.Source, i)
	if !ok {
		return 0, false
	}

	if i >= inc.Period {
		prev, hasPrev := inc.sum.Float(i - 1)
		outgoing, hasOutgoing := inc.value(inc.Source, i-inc.Period)
		if hasPrev && hasOutgoing {
			return prev + x - outgoing, true
		}
	}

	values, ok := inc.window(inc.Source, inc.Period, i)
	if !ok {
		return 0, false
	}
	return values.Sum(), true
}
