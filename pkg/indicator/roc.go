package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// ROC is the rate of change in percent against the value period candles ago.
type ROC struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`
}

func NewROC(period int, source string, options ...Option) *ROC {
	return setup(&ROC{Period: period, Source: source}, options...)
}

func (inc *ROC) Kind() string {
	return "ROC"
}

func (inc *ROC) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *ROC) Validate() error {
	if inc.Period <= 0 {
		return invalid("ROC", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *ROC) Initialise() error {
	return nil
}

func (inc *ROC) CalculateReading(i int) types.Reading {
	if i < inc.Period {
		return types.Absent
	}

	x, ok := inc.value(inc.Source, i)
	if !ok {
		return types.Absent
	}

	last, ok := inc.value(inc.Source, i-inc.Period)
	if !ok || last == 0 {
		return types.Absent
	}

	return types.Number((x - last) / last * 100)
}
