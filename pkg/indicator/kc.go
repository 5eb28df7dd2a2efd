package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// KC is the Keltner channel: EMA(period) of the source with bands at
// multiplier times ATR(period). The reading is a record {lower, band, upper}.
//
// Refer: https://www.investopedia.com/terms/k/keltnerchannel.asp
type KC struct {
	Base
	Period     int     `json:"period"`
	Multiplier float64 `json:"multiplier"`
	Source     string  `json:"source,omitempty"`

	ema, atr Indicator
}

func NewKC(period int, multiplier float64, source string, options ...Option) *KC {
	return setup(&KC{Period: period, Multiplier: multiplier, Source: source}, options...)
}

func (inc *KC) Kind() string {
	return "KC"
}

func (inc *KC) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period, inc.Multiplier)
}

func (inc *KC) Validate() error {
	if inc.Period <= 0 {
		return invalid("KC", "period %d must be positive", inc.Period)
	}
	if inc.Multiplier <= 0 {
		return invalid("KC", "multiplier %f must be positive", inc.Multiplier)
	}
	return nil
}

func (inc *KC) Initialise() error {
	inc.ema = inc.AddSub(&EMA{Period: inc.Period, Source: inc.Source}, true)
	inc.atr = inc.AddSub(&ATR{Period: inc.Period}, true)
	return nil
}

func (inc *KC) CalculateReading(i int) types.Reading {
	band, ok1 := inc.value(inc.ema.Name(), i)
	atr, ok2 := inc.value(inc.atr.Name(), i)
	if !ok1 || !ok2 {
		return types.Absent
	}

	return types.Record(map[string]types.Reading{
		"lower": types.Number(band - inc.Multiplier*atr),
		"band":  types.Number(band),
		"upper": types.Number(band + inc.Multiplier*atr),
	})
}
