package indicator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/tacandle/pkg/types"
)

/*
boll implements the bollinger indicator:

The Basics of Bollinger Bands
- https://www.investopedia.com/articles/technical/102201.asp

Bollinger Bands
- https://www.investopedia.com/terms/b/bollingerbands.asp

The reading is a record {sma, stddev, up, down}.
*/
type BOLL struct {
	Base
	Period int `json:"period"`

	// times of Std, generally it's 2
	K float64 `json:"k"`

	Source string `json:"source,omitempty"`

	sma Indicator
}

func NewBOLL(period int, k float64, source string, options ...Option) *BOLL {
	return setup(&BOLL{Period: period, K: k, Source: source}, options...)
}

func (inc *BOLL) Kind() string {
	return "BOLL"
}

func (inc *BOLL) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period, inc.K)
}

func (inc *BOLL) Validate() error {
	if inc.Period <= 1 {
		return invalid("BOLL", "period %d must be greater than 1", inc.Period)
	}
	if inc.K <= 0 {
		return invalid("BOLL", "k %f must be positive", inc.K)
	}
	return nil
}

func (inc *BOLL) Initialise() error {
	inc.sma = inc.AddSub(&SMA{Period: inc.Period, Source: inc.Source}, true)
	return nil
}

func (inc *BOLL) CalculateReading(i int) types.Reading {
	sma, ok := inc.value(inc.sma.Name(), i)
	if !ok {
		return types.Absent
	}

	prices, ok := inc.window(inc.Source, inc.Period, i)
	if !ok {
		return types.Absent
	}

	std := stat.StdDev(prices, nil)
	band := inc.K * std
	return types.Record(map[string]types.Reading{
		"sma":    types.Number(sma),
		"stddev": types.Number(std),
		"up":     types.Number(sma + band),
		"down":   types.Number(sma - band),
	})
}
