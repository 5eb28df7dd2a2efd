package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

/*
obv implements on-balance volume indicator

On-Balance Volume (OBV) Definition
- https://www.investopedia.com/terms/o/onbalancevolume.asp
*/
type OBV struct {
	Base
}

func NewOBV(options ...Option) *OBV {
	return setup(&OBV{}, options...)
}

func (inc *OBV) Kind() string {
	return "OBV"
}

func (inc *OBV) Params() []interface{} {
	return nil
}

func (inc *OBV) Validate() error {
	return nil
}

func (inc *OBV) Initialise() error {
	return nil
}

func (inc *OBV) CalculateReading(i int) types.Reading {
	if i == 0 {
		return types.Number(0)
	}

	prev, ok := inc.previous(i).Float64()
	if !ok {
		return types.Absent
	}

	bars := inc.Candles()
	c, last := bars[i], bars[i-1]
	volume := float64(c.Volume)
	switch {
	case c.Close > last.Close:
		return types.Number(prev + volume)
	case c.Close < last.Close:
		return types.Number(prev - volume)
	}
	return types.Number(prev)
}
