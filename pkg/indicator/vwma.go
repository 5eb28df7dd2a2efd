package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// VWMA is the volume weighted moving average of the close price over period candles.
//
// Refer: https://www.motivewave.com/studies/volume_weighted_moving_average.htm
type VWMA struct {
	Base
	Period int `json:"period"`
}

func NewVWMA(period int, options ...Option) *VWMA {
	return setup(&VWMA{Period: period}, options...)
}

func (inc *VWMA) Kind() string {
	return "VWMA"
}

func (inc *VWMA) Params() []interface{} {
	return []interface{}{inc.Period}
}

func (inc *VWMA) Validate() error {
	if inc.Period <= 0 {
		return invalid("VWMA", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *VWMA) Initialise() error {
	return nil
}

func (inc *VWMA) CalculateReading(i int) types.Reading {
	if i < inc.Period-1 {
		return types.Absent
	}

	var pv, vol float64
	for _, c := range inc.Candles()[i-inc.Period+1 : i+1] {
		pv += c.Close * float64(c.Volume)
		vol += float64(c.Volume)
	}

	if vol == 0 {
		return types.Absent
	}
	return types.Number(pv / vol)
}
