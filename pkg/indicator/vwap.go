package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// VWAP is the anchored volume weighted average price: the running
// sum(typical price * volume) / sum(volume). The sums restart whenever a
// candle falls into a different anchor period than the previous candle.
// They are kept in the managed record "<name>_data" as {pv, vol}.
//
// Refer: https://www.investopedia.com/terms/v/vwap.asp
type VWAP struct {
	Base
	Anchor types.Timeframe `json:"anchor"`

	data *Managed
}

func NewVWAP(anchor types.Timeframe, options ...Option) *VWAP {
	return setup(&VWAP{Anchor: anchor}, options...)
}

func (inc *VWAP) Kind() string {
	return "VWAP"
}

func (inc *VWAP) Params() []interface{} {
	return []interface{}{inc.Anchor}
}

func (inc *VWAP) Validate() error {
	if inc.Anchor <= 0 {
		return invalid("VWAP", "anchor %s must be positive", inc.Anchor)
	}
	return nil
}

func (inc *VWAP) Initialise() error {
	inc.data = inc.manage("data", WithRounding(NoRounding))
	return nil
}

func (inc *VWAP) CalculateReading(i int) types.Reading {
	bars := inc.Candles()
	c := bars[i]
	pv := c.TypicalPrice() * float64(c.Volume)
	vol := float64(c.Volume)

	if i > 0 && inc.sameAnchor(bars[i-1], c) {
		prev := inc.data.Reading(i - 1)
		lastPV, ok1 := prev.Field("pv").Float64()
		lastVol, ok2 := prev.Field("vol").Float64()
		if ok1 && ok2 {
			pv += lastPV
			vol += lastVol
		}
	}

	inc.data.SetReading(i, types.Record(map[string]types.Reading{
		"pv":  types.Number(pv),
		"vol": types.Number(vol),
	}))

	if vol == 0 {
		return types.Absent
	}
	return types.Number(pv / vol)
}

func (inc *VWAP) sameAnchor(a, b *types.Candle) bool {
	anchor := inc.Anchor.Duration()
	return types.RoundDown(a.Timestamp, anchor).Equal(types.RoundDown(b.Timestamp, anchor))
}
