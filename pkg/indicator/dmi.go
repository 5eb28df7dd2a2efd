package indicator

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

/*
dmi implements the directional movement index and its average

Average Directional Index (ADX)
- https://www.investopedia.com/terms/a/adx.asp

+DM and -DM come from the high/low deltas and are smoothed with RMAs over
period candles, then normalized by the ATR into +DI and -DI.
DX = 100 * |+DI - -DI| / (+DI + -DI), and ADX is the RMA of DX over signal
candles. The intermediate values live in the managed record "<name>_data".
The reading is a record {ADX, plus_di, minus_di}.
*/
type ADX struct {
	Base
	Period int `json:"period"`
	Signal int `json:"signal"`

	atr                 Indicator
	data                *Managed
	plusDM, minusDM, dx Indicator
}

func NewADX(period, signal int, options ...Option) *ADX {
	return setup(&ADX{Period: period, Signal: signal}, options...)
}

func (inc *ADX) Kind() string {
	return "ADX"
}

func (inc *ADX) Params() []interface{} {
	return []interface{}{inc.Period, inc.Signal}
}

func (inc *ADX) Validate() error {
	if inc.Period <= 0 || inc.Signal <= 0 {
		return invalid("ADX", "periods %d, %d must be positive", inc.Period, inc.Signal)
	}
	return nil
}

func (inc *ADX) Initialise() error {
	inc.atr = inc.AddSub(&ATR{Period: inc.Period}, true)
	inc.data = inc.manage("data")

	data := inc.data.Name()
	inc.plusDM = inc.AddManaged("plus_dm", &RMA{Period: inc.Period, Source: data + ".plus_dm"})
	inc.minusDM = inc.AddManaged("minus_dm", &RMA{Period: inc.Period, Source: data + ".minus_dm"})
	inc.dx = inc.AddManaged("dx", &RMA{Period: inc.Signal, Source: data + ".dx"})
	return nil
}

func (inc *ADX) CalculateReading(i int) types.Reading {
	if i < 1 {
		inc.data.SetReading(i, types.Absent)
		inc.calculateIndex(i, inc.plusDM, inc.minusDM, inc.dx)
		return types.Absent
	}

	bars := inc.Candles()
	c, prev := bars[i], bars[i-1]
	up := c.High - prev.High
	down := prev.Low - c.Low

	var plusDM, minusDM float64
	if up > down && up > 0 {
		plusDM = up
	}
	if down > up && down > 0 {
		minusDM = down
	}

	fields := map[string]types.Reading{
		"plus_dm":  types.Number(plusDM),
		"minus_dm": types.Number(minusDM),
	}
	inc.data.SetReading(i, types.Record(fields))
	inc.calculateIndex(i, inc.plusDM, inc.minusDM)

	atr, ok1 := inc.value(inc.atr.Name(), i)
	smoothPlus, ok2 := inc.value(inc.plusDM.Name(), i)
	smoothMinus, ok3 := inc.value(inc.minusDM.Name(), i)
	if !ok1 || !ok2 || !ok3 || atr == 0 {
		inc.calculateIndex(i, inc.dx)
		return types.Absent
	}

	plusDI := 100 * smoothPlus / atr
	minusDI := 100 * smoothMinus / atr

	var dx float64
	if sum := plusDI + minusDI; sum != 0 {
		dx = 100 * math.Abs(plusDI-minusDI) / sum
	}

	fields["dx"] = types.Number(dx)
	inc.data.SetReading(i, types.Record(fields))
	inc.calculateIndex(i, inc.dx)

	result := map[string]types.Reading{
		"plus_di":  types.Number(plusDI),
		"minus_di": types.Number(minusDI),
	}
	if adx, ok := inc.value(inc.dx.Name(), i); ok {
		result["ADX"] = types.Number(adx)
	}
	return types.Record(result)
}

func (inc *ADX) calculateIndex(i int, indicators ...Indicator) {
	for _, ind := range indicators {
		if err := ind.CalculateIndex(i, i+1); err != nil {
			inc.log.WithError(err).Errorf("%s calculation failed at %d", ind.Name(), i)
		}
	}
}
