package indicator

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

/*
stoch implements stochastic oscillator indicator

Stochastic Oscillator
- https://www.investopedia.com/terms/s/stochasticoscillator.asp

The raw %K normalizes the close within the high/low range of the last period
candles. %K is its SMA over smoothK candles and %D the SMA of %K over slow
candles. The reading is a record {k, d}.
*/
type STOCH struct {
	Base
	Period  int `json:"period"`
	Slow    int `json:"slow"`
	SmoothK int `json:"smoothK"`

	rawK *Managed
	k, d Indicator
}

func NewSTOCH(period, slow, smoothK int, options ...Option) *STOCH {
	return setup(&STOCH{Period: period, Slow: slow, SmoothK: smoothK}, options...)
}

func (inc *STOCH) Kind() string {
	return "STOCH"
}

func (inc *STOCH) Params() []interface{} {
	return []interface{}{inc.Period, inc.Slow, inc.SmoothK}
}

func (inc *STOCH) Validate() error {
	if inc.Period <= 0 || inc.Slow <= 0 || inc.SmoothK <= 0 {
		return invalid("STOCH", "periods %d, %d, %d must be positive", inc.Period, inc.Slow, inc.SmoothK)
	}
	return nil
}

func (inc *STOCH) Initialise() error {
	inc.rawK = inc.manage("raw_k")
	inc.k = inc.AddManaged("k", &SMA{Period: inc.SmoothK, Source: inc.rawK.Name()})
	inc.d = inc.AddManaged("d", &SMA{Period: inc.Slow, Source: inc.k.Name()})
	return nil
}

func (inc *STOCH) CalculateReading(i int) types.Reading {
	inc.rawK.SetReading(i, inc.rawReading(i))
	for _, ind := range []Indicator{inc.k, inc.d} {
		if err := ind.CalculateIndex(i, i+1); err != nil {
			inc.log.WithError(err).Errorf("%s calculation failed at %d", ind.Name(), i)
			return types.Absent
		}
	}

	k, ok := inc.value(inc.k.Name(), i)
	if !ok {
		return types.Absent
	}

	fields := map[string]types.Reading{"k": types.Number(k)}
	if d, ok := inc.value(inc.d.Name(), i); ok {
		fields["d"] = types.Number(d)
	}
	return types.Record(fields)
}

func (inc *STOCH) rawReading(i int) types.Reading {
	if i < inc.Period-1 {
		return types.Absent
	}

	highest, lowest := math.Inf(-1), math.Inf(1)
	for _, c := range inc.Candles()[i-inc.Period+1 : i+1] {
		highest = math.Max(highest, c.High)
		lowest = math.Min(lowest, c.Low)
	}

	if highest == lowest {
		return types.Number(50)
	}

	closePrice := inc.Candles()[i].Close
	return types.Number(100 * (closePrice - lowest) / (highest - lowest))
}
