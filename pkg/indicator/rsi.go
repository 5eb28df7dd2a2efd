package indicator

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

/*
rsi implements Relative Strength Index (RSI)

https://www.investopedia.com/terms/r/rsi.asp

Gains and losses are stored in managed series and smoothed by managed RMAs.
*/
type RSI struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`

	gain, loss       *Managed
	avgGain, avgLoss Indicator
}

func NewRSI(period int, source string, options ...Option) *RSI {
	return setup(&RSI{Period: period, Source: source}, options...)
}

func (inc *RSI) Kind() string {
	return "RSI"
}

func (inc *RSI) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *RSI) Validate() error {
	if inc.Period <= 0 {
		return invalid("RSI", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *RSI) Initialise() error {
	inc.gain = inc.manage("gain")
	inc.loss = inc.manage("loss")
	inc.avgGain = inc.AddManaged("avg_gain", &RMA{Period: inc.Period, Source: inc.gain.Name()})
	inc.avgLoss = inc.AddManaged("avg_loss", &RMA{Period: inc.Period, Source: inc.loss.Name()})
	return nil
}

func (inc *RSI) CalculateReading(i int) types.Reading {
	gain, loss := types.Absent, types.Absent
	if i >= 1 {
		x, ok1 := inc.value(inc.Source, i)
		last, ok2 := inc.value(inc.Source, i-1)
		if ok1 && ok2 {
			change := x - last
			gain = types.Number(math.Max(change, 0))
			loss = types.Number(math.Max(-change, 0))
		}
	}

	inc.gain.SetReading(i, gain)
	inc.loss.SetReading(i, loss)
	for _, avg := range []Indicator{inc.avgGain, inc.avgLoss} {
		if err := avg.CalculateIndex(i, i+1); err != nil {
			inc.log.WithError(err).Errorf("%s calculation failed at %d", avg.Name(), i)
			return types.Absent
		}
	}

	avgGain, ok1 := inc.value(inc.avgGain.Name(), i)
	avgLoss, ok2 := inc.value(inc.avgLoss.Name(), i)
	if !ok1 || !ok2 {
		return types.Absent
	}

	if avgLoss == 0 {
		return types.Number(100)
	}

	rs := avgGain / avgLoss
	return types.Number(100 - 100/(1+rs))
}
