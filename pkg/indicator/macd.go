package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

/*
macd implements moving average convergence divergence indicator

Moving Average Convergence Divergence (MACD)
- https://www.investopedia.com/terms/m/macd.asp

The reading is a record {MACD, signal, histogram}. The MACD line is also
kept in the managed "<name>_MACD" series the signal EMA runs over.
*/
type MACD struct {
	Base
	Fast   int    `json:"fast"`
	Slow   int    `json:"slow"`
	Signal int    `json:"signal"`
	Source string `json:"source,omitempty"`

	fast, slow Indicator
	line       *Managed
	signal     Indicator
}

func NewMACD(fast, slow, signal int, source string, options ...Option) *MACD {
	return setup(&MACD{Fast: fast, Slow: slow, Signal: signal, Source: source}, options...)
}

func (inc *MACD) Kind() string {
	return "MACD"
}

// periods returns the fast and slow periods with fast < slow.
func (inc *MACD) periods() (int, int) {
	if inc.Fast > inc.Slow {
		return inc.Slow, inc.Fast
	}
	return inc.Fast, inc.Slow
}

func (inc *MACD) Params() []interface{} {
	fast, slow := inc.periods()
	return sourceParams(inc.Source, fast, slow, inc.Signal)
}

func (inc *MACD) Validate() error {
	if inc.Fast <= 0 || inc.Slow <= 0 || inc.Signal <= 0 {
		return invalid("MACD", "periods %d, %d, %d must be positive", inc.Fast, inc.Slow, inc.Signal)
	}
	if inc.Fast == inc.Slow {
		return invalid("MACD", "fast and slow periods are both %d", inc.Fast)
	}
	return nil
}

func (inc *MACD) Initialise() error {
	fast, slow := inc.periods()
	inc.fast = inc.AddSub(&EMA{Period: fast, Source: inc.Source}, true)
	inc.slow = inc.AddSub(&EMA{Period: slow, Source: inc.Source}, true)
	inc.line = inc.manage("MACD")
	inc.signal = inc.AddManaged("signal", &EMA{Period: inc.Signal, Source: inc.line.Name()})
	return nil
}

func (inc *MACD) CalculateReading(i int) types.Reading {
	fast, ok1 := inc.value(inc.fast.Name(), i)
	slow, ok2 := inc.value(inc.slow.Name(), i)
	if !ok1 || !ok2 {
		inc.line.SetReading(i, types.Absent)
		inc.calculateSignal(i)
		return types.Absent
	}

	inc.line.SetReading(i, types.Number(fast-slow))
	inc.calculateSignal(i)

	macd, _ := inc.value(inc.line.Name(), i)
	fields := map[string]types.Reading{
		"MACD": types.Number(macd),
	}

	if signal, ok := inc.value(inc.signal.Name(), i); ok {
		fields["signal"] = types.Number(signal)
		fields["histogram"] = types.Number(macd - signal)
	}

	return types.Record(fields)
}

func (inc *MACD) calculateSignal(i int) {
	if err := inc.signal.CalculateIndex(i, i+1); err != nil {
		inc.log.WithError(err).Errorf("signal calculation failed at %d", i)
	}
}
