package indicator

import (
	"github.com/c9s/tacandle/pkg/datatype/floats"
	"github.com/c9s/tacandle/pkg/types"
)

// Managed stores an intermediate series written by its parent, e.g. the MACD
// line the signal EMA runs over. It never computes anything by itself.
type Managed struct {
	Base
}

func NewManaged(options ...Option) *Managed {
	return setup(&Managed{}, options...)
}

func (inc *Managed) Kind() string {
	return "MANAGED"
}

func (inc *Managed) Params() []interface{} {
	return nil
}

func (inc *Managed) Validate() error {
	return nil
}

func (inc *Managed) Initialise() error {
	return nil
}

// CalculateReading keeps whatever the parent stored.
func (inc *Managed) CalculateReading(i int) types.Reading {
	return inc.Candles().ReadingAt(inc.Name(), i)
}

// Calculate is a no-op: the parent writes the readings.
func (inc *Managed) Calculate() error {
	return inc.init()
}

// SetReading stores r on candle i.
func (inc *Managed) SetReading(i int, r types.Reading) {
	c := inc.Candles().At(i)
	if c == nil {
		return
	}
	c.SetReading(inc.Name(), inc.Round(r), inc.sub)
}

// manage declares a storage helper and returns it typed.
func (b *Base) manage(role string, options ...Option) *Managed {
	m := NewManaged(options...)
	b.AddManaged(role, m)
	return m
}

// value returns the numeric reading of source on candle i.
func (b *Base) value(source string, i int) (float64, bool) {
	if source == "" {
		source = "close"
	}
	return b.Candles().FloatAt(source, i)
}

// window returns the numeric readings of source on the n candles ending at i.
// ok is false unless all n are present.
func (b *Base) window(source string, n, i int) (floats.Slice, bool) {
	if source == "" {
		source = "close"
	}

	values := b.Candles().ReadingsPeriod(source, n, i, true)
	return values, len(values) == n && i-n+1 >= 0
}

// warmedUp applies the three point presence check over the n candles ending at i.
func (b *Base) warmedUp(source string, n, i int) bool {
	if source == "" {
		source = "close"
	}
	return b.Candles().ReadingPeriod(source, n, i)
}

// previous returns this indicator's reading on candle i-1.
func (b *Base) previous(i int) types.Reading {
	if i < 1 {
		return types.Absent
	}
	return b.Candles().ReadingAt(b.Name(), i-1)
}
