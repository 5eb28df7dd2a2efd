package indicator

import (
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacandle/pkg/types"
)

var logst = logrus.WithField("indicator", "supertrend")

// Supertrend follows the trend with ATR bands around the high-low average.
// The lower (long) band never decreases while the direction is up and the
// upper (short) band never increases while it is down. The direction flips
// when the close crosses the band of the previous candle.
//
// The reading is a record {trend, direction, long, short}, trend being the
// band of the current direction.
//
// Refer: https://www.investopedia.com/supertrend-indicator-7976167
type Supertrend struct {
	Base
	Period     int     `json:"period"`
	Multiplier float64 `json:"multiplier"`

	atr, hla Indicator
}

func NewSupertrend(period int, multiplier float64, options ...Option) *Supertrend {
	return setup(&Supertrend{Period: period, Multiplier: multiplier}, options...)
}

func (inc *Supertrend) Kind() string {
	return "SUPERTREND"
}

func (inc *Supertrend) Params() []interface{} {
	return []interface{}{inc.Period, inc.Multiplier}
}

func (inc *Supertrend) Validate() error {
	if inc.Period <= 0 {
		return invalid("SUPERTREND", "period %d must be positive", inc.Period)
	}
	if inc.Multiplier <= 0 {
		return invalid("SUPERTREND", "multiplier %f must be positive", inc.Multiplier)
	}
	return nil
}

func (inc *Supertrend) Initialise() error {
	inc.atr = inc.AddSub(&ATR{Period: inc.Period}, true)
	inc.hla = inc.AddSub(&HLA{}, true)
	return nil
}

func (inc *Supertrend) CalculateReading(i int) types.Reading {
	atr, ok1 := inc.value(inc.atr.Name(), i)
	hla, ok2 := inc.value(inc.hla.Name(), i)
	if !ok1 || !ok2 {
		return types.Absent
	}

	closePrice := inc.Candles()[i].Close
	basicUpper := hla + inc.Multiplier*atr
	basicLower := hla - inc.Multiplier*atr

	prev := inc.previous(i)
	prevDirection, ok := prev.Field("direction").Float64()
	if !ok {
		return inc.record(types.DirectionUp, basicLower, basicUpper)
	}

	prevLong, _ := prev.Field("long").Float64()
	prevShort, _ := prev.Field("short").Float64()

	direction := int(prevDirection)
	switch {
	case direction == types.DirectionUp && closePrice < prevLong:
		direction = types.DirectionDown
	case direction == types.DirectionDown && closePrice > prevShort:
		direction = types.DirectionUp
	}

	if direction != int(prevDirection) {
		logst.Debugf("%s direction flipped to %d at %s", inc.Name(), direction, inc.Candles()[i].Timestamp)
	}

	long, short := basicLower, basicUpper
	if direction == types.DirectionUp && int(prevDirection) == types.DirectionUp && prevLong > long {
		long = prevLong
	}
	if direction == types.DirectionDown && int(prevDirection) == types.DirectionDown && prevShort < short {
		short = prevShort
	}

	return inc.record(direction, long, short)
}

func (inc *Supertrend) record(direction int, long, short float64) types.Reading {
	trend := long
	if direction == types.DirectionDown {
		trend = short
	}

	return types.Record(map[string]types.Reading{
		"trend":     types.Number(trend),
		"direction": types.Number(float64(direction)),
		"long":      types.Number(long),
		"short":     types.Number(short),
	})
}
