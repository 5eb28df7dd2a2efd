package testutil

import (
	_ "embed"
	"math"
	"time"

	"github.com/c9s/tacandle/pkg/types"
)

//go:embed testdata/nasdaq_1m.json
var nasdaqCandlesJSON []byte

// NasdaqCandles returns a fresh copy of the 500 one-minute candles fixture.
func NasdaqCandles() []*types.Candle {
	candles, err := types.ParseCandlesJSON(nasdaqCandlesJSON)
	if err != nil {
		panic(err)
	}
	return candles
}

// NasdaqCandlesJSON returns the raw fixture.
func NasdaqCandlesJSON() []byte {
	return nasdaqCandlesJSON
}

// Candle builds a candle without a timeframe tag.
func Candle(ts time.Time, open, high, low, cloze float64, volume int64) *types.Candle {
	return types.NewCandle(open, high, low, cloze, volume, ts)
}

// CandlesFromCloses builds one candle per close price, step apart. The open is
// the previous close and the high/low extend half a point beyond the body.
func CandlesFromCloses(start time.Time, step time.Duration, closes ...float64) []*types.Candle {
	candles := make([]*types.Candle, 0, len(closes))
	open := closes[0]
	for i, c := range closes {
		high := math.Max(open, c) + 0.5
		low := math.Min(open, c) - 0.5
		candles = append(candles, types.NewCandle(open, high, low, c, 100, start.Add(time.Duration(i)*step)))
		open = c
	}
	return candles
}

// Clone deep copies the candles without readings.
func Clone(candles []*types.Candle) []*types.Candle {
	out := make([]*types.Candle, len(candles))
	for i, c := range candles {
		out[i] = c.Clone()
	}
	return out
}
