package analysis

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

// DefaultPatternLength is the lookback used when a pattern is given none.
const DefaultPatternLength = 10

// DojiRatio is the largest body, relative to the mean range, of a doji.
const DojiRatio = 0.1

// PatternFunc evaluates a candle pattern on candle i of s against the
// length candles before it.
type PatternFunc func(s types.CandleSlice, i, length int) types.Reading

// Doji reports whether the body of candle i is smaller than DojiRatio times
// the mean high-low range of the previous length candles.
func Doji(s types.CandleSlice, i, length int) types.Reading {
	if i < 1 || i >= len(s) {
		return types.Absent
	}

	if length <= 0 {
		length = DefaultPatternLength
	}

	start := i - length
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, c := range s[start:i] {
		sum += c.Range()
	}
	mean := sum / float64(i-start)

	return types.Bool(math.Abs(s[i].Body()) < DojiRatio*mean)
}

// Engulfing reports whether the body of candle i covers the body of the
// previous candle and points the other way.
func Engulfing(s types.CandleSlice, i, _ int) types.Reading {
	if i < 1 || i >= len(s) {
		return types.Absent
	}

	c, prev := s[i], s[i-1]
	if c.Direction() == types.DirectionNone || prev.Direction() == types.DirectionNone || c.Direction() == prev.Direction() {
		return types.Bool(false)
	}

	top, bottom := math.Max(c.Open, c.Close), math.Min(c.Open, c.Close)
	prevTop, prevBottom := math.Max(prev.Open, prev.Close), math.Min(prev.Open, prev.Close)
	return types.Bool(top >= prevTop && bottom <= prevBottom && top-bottom > prevTop-prevBottom)
}
