// Package analysis evaluates movement predicates and candle patterns over
// the readings stored on a candle slice. Predicates look at the tail of the
// slice: pass s[:i+1] to evaluate them at index i. A lookback longer than
// the available readings is clamped to what is available.
package analysis

import (
	"strconv"

	"github.com/c9s/tacandle/pkg/datatype/floats"
	"github.com/c9s/tacandle/pkg/types"
)

// Positive reports whether the newest candle closed above its open.
func Positive(s types.CandleSlice) bool {
	c := s.Last()
	return c != nil && c.Direction() == types.DirectionUp
}

// Negative reports whether the newest candle closed below its open.
func Negative(s types.CandleSlice) bool {
	c := s.Last()
	return c != nil && c.Direction() == types.DirectionDown
}

// split returns the newest reading of name and the numeric readings of the
// length candles before it.
func split(s types.CandleSlice, name string, length int) (float64, floats.Slice, bool) {
	newest, ok := s.FloatAt(name, -1)
	if !ok || length <= 0 {
		return 0, nil, false
	}

	older := s.ReadingsPeriod(name, length, -1, false)
	return newest, older, len(older) > 0
}

// Rising reports whether the newest reading is above each of the length older readings.
func Rising(s types.CandleSlice, name string, length int) bool {
	newest, older, ok := split(s, name, length)
	return ok && newest > older.Max()
}

// Falling reports whether the newest reading is below each of the length older readings.
func Falling(s types.CandleSlice, name string, length int) bool {
	newest, older, ok := split(s, name, length)
	return ok && newest < older.Min()
}

// MeanRising reports whether the newest reading is above the mean of the length older readings.
func MeanRising(s types.CandleSlice, name string, length int) bool {
	newest, older, ok := split(s, name, length)
	return ok && newest > older.Mean()
}

// MeanFalling reports whether the newest reading is below the mean of the length older readings.
func MeanFalling(s types.CandleSlice, name string, length int) bool {
	newest, older, ok := split(s, name, length)
	return ok && newest < older.Mean()
}

// Highest returns the greatest reading of the last length candles, newest included.
func Highest(s types.CandleSlice, name string, length int) (float64, bool) {
	values := s.ReadingsPeriod(name, length, -1, true)
	if len(values) == 0 {
		return 0, false
	}
	return values.Max(), true
}

// Lowest returns the smallest reading of the last length candles, newest included.
func Lowest(s types.CandleSlice, name string, length int) (float64, bool) {
	values := s.ReadingsPeriod(name, length, -1, true)
	if len(values) == 0 {
		return 0, false
	}
	return values.Min(), true
}

// HighestBar returns how many candles ago the highest reading of the last
// length candles occurred, 0 being the newest. The most recent one wins ties.
func HighestBar(s types.CandleSlice, name string, length int) (int, bool) {
	values, offsets := newestFirst(s, name, length)
	if len(values) == 0 {
		return 0, false
	}
	return offsets[values.ArgMax()], true
}

// LowestBar returns how many candles ago the lowest reading of the last
// length candles occurred, 0 being the newest. The most recent one wins ties.
func LowestBar(s types.CandleSlice, name string, length int) (int, bool) {
	values, offsets := newestFirst(s, name, length)
	if len(values) == 0 {
		return 0, false
	}
	return offsets[values.ArgMin()], true
}

// newestFirst collects the present readings of the last length candles from
// the newest one back, with the offset of the candle each came from.
func newestFirst(s types.CandleSlice, name string, length int) (floats.Slice, []int) {
	n := len(s)
	if length > n {
		length = n
	}

	var values floats.Slice
	var offsets []int
	for k := 0; k < length; k++ {
		if v, ok := s.FloatAt(name, n-1-k); ok {
			values = append(values, v)
			offsets = append(offsets, k)
		}
	}
	return values, offsets
}

// operand resolves a reading address, or a numeric literal used as a constant line.
func operand(s types.CandleSlice, name string, i int) (float64, bool) {
	if v, err := strconv.ParseFloat(name, 64); err == nil {
		return v, true
	}
	return s.FloatAt(name, i)
}

// crossed walks the last length transitions from the newest one and reports
// whether any pair of consecutive candles satisfies the cross condition.
func crossed(s types.CandleSlice, a, b string, length int, cross func(prevA, curA, prevB, curB float64) bool) bool {
	n := len(s)
	if length > n-1 {
		length = n - 1
	}

	for k := 0; k < length; k++ {
		cur, prev := n-1-k, n-2-k
		curA, ok1 := operand(s, a, cur)
		prevA, ok2 := operand(s, a, prev)
		curB, ok3 := operand(s, b, cur)
		prevB, ok4 := operand(s, b, prev)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		if cross(prevA, curA, prevB, curB) {
			return true
		}
	}
	return false
}

// Crossover reports whether a rose above b within the last length transitions.
func Crossover(s types.CandleSlice, a, b string, length int) bool {
	return crossed(s, a, b, length, floats.CrossOver)
}

// Crossunder reports whether a fell below b within the last length transitions.
func Crossunder(s types.CandleSlice, a, b string, length int) bool {
	return crossed(s, a, b, length, floats.CrossUnder)
}

// Cross reports whether a crossed b in either direction within the last length transitions.
func Cross(s types.CandleSlice, a, b string, length int) bool {
	return crossed(s, a, b, length, func(prevA, curA, prevB, curB float64) bool {
		return floats.CrossOver(prevA, curA, prevB, curB) || floats.CrossUnder(prevA, curA, prevB, curB)
	})
}
