package types

import (
	"github.com/c9s/tacandle/pkg/datatype/floats"
)

// CandleSlice is an ordered candle list with reading lookups by index.
// Negative indexes count from the tail.
type CandleSlice []*Candle

func (s CandleSlice) Len() int {
	return len(s)
}

// Index normalizes a possibly negative index.
func (s CandleSlice) Index(i int) (int, bool) {
	if i < 0 {
		i += len(s)
	}
	return i, i >= 0 && i < len(s)
}

func (s CandleSlice) At(i int) *Candle {
	i, ok := s.Index(i)
	if !ok {
		return nil
	}
	return s[i]
}

func (s CandleSlice) Last() *Candle {
	return s.At(-1)
}

func (s CandleSlice) ReadingAt(name string, i int) Reading {
	c := s.At(i)
	if c == nil {
		return Absent
	}
	return c.Reading(name)
}

// FloatAt returns the numeric reading at index i.
func (s CandleSlice) FloatAt(name string, i int) (float64, bool) {
	return s.ReadingAt(name, i).Float64()
}

// ReadingCount returns the length of the streak of present readings ending at i.
func (s CandleSlice) ReadingCount(name string, i int) int {
	i, ok := s.Index(i)
	if !ok {
		return 0
	}

	count := 0
	for ; i >= 0; i-- {
		if s[i].Reading(name).IsAbsent() {
			break
		}
		count++
	}
	return count
}

// ReadingPeriod samples offsets 0, period/2 and period-1 behind i and reports
// whether all three readings are present. It does not check every index.
func (s CandleSlice) ReadingPeriod(name string, period, i int) bool {
	i, ok := s.Index(i)
	if !ok || period <= 0 {
		return false
	}

	for _, offset := range []int{0, period / 2, period - 1} {
		j := i - offset
		if j < 0 || s[j].Reading(name).IsAbsent() {
			return false
		}
	}
	return true
}

// ReadingsPeriod flattens the numeric readings in [i-length, i), or in
// (i-length, i] when includeLatest is set.
func (s CandleSlice) ReadingsPeriod(name string, length, i int, includeLatest bool) floats.Slice {
	i, ok := s.Index(i)
	if !ok || length <= 0 {
		return nil
	}

	start, end := i-length, i
	if includeLatest {
		start, end = start+1, end+1
	}
	if start < 0 {
		start = 0
	}

	var values floats.Slice
	for j := start; j < end; j++ {
		values = append(values, s[j].Reading(name).Values()...)
	}
	return values
}

func (s CandleSlice) Sum(name string, length, i int, includeLatest bool) float64 {
	return s.ReadingsPeriod(name, length, i, includeLatest).Sum()
}

func (s CandleSlice) Average(name string, length, i int, includeLatest bool) (float64, bool) {
	values := s.ReadingsPeriod(name, length, i, includeLatest)
	if len(values) == 0 {
		return 0, false
	}
	return values.Mean(), true
}

// Readings returns the whole series of a reading address.
func (s CandleSlice) Readings(name string) []Reading {
	readings := make([]Reading, len(s))
	for i, c := range s {
		readings[i] = c.Reading(name)
	}
	return readings
}

// Floats returns the numeric series, absent readings skipped.
func (s CandleSlice) Floats(name string) floats.Slice {
	var values floats.Slice
	for _, c := range s {
		if v, ok := c.Reading(name).Float64(); ok {
			values = append(values, v)
		}
	}
	return values
}
