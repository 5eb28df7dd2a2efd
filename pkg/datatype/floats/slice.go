package floats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Slice []float64

func (s Slice) Sum() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Sum(s)
}

func (s Slice) Mean() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s.Sum() / float64(len(s))
}

func (s Slice) Max() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return floats.Max(s)
}

func (s Slice) Min() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return floats.Min(s)
}

// ArgMax returns the index of the greatest value, the first one on ties.
func (s Slice) ArgMax() int {
	if len(s) == 0 {
		return -1
	}
	return floats.MaxIdx(s)
}

// ArgMin returns the index of the smallest value, the first one on ties.
func (s Slice) ArgMin() int {
	if len(s) == 0 {
		return -1
	}
	return floats.MinIdx(s)
}
