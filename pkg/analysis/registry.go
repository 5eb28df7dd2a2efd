package analysis

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/tacandle/pkg/types"
)

// Func evaluates a movement analysis at the tail of s. Operands are reading
// addresses, length is the lookback.
type Func func(s types.CandleSlice, operands []string, length int) types.Reading

type analysis struct {
	operands int
	fn       Func
}

var analyses = map[string]analysis{}

var patterns = map[string]PatternFunc{}

// Register adds an analysis expecting the given number of operands.
func Register(name string, operands int, fn Func) {
	analyses[strings.ToLower(name)] = analysis{operands: operands, fn: fn}
}

// RegisterPattern adds a candle pattern.
func RegisterPattern(name string, fn PatternFunc) {
	patterns[strings.ToLower(name)] = fn
}

func boolOf(fn func(s types.CandleSlice, name string, length int) bool) Func {
	return func(s types.CandleSlice, operands []string, length int) types.Reading {
		return types.Bool(fn(s, operands[0], length))
	}
}

func pairOf(fn func(s types.CandleSlice, a, b string, length int) bool) Func {
	return func(s types.CandleSlice, operands []string, length int) types.Reading {
		return types.Bool(fn(s, operands[0], operands[1], length))
	}
}

func numberOf(fn func(s types.CandleSlice, name string, length int) (float64, bool)) Func {
	return func(s types.CandleSlice, operands []string, length int) types.Reading {
		v, ok := fn(s, operands[0], length)
		if !ok {
			return types.Absent
		}
		return types.Number(v)
	}
}

func barOf(fn func(s types.CandleSlice, name string, length int) (int, bool)) Func {
	return func(s types.CandleSlice, operands []string, length int) types.Reading {
		v, ok := fn(s, operands[0], length)
		if !ok {
			return types.Absent
		}
		return types.Number(float64(v))
	}
}

func init() {
	Register("positive", 0, func(s types.CandleSlice, _ []string, _ int) types.Reading {
		return types.Bool(Positive(s))
	})
	Register("negative", 0, func(s types.CandleSlice, _ []string, _ int) types.Reading {
		return types.Bool(Negative(s))
	})
	Register("rising", 1, boolOf(Rising))
	Register("falling", 1, boolOf(Falling))
	Register("mean_rising", 1, boolOf(MeanRising))
	Register("mean_falling", 1, boolOf(MeanFalling))
	Register("highest", 1, numberOf(Highest))
	Register("lowest", 1, numberOf(Lowest))
	Register("highestbar", 1, barOf(HighestBar))
	Register("lowestbar", 1, barOf(LowestBar))
	Register("cross", 2, pairOf(Cross))
	Register("crossover", 2, pairOf(Crossover))
	Register("crossunder", 2, pairOf(Crossunder))

	RegisterPattern("doji", Doji)
	RegisterPattern("engulfing", Engulfing)
}

// Lookup returns the analysis registered under name, checked against the operand count.
func Lookup(name string, operands int) (Func, error) {
	a, ok := analyses[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidAnalysis, "unknown analysis %q", name)
	}

	if a.operands != operands {
		return nil, errors.Wrapf(types.ErrInvalidAnalysis, "%s expects %d operands, got %d", name, a.operands, operands)
	}
	return a.fn, nil
}

// Evaluate looks up an analysis and applies it to the tail of s.
func Evaluate(s types.CandleSlice, name string, length int, operands ...string) (types.Reading, error) {
	fn, err := Lookup(name, len(operands))
	if err != nil {
		return types.Absent, err
	}
	return fn(s, operands, length), nil
}

// LookupPattern returns the candle pattern registered under name.
func LookupPattern(name string) (PatternFunc, error) {
	fn, ok := patterns[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidPattern, "unknown pattern %q", name)
	}
	return fn, nil
}

// Analyses returns the registered analysis names in order.
func Analyses() []string {
	names := make([]string, 0, len(analyses))
	for name := range analyses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Patterns returns the registered pattern names in order.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
