package indicator

import (
	"github.com/c9s/tacandle/pkg/analysis"
	"github.com/c9s/tacandle/pkg/types"
)

// Pattern stores a boolean candle pattern reading, e.g. "doji", on every candle.
type Pattern struct {
	Base
	Pattern string `json:"pattern"`
	Length  int    `json:"length"`

	fn analysis.PatternFunc
}

func NewPattern(pattern string, length int, options ...Option) *Pattern {
	return setup(&Pattern{Pattern: pattern, Length: length}, options...)
}

func (inc *Pattern) Kind() string {
	return "PATTERN"
}

func (inc *Pattern) Params() []interface{} {
	return []interface{}{inc.Pattern, inc.Length}
}

func (inc *Pattern) Validate() error {
	if inc.Length <= 0 {
		return invalid("PATTERN", "length %d must be positive", inc.Length)
	}

	_, err := analysis.LookupPattern(inc.Pattern)
	return err
}

func (inc *Pattern) Initialise() error {
	fn, err := analysis.LookupPattern(inc.Pattern)
	if err != nil {
		return err
	}
	inc.fn = fn
	return nil
}

func (inc *Pattern) CalculateReading(i int) types.Reading {
	return inc.fn(inc.Candles(), i, inc.Length)
}
