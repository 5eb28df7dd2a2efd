package strategy

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/c9s/tacandle/pkg/analysis"
	"github.com/c9s/tacandle/pkg/candles"
	"github.com/c9s/tacandle/pkg/types"
)

var attributes = map[string]struct{}{
	"open":      {},
	"high":      {},
	"low":       {},
	"close":     {},
	"volume":    {},
	"timestamp": {},
}

func isConstant(address string) bool {
	_, err := strconv.ParseFloat(address, 64)
	return err == nil
}

// streamOf resolves the manager holding the address. Attributes and numeric
// constants are not bound to a stream and return nil.
func (s *Strategy) streamOf(address string) (*candles.Manager, error) {
	if _, ok := attributes[address]; ok || isConstant(address) {
		return nil, nil
	}

	m := s.managerOf(address)
	if m == nil {
		return nil, errors.Wrapf(types.ErrMissingIndicator, "no indicator provides %s", address)
	}
	return m, nil
}

// stream resolves the candles shared by all the operands.
func (s *Strategy) stream(addresses ...string) (types.CandleSlice, error) {
	var found *candles.Manager
	for _, address := range addresses {
		m, err := s.streamOf(address)
		if err != nil {
			return nil, err
		}

		if m == nil {
			continue
		}

		if found != nil && found != m {
			return nil, errors.Wrapf(types.ErrMixedTimeframes, "%v live on %s and %s candles", addresses, found.Name(), m.Name())
		}
		found = m
	}

	if found == nil {
		found = s.managers[candles.DefaultName]
	}
	return found.Candles(), nil
}

// Analyse evaluates a registered analysis, e.g. "crossover", over the stream of its operands.
func (s *Strategy) Analyse(name string, length int, operands ...string) (types.Reading, error) {
	bars, err := s.stream(operands...)
	if err != nil {
		return types.Absent, err
	}
	return analysis.Evaluate(bars, name, length, operands...)
}

func (s *Strategy) Rising(address string, length int) (bool, error) {
	bars, err := s.stream(address)
	if err != nil {
		return false, err
	}
	return analysis.Rising(bars, address, length), nil
}

func (s *Strategy) Falling(address string, length int) (bool, error) {
	bars, err := s.stream(address)
	if err != nil {
		return false, err
	}
	return analysis.Falling(bars, address, length), nil
}

// Cross reports whether a crossed b within the last length candles. Both
// operands must live on the same candles.
func (s *Strategy) Cross(a, b string, length int) (bool, error) {
	bars, err := s.stream(a, b)
	if err != nil {
		return false, err
	}
	return analysis.Cross(bars, a, b, length), nil
}

func (s *Strategy) Crossover(a, b string, length int) (bool, error) {
	bars, err := s.stream(a, b)
	if err != nil {
		return false, err
	}
	return analysis.Crossover(bars, a, b, length), nil
}

func (s *Strategy) Crossunder(a, b string, length int) (bool, error) {
	bars, err := s.stream(a, b)
	if err != nil {
		return false, err
	}
	return analysis.Crossunder(bars, a, b, length), nil
}
