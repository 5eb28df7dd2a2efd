package candles

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/tacandle/pkg/types"
)

// Transform derives a candlestick type from the resampled candles. Derive is
// called once per source candle in order; prev is the last derived candle
// (nil at the start) and the returned candles must be fresh copies tagged
// with the transform acronym, so the source list is never mutated.
type Transform interface {
	Acronym() string
	Derive(prev, src *types.Candle) ([]*types.Candle, error)
}

type transformFactory func() Transform

var transforms = map[string]transformFactory{}

// RegisterTransform registers a candlestick type under its acronym and any aliases.
func RegisterTransform(factory transformFactory, aliases ...string) {
	t := factory()
	transforms[strings.ToUpper(t.Acronym())] = factory
	for _, alias := range aliases {
		transforms[strings.ToUpper(alias)] = factory
	}
}

// NewTransform looks a candlestick type up by acronym or alias. An empty name returns nil.
func NewTransform(name string) (Transform, error) {
	if name == "" {
		return nil, nil
	}

	factory, ok := transforms[strings.ToUpper(name)]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidConfiguration, "unknown candlestick type %q", name)
	}
	return factory(), nil
}

// TransformNames returns the registered acronyms and aliases, sorted.
func TransformNames() []string {
	var names []string
	for name := range transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
