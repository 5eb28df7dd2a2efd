package indicator

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/tacandle/pkg/analysis"
	"github.com/c9s/tacandle/pkg/types"
)

type factory func() Calculator

var registry = map[string]factory{}

// Register adds an indicator kind. The factory returns an instance with the default parameters.
func Register(kind string, f factory) {
	registry[strings.ToUpper(kind)] = f
}

func init() {
	Register("EMA", func() Calculator { return &EMA{Period: 10, Source: "close"} })
	Register("SMA", func() Calculator { return &SMA{Period: 10, Source: "close"} })
	Register("RMA", func() Calculator { return &RMA{Period: 10, Source: "close"} })
	Register("WMA", func() Calculator { return &WMA{Period: 10, Source: "close"} })
	Register("VWMA", func() Calculator { return &VWMA{Period: 10} })
	Register("TR", func() Calculator { return &TR{} })
	Register("ATR", func() Calculator { return &ATR{Period: 14} })
	Register("HLA", func() Calculator { return &HLA{} })
	Register("HLCA", func() Calculator { return &HLCA{} })
	Register("ROC", func() Calculator { return &ROC{Period: 10, Source: "close"} })
	Register("OBV", func() Calculator { return &OBV{} })
	Register("MACD", func() Calculator { return &MACD{Fast: 12, Slow: 26, Signal: 9, Source: "close"} })
	Register("RSI", func() Calculator { return &RSI{Period: 14, Source: "close"} })
	Register("SUPERTREND", func() Calculator { return &Supertrend{Period: 10, Multiplier: 3} })
	Register("STOCH", func() Calculator { return &STOCH{Period: 14, Slow: 3, SmoothK: 3} })
	Register("ADX", func() Calculator { return &ADX{Period: 14, Signal: 14} })
	Register("KC", func() Calculator { return &KC{Period: 20, Multiplier: 2, Source: "close"} })
	Register("VWAP", func() Calculator { return &VWAP{Anchor: types.Timeframe(types.Day)} })
	Register("BOLL", func() Calculator { return &BOLL{Period: 20, K: 2, Source: "close"} })
	Register("PATTERN", func() Calculator { return &Pattern{Pattern: "doji", Length: analysis.DefaultPatternLength} })
}

// Kinds returns the registered indicator kinds in order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// New builds an indicator by kind. Params are decoded onto the kind's
// defaults, so {"period": 20, "timeframe": "T5"} sets only those two.
func New(kind string, params map[string]interface{}) (Indicator, error) {
	f, ok := registry[strings.ToUpper(kind)]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidIndicator, "unknown indicator type %q", kind)
	}

	impl := f()
	if len(params) > 0 {
		if err := reUnmarshal(params, impl); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidIndicator, "%s parameters: %s", kind, err.Error())
		}
	}

	impl = setup(impl)
	if err := impl.Validate(); err != nil {
		return nil, err
	}

	return impl.(Indicator), nil
}

func reUnmarshal(from interface{}, to interface{}) error {
	data, err := json.Marshal(from)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, to)
}

func invalid(kind string, format string, args ...interface{}) error {
	return errors.Wrapf(types.ErrInvalidIndicator, kind+": "+format, args...)
}
