package indicator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/tacandle/pkg/candles"
	"github.com/c9s/tacandle/pkg/types"
)

// GenerateName joins the kind, the parameters, the timeframe tag and the
// candlestick acronym with "_", e.g. "SMA_10_T5_HA". Dots are replaced by
// commas so names never clash with the "<indicator>.<field>" address syntax.
func GenerateName(kind string, params []interface{}, timeframe time.Duration, candlestick string) string {
	parts := []string{kind}
	for _, p := range params {
		parts = append(parts, formatParam(p))
	}

	if timeframe > 0 {
		parts = append(parts, types.TimeframeString(timeframe))
	}

	if candlestick != "" {
		if t, err := candles.NewTransform(candlestick); err == nil && t != nil {
			candlestick = t.Acronym()
		}
		parts = append(parts, candlestick)
	}

	return strings.ReplaceAll(strings.Join(parts, "_"), ".", ",")
}

func formatParam(p interface{}) string {
	switch v := p.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Duration:
		return types.TimeframeString(v)
	case types.Timeframe:
		return v.String()
	case string:
		return v
	}
	return fmt.Sprintf("%v", p)
}

// sourceParams appends the source to the name parameters unless it is the close price.
func sourceParams(source string, params ...interface{}) []interface{} {
	if source != "" && source != "close" {
		params = append(params, source)
	}
	return params
}
