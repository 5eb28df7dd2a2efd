package candles

import (
	"math"

	"github.com/c9s/tacandle/pkg/types"
)

func init() {
	RegisterTransform(func() Transform { return &HeikinAshi{} }, "HeikinAshi", "Heikin-Ashi")
}

// HeikinAshi smooths the bars:
//
//	close = (open + high + low + close) / 4
//	open  = (prev open + prev close) / 2, or (open + close) / 2 on the first bar
//	high  = max(high, open, close)
//	low   = min(low, open, close)
type HeikinAshi struct{}

func (h *HeikinAshi) Acronym() string {
	return "HA"
}

func (h *HeikinAshi) Derive(prev, src *types.Candle) ([]*types.Candle, error) {
	ashi := src.Clone()
	ashi.SaveCleanValues()

	ashi.Close = (src.Open + src.High + src.Low + src.Close) / 4
	if prev == nil {
		ashi.Open = (src.Open + src.Close) / 2
	} else {
		ashi.Open = (prev.Open + prev.Close) / 2
	}
	ashi.High = math.Max(src.High, math.Max(ashi.Open, ashi.Close))
	ashi.Low = math.Min(src.Low, math.Min(ashi.Open, ashi.Close))

	if err := ashi.SetTag(h.Acronym()); err != nil {
		return nil, err
	}

	return []*types.Candle{ashi}, nil
}
