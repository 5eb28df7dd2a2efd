package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/testutil"
	"github.com/c9s/tacandle/pkg/types"
)

func rangeCandles() []*types.Candle {
	at := func(i int) time.Time { return startTime.Add(time.Duration(i) * time.Minute) }
	return []*types.Candle{
		testutil.Candle(at(0), 9, 10, 8, 9, 100),
		testutil.Candle(at(1), 9, 11, 9, 10, 100),
		testutil.Candle(at(2), 10, 12, 9, 11, 100),
		testutil.Candle(at(3), 12, 13, 12, 12, 100),
		testutil.Candle(at(4), 12, 12, 10, 11, 100),
	}
}

func TestTR(t *testing.T) {
	tr := NewTR()
	require.NoError(t, tr.Append(rangeCandles()...))

	assert.True(t, tr.Reading(0).IsAbsent())
	want := []float64{2, 3, 2, 2}
	for i, v := range want {
		assert.InDelta(t, v, floatsOf(t, tr, i+1), Delta)
	}
}

func TestATR(t *testing.T) {
	atr := NewATR(3)
	require.NoError(t, atr.Append(rangeCandles()...))

	for i := 0; i < 3; i++ {
		assert.True(t, atr.Reading(i).IsAbsent(), "%d", i)
	}

	// mean of the first three true ranges, then Wilder's smoothing
	assert.InDelta(t, 7.0/3.0, floatsOf(t, atr, 3), Delta)
	assert.InDelta(t, (2.3333*2+2)/3, floatsOf(t, atr, 4), Delta)

	assert.True(t, atr.Candles()[1].HasReading("ATR_3_TR"))
	assert.Contains(t, atr.Candles()[1].SubIndicators, "ATR_3_TR")
}

func TestKC(t *testing.T) {
	kc := NewKC(20, 2, "close")
	require.NoError(t, kc.Append(testutil.NasdaqCandles()...))

	for i := range kc.Candles() {
		r := kc.Reading(i)
		if r.IsAbsent() {
			continue
		}

		band, _ := r.Field("band").Float64()
		upper, _ := r.Field("upper").Float64()
		lower, _ := r.Field("lower").Float64()
		ema, ok := kc.Candles().FloatAt("KC_20_2_EMA_20", i)
		require.True(t, ok)
		atr, ok := kc.Candles().FloatAt("KC_20_2_ATR_20", i)
		require.True(t, ok)

		assert.InDelta(t, ema, band, Delta)
		assert.InDelta(t, band+2*atr, upper, Delta)
		assert.InDelta(t, band-2*atr, lower, Delta)
	}
	assert.True(t, kc.Reading(-1).IsPresent())
}

func TestBOLL(t *testing.T) {
	boll := NewBOLL(3, 2, "close")
	require.NoError(t, boll.Append(buildCandles(1, 2, 3)...))

	assert.True(t, boll.Reading(1).IsAbsent())
	assert.InDelta(t, 2.0, floatsOf(t, boll, 2, "sma"), Delta)
	assert.InDelta(t, 1.0, floatsOf(t, boll, 2, "stddev"), Delta)
	assert.InDelta(t, 4.0, floatsOf(t, boll, 2, "up"), Delta)
	assert.InDelta(t, 0.0, floatsOf(t, boll, 2, "down"), Delta)
}
