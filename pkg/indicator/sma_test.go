package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
python:

import pandas as pd
import pandas_ta as ta

data = pd.Series([0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9])
size = 5

result = ta.sma(data, size)
print(result)
*/
func TestSMA(t *testing.T) {
	var closes []float64
	for r := 0; r < 3; r++ {
		for i := 0; i < 10; i++ {
			closes = append(closes, float64(i))
		}
	}

	sma := NewSMA(5, "close")
	require.NoError(t, sma.Append(buildCandles(closes...)...))

	readings := sma.Readings()
	for i := 0; i < 4; i++ {
		assert.True(t, readings[i].IsAbsent())
	}

	assert.InDelta(t, 2.0, floatsOf(t, sma, 4), Delta)
	assert.InDelta(t, 6.0, floatsOf(t, sma, 10), Delta)
	assert.InDelta(t, 6.0, floatsOf(t, sma, 28), Delta)
	assert.InDelta(t, 7.0, floatsOf(t, sma, 29), Delta)

	// the running sum is kept unrounded
	sum, ok := sma.Candles().FloatAt("SMA_5_sum", 29)
	require.True(t, ok)
	assert.Equal(t, 35.0, sum)
}

func TestRMA(t *testing.T) {
	rma := NewRMA(3, "close")
	require.NoError(t, rma.Append(buildCandles(1, 2, 3, 4)...))

	assert.True(t, rma.Reading(1).IsAbsent())
	// adjusted exponentially weighted mean: (3 + 2*2/3 + 1*4/9) / (1 + 2/3 + 4/9)
	assert.InDelta(t, 43.0/19.0, floatsOf(t, rma, 2), Delta)
	assert.InDelta(t, 4.0/3.0+2.0/3.0*2.2632, floatsOf(t, rma, 3), Delta)
}

func TestWMA(t *testing.T) {
	wma := NewWMA(3, "close")
	require.NoError(t, wma.Append(buildCandles(1, 2, 3, 6)...))

	assert.True(t, wma.Reading(1).IsAbsent())
	assert.InDelta(t, 14.0/6.0, floatsOf(t, wma, 2), Delta)
	assert.InDelta(t, (2+6+18)/6.0, floatsOf(t, wma, 3), Delta)
}

func TestVWMA(t *testing.T) {
	candles := buildCandles(10, 20, 30)
	candles[0].Volume = 1
	candles[1].Volume = 3
	candles[2].Volume = 0

	vwma := NewVWMA(2)
	require.NoError(t, vwma.Append(candles...))

	assert.True(t, vwma.Reading(0).IsAbsent())
	assert.InDelta(t, (10*1+20*3)/4.0, floatsOf(t, vwma, 1), Delta)
	assert.InDelta(t, 20.0, floatsOf(t, vwma, 2), Delta)
}

func TestROC(t *testing.T) {
	roc := NewROC(2, "close")
	require.NoError(t, roc.Append(buildCandles(10, 11, 12.1)...))

	assert.True(t, roc.Reading(1).IsAbsent())
	assert.InDelta(t, 21.0, floatsOf(t, roc, 2), Delta)
}

func TestOBV(t *testing.T) {
	obv := NewOBV()
	require.NoError(t, obv.Append(buildCandles(10, 11, 10, 10, 12)...))

	want := []float64{0, 100, 0, 0, 100}
	for i, v := range want {
		assert.InDelta(t, v, floatsOf(t, obv, i), Delta)
	}
}

func TestHLA(t *testing.T) {
	candles := buildCandles(10, 12)
	hla := NewHLA()
	hlca := NewHLCA()
	require.NoError(t, hla.Append(candles...))
	require.NoError(t, hlca.Append(candles...))

	// second candle: open 10, close 12, high 12.5, low 9.5
	assert.InDelta(t, 11.0, floatsOf(t, hla, 1), Delta)
	assert.InDelta(t, 34.0/3.0, floatsOf(t, hlca, 1), Delta)
}
