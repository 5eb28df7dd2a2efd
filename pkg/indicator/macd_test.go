package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/testutil"
)

func TestMACD_Histogram(t *testing.T) {
	macd := NewMACD(12, 26, 9, "close")
	require.NoError(t, macd.Append(testutil.NasdaqCandles()...))

	bars := macd.Candles()
	checked := 0
	for i := range bars {
		line, ok1 := bars.FloatAt("MACD_12_26_9.MACD", i)
		signal, ok2 := bars.FloatAt("MACD_12_26_9.signal", i)
		histogram, ok3 := bars.FloatAt("MACD_12_26_9.histogram", i)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		assert.InDelta(t, line-signal, histogram, Delta, "%d", i)
		checked++
	}
	assert.Equal(t, 500-33, checked)

	line, _ := bars.FloatAt("MACD_12_26_9.MACD", -1)
	fast, _ := bars.FloatAt("MACD_12_26_9_EMA_12", -1)
	slow, _ := bars.FloatAt("MACD_12_26_9_EMA_26", -1)
	assert.InDelta(t, fast-slow, line, Delta)
}

func TestMACD_WarmUp(t *testing.T) {
	macd := NewMACD(12, 26, 9, "close")
	require.NoError(t, macd.Append(testutil.NasdaqCandles()...))

	assert.True(t, macd.Reading(24).IsAbsent())
	assert.True(t, macd.Reading(25).IsPresent())
	assert.True(t, macd.Reading(32).Field("signal").IsAbsent())
	assert.True(t, macd.Reading(33).Field("signal").IsPresent())
}

func TestMACD_Validate(t *testing.T) {
	assert.Error(t, NewMACD(12, 12, 9, "close").Validate())
	assert.Error(t, NewMACD(12, 26, 0, "close").Validate())
	assert.NoError(t, NewMACD(26, 12, 9, "close").Validate())
}
