package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/testutil"
)

func TestSTOCH(t *testing.T) {
	stoch := NewSTOCH(14, 3, 3)
	require.NoError(t, stoch.Append(testutil.NasdaqCandles()...))

	bars := stoch.Candles()
	assert.True(t, stoch.Reading(14).IsAbsent())
	assert.True(t, stoch.Reading(15).IsPresent())
	assert.True(t, stoch.Reading(16).Field("d").IsAbsent())
	assert.True(t, stoch.Reading(17).Field("d").IsPresent())

	for i := 17; i < len(bars); i++ {
		k, ok := bars.FloatAt("STOCH_14_3_3.k", i)
		require.True(t, ok)
		d, ok := bars.FloatAt("STOCH_14_3_3.d", i)
		require.True(t, ok)
		assert.GreaterOrEqual(t, k, 0.0)
		assert.LessOrEqual(t, k, 100.0)

		// %D is the mean of the last three %K
		ks := bars.ReadingsPeriod("STOCH_14_3_3_k", 3, i, true)
		assert.InDelta(t, ks.Mean(), d, 2*Delta)
	}
}

func TestSTOCH_FlatRange(t *testing.T) {
	candles := buildCandles(5, 5, 5)
	for _, c := range candles {
		c.High, c.Low = 5, 5
	}

	stoch := NewSTOCH(2, 1, 1)
	require.NoError(t, stoch.Append(candles...))
	assert.InDelta(t, 50.0, floatsOf(t, stoch, 2, "k"), Delta)
}
