package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/testutil"
)

func TestEMA(t *testing.T) {
	ema := NewEMA(3, "close")
	require.NoError(t, ema.Append(buildCandles(1, 2, 3, 4, 5)...))

	readings := ema.Readings()
	assert.True(t, readings[0].IsAbsent())
	assert.True(t, readings[1].IsAbsent())
	assert.InDelta(t, 2.0, floatsOf(t, ema, 2), Delta)
	assert.InDelta(t, 3.0, floatsOf(t, ema, 3), Delta)
	assert.InDelta(t, 4.0, floatsOf(t, ema, 4), Delta)
}

func TestEMA_IncrementalEqualsBulk(t *testing.T) {
	bulk := NewEMA(10, "close")
	require.NoError(t, bulk.Append(testutil.NasdaqCandles()...))

	incremental := NewEMA(10, "close")
	for _, c := range testutil.NasdaqCandles() {
		require.NoError(t, incremental.Append(c))
	}

	want := bulk.Candles().Readings("EMA_10")
	got := incremental.Candles().Readings("EMA_10")
	require.Len(t, got, 500)
	for i := range want {
		assert.True(t, want[i].Equal(got[i], Delta), "%d: %s != %s", i, want[i], got[i])
	}
}

func TestEMA_Source(t *testing.T) {
	ema := NewEMA(2, "open")
	require.NoError(t, ema.Append(buildCandles(1, 2, 3)...))

	// opens are 1, 1, 2
	assert.InDelta(t, 1.0, floatsOf(t, ema, 1), Delta)
	assert.InDelta(t, 2.0/3.0*2+1.0/3.0*1, floatsOf(t, ema, 2), Delta)
}
