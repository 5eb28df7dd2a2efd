package strategy

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/indicator"
	"github.com/c9s/tacandle/pkg/testutil"
	"github.com/c9s/tacandle/pkg/types"
)

const Delta = 1e-4

func newStrategy(t *testing.T) *Strategy {
	s := New(Config{Name: "test", Description: "fixture strategy"})
	require.NoError(t, s.AddIndicator(indicator.NewEMA(10, "close")))
	require.NoError(t, s.AddIndicator(indicator.NewMACD(12, 26, 9, "close")))
	require.NoError(t, s.AddIndicator(indicator.NewSMA(3, "close", indicator.WithTimeframe(5*time.Minute))))
	require.NoError(t, s.AddIndicator(indicator.NewRSI(14, "close", indicator.WithTimeframe(5*time.Minute))))
	require.NoError(t, s.AddIndicator(indicator.NewEMA(5, "close", indicator.WithCandlestick("HA"))))
	return s
}

func TestNew(t *testing.T) {
	s := New(Config{Name: "test"})
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)

	_, ok := s.Manager("default")
	assert.True(t, ok)
	assert.Empty(t, s.Indicators())
}

func TestStrategy_SharedManagers(t *testing.T) {
	s := newStrategy(t)

	sma, ok := s.Indicator("SMA_3_T5")
	require.True(t, ok)
	rsi, ok := s.Indicator("RSI_14_T5")
	require.True(t, ok)
	assert.Same(t, sma.Manager(), rsi.Manager())

	ema, _ := s.Indicator("EMA_10")
	macd, _ := s.Indicator("MACD_12_26_9")
	assert.Same(t, ema.Manager(), macd.Manager())
	m, _ := s.Manager("default")
	assert.Same(t, m, ema.Manager())

	ha, _ := s.Indicator("EMA_5_HA")
	assert.NotSame(t, m, ha.Manager())
	assert.Equal(t, "HA", ha.Manager().Name())
	assert.Len(t, s.managers, 3)
}

func TestStrategy_DuplicateIndicator(t *testing.T) {
	s := New(Config{Name: "test"})
	require.NoError(t, s.AddIndicator(indicator.NewEMA(10, "close")))
	assert.ErrorIs(t, s.AddIndicator(indicator.NewEMA(10, "close")), types.ErrInvalidIndicator)
}

func TestStrategy_AppendOneByOneEqualsBulk(t *testing.T) {
	bulk := newStrategy(t)
	require.NoError(t, bulk.Append(testutil.NasdaqCandles()...))

	incremental := newStrategy(t)
	for _, c := range testutil.NasdaqCandles() {
		require.NoError(t, incremental.Append(c))
	}

	for _, name := range []string{"EMA_10", "MACD_12_26_9.signal", "SMA_3_T5", "RSI_14_T5", "EMA_5_HA"} {
		want := bulk.ReadingAsList(name)
		got := incremental.ReadingAsList(name)
		require.Equal(t, len(want), len(got), name)
		for i := range want {
			assert.True(t, want[i].Equal(got[i], Delta), "%s at %d", name, i)
		}
	}

	assert.Equal(t, 500, bulk.Len())
	assert.Len(t, bulk.ReadingAsList("EMA_10"), 500)
	assert.Len(t, bulk.ReadingAsList("SMA_3_T5"), 100)
}

func TestStrategy_ReadingMatchesStandaloneIndicator(t *testing.T) {
	s := newStrategy(t)
	require.NoError(t, s.Append(testutil.NasdaqCandles()...))

	ema := indicator.NewEMA(10, "close")
	require.NoError(t, ema.Append(testutil.NasdaqCandles()...))

	assert.True(t, ema.Reading(-1).Equal(s.Reading("EMA_10", -1), Delta))

	closePrice, ok := s.Float("close", -1)
	require.True(t, ok)
	assert.Equal(t, testutil.NasdaqCandles()[499].Close, closePrice)

	// T5 readings are looked up on the T5 stream
	_, ok = s.Float("SMA_3_T5", -1)
	assert.True(t, ok)
	_, ok = s.Float("RSI_14_T5_avg_gain", -1)
	assert.True(t, ok)

	assert.True(t, s.Reading("NOPE", -1).IsAbsent())
}

func TestStrategy_AddIndicatorLate(t *testing.T) {
	s := New(Config{Name: "test"})
	require.NoError(t, s.Append(testutil.NasdaqCandles()...))

	require.NoError(t, s.AddIndicator(indicator.NewATR(14, indicator.WithTimeframe(5*time.Minute))))
	bars, err := s.Candles(5*time.Minute, "")
	require.NoError(t, err)
	assert.Len(t, bars, 100)
	assert.True(t, s.Reading("ATR_14_T5", -1).IsPresent())

	_, err = s.Candles(time.Hour, "")
	assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
}

func TestStrategy_AddIndicators(t *testing.T) {
	s := New(Config{Name: "test"})
	err := s.AddIndicators("SMA", map[string]interface{}{"period": 5}, map[string]interface{}{"period": 0}, map[string]interface{}{"period": 20})
	assert.ErrorIs(t, err, types.ErrInvalidIndicator)
	assert.Len(t, s.Indicators(), 2)
}

func TestStrategy_PurgeRemoveRecalculate(t *testing.T) {
	s := newStrategy(t)
	require.NoError(t, s.Append(testutil.NasdaqCandles()...))

	want := s.ReadingAsList("RSI_14_T5")

	require.NoError(t, s.Purge("RSI_14_T5"))
	assert.True(t, s.Reading("RSI_14_T5", -1).IsAbsent())

	require.NoError(t, s.Recalculate("RSI_14_T5"))
	got := s.ReadingAsList("RSI_14_T5")
	for i := range want {
		assert.True(t, want[i].Equal(got[i], Delta), "%d", i)
	}

	require.NoError(t, s.Recalculate(""))

	require.NoError(t, s.RemoveIndicator("EMA_5_HA"))
	_, ok := s.Indicator("EMA_5_HA")
	assert.False(t, ok)
	_, ok = s.Manager("HA")
	assert.False(t, ok)

	require.NoError(t, s.RemoveIndicator("EMA_10"))
	_, ok = s.Manager("default")
	assert.True(t, ok)

	assert.ErrorIs(t, s.Purge("EMA_10"), types.ErrMissingIndicator)
	assert.ErrorIs(t, s.Recalculate("EMA_10"), types.ErrMissingIndicator)
	assert.ErrorIs(t, s.RemoveIndicator("EMA_10"), types.ErrMissingIndicator)

	// the remaining indicators keep calculating
	require.NoError(t, s.Append(testutil.Candle(time.Date(2023, 6, 1, 21, 51, 0, 0, time.UTC), 1, 2, 0.5, 1.5, 100)))
	assert.True(t, s.Reading("MACD_12_26_9", -1).IsPresent())
}

func TestStrategy_OutOfOrderAppend(t *testing.T) {
	candles := testutil.NasdaqCandles()
	shuffled := append([]*types.Candle{}, candles[:250]...)
	shuffled = append(shuffled, candles[300:]...)

	s := New(Config{Name: "test"})
	require.NoError(t, s.AddIndicator(indicator.NewSMA(10, "close")))
	require.NoError(t, s.Append(shuffled...))
	require.NoError(t, s.Append(candles[250:300]...))

	fresh := New(Config{Name: "test"})
	require.NoError(t, fresh.AddIndicator(indicator.NewSMA(10, "close")))
	require.NoError(t, fresh.Append(testutil.NasdaqCandles()...))

	want, got := fresh.ReadingAsList("SMA_10"), s.ReadingAsList("SMA_10")
	require.Len(t, got, 500)
	for i := range want {
		assert.True(t, want[i].Equal(got[i], Delta), "%d", i)
	}

	for i := 1; i < s.Len(); i++ {
		assert.True(t, s.RawCandles()[i-1].Timestamp.Before(s.RawCandles()[i].Timestamp))
	}
}

func TestStrategy_EqualTimestampMerges(t *testing.T) {
	cs := testutil.NasdaqCandles()
	s := New(Config{Name: "test"})
	require.NoError(t, s.AddIndicator(indicator.NewSMA(2, "close")))
	require.NoError(t, s.AddIndicator(indicator.NewSMA(2, "close", indicator.WithTimeframe(5*time.Minute))))
	require.NoError(t, s.Append(cs[:5]...))

	update := cs[4].Clone()
	update.Close = 999
	update.High = cs[4].High + 100
	require.NoError(t, s.Append(update))

	assert.Equal(t, 5, s.Len())
	m, _ := s.Manager("default")
	require.Equal(t, 5, m.Len())

	last := m.Candles().Last()
	assert.True(t, cs[4].Timestamp.Equal(last.Timestamp))
	assert.Equal(t, cs[4].Close, last.Close)
	assert.Equal(t, cs[4].High+100, last.High)
	assert.Equal(t, cs[4].Volume*2, last.Volume)
	assert.Equal(t, 2, last.AggregationFactor)

	v, ok := s.Float("SMA_2", -1)
	require.True(t, ok)
	assert.InDelta(t, (cs[3].Close+cs[4].Close)/2, v, Delta)

	for i := 1; i < s.Len(); i++ {
		assert.True(t, s.RawCandles()[i-1].Timestamp.Before(s.RawCandles()[i].Timestamp))
	}
}

func TestStrategy_LateCandleOutsideCandleLife(t *testing.T) {
	cs := testutil.NasdaqCandles()
	s := New(Config{Name: "test", CandleLife: types.Timeframe(30 * time.Minute)})
	require.NoError(t, s.AddIndicator(indicator.NewEMA(10, "close")))
	for _, c := range cs[1:200] {
		require.NoError(t, s.Append(c))
	}

	want := s.ReadingAsList("EMA_10")
	require.NotEmpty(t, want)

	require.NoError(t, s.Append(cs[0]))
	require.NoError(t, s.Insert(cs[0]))

	got := s.ReadingAsList("EMA_10")
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.True(t, got[i].IsPresent(), "%d", i)
		assert.True(t, want[i].Equal(got[i], Delta), "%d", i)
	}
	assert.False(t, s.RawCandles()[0].Timestamp.Equal(cs[0].Timestamp))
}

func TestStrategy_SharedManagerSettings(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	s := New(Config{Name: "test"})
	require.NoError(t, s.AddIndicator(indicator.NewSMA(3, "close", indicator.WithTimeframe(5*time.Minute))))
	require.NoError(t, s.AddIndicator(indicator.NewEMA(3, "close", indicator.WithTimeframe(5*time.Minute), indicator.WithFillGaps(true))))

	m, ok := s.Manager("T5")
	require.True(t, ok)
	assert.False(t, m.FillGaps)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "EMA_3_T5") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestStrategy_Movement(t *testing.T) {
	s := New(Config{Name: "test"})
	require.NoError(t, s.AddIndicator(indicator.NewSMA(2, "close")))
	require.NoError(t, s.AddIndicator(indicator.NewSMA(3, "close", indicator.WithTimeframe(5*time.Minute))))
	require.NoError(t, s.Append(testutil.CandlesFromCloses(time.Date(2023, 6, 1, 13, 31, 0, 0, time.UTC), time.Minute, 5, 4, 3, 2, 6)...))

	rising, err := s.Rising("close", 1)
	require.NoError(t, err)
	assert.True(t, rising)

	falling, err := s.Falling("SMA_2", 2)
	require.NoError(t, err)
	assert.False(t, falling)

	// close 6 rises above SMA_2 (2.5 -> 4)
	crossed, err := s.Crossover("close", "SMA_2", 1)
	require.NoError(t, err)
	assert.True(t, crossed)

	crossed, err = s.Cross("SMA_2", "3", 3)
	require.NoError(t, err)
	assert.True(t, crossed)

	_, err = s.Cross("SMA_2", "SMA_3_T5", 3)
	assert.ErrorIs(t, err, types.ErrMixedTimeframes)

	_, err = s.Crossunder("SMA_2", "EMA_99", 3)
	assert.ErrorIs(t, err, types.ErrMissingIndicator)

	r, err := s.Analyse("positive", 0)
	require.NoError(t, err)
	positive, _ := r.Bool()
	assert.True(t, positive)
}

func TestStrategy_ExternalCandles(t *testing.T) {
	path, ok := testutil.ExternalCandlesConfigured(t, "TACANDLE")
	if !ok {
		t.Skip("external candles not configured")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	candles, err := types.ParseCandlesJSON(data)
	require.NoError(t, err)

	s := newStrategy(t)
	for _, c := range candles {
		require.NoError(t, s.Append(c))
	}
	assert.Equal(t, len(candles), s.Len())
}
