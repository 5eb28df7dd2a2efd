package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

var CandlesAppendedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacandle_candles_appended_total",
		Help: "raw candles accepted by a candle manager",
	}, []string{"manager"})

var CandlesRejectedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacandle_candles_rejected_total",
		Help: "raw candles rejected because their timeframe is larger than the manager timeframe",
	}, []string{"manager"})

var ManagerCandlesMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacandle_manager_candles",
		Help: "number of candles exposed by a candle manager",
	}, []string{"manager"})

func init() {
	prometheus.MustRegister(CandlesAppendedMetrics, CandlesRejectedMetrics, ManagerCandlesMetrics)
}

// Enabled reports whether metric updates are turned on.
func Enabled() bool {
	return viper.GetBool("metrics")
}

func ObserveCandles(manager string, accepted, rejected, size int) {
	if !Enabled() {
		return
	}

	CandlesAppendedMetrics.WithLabelValues(manager).Add(float64(accepted))
	if rejected > 0 {
		CandlesRejectedMetrics.WithLabelValues(manager).Add(float64(rejected))
	}
	ManagerCandlesMetrics.WithLabelValues(manager).Set(float64(size))
}
