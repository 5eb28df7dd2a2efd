package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var ReadingsCalculatedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacandle_readings_calculated_total",
		Help: "readings written by an indicator scan",
	}, []string{"indicator"})

var CalculateDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "tacandle_calculate_duration_seconds",
		Help:    "time spent in one indicator calculate pass",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"indicator"})

func init() {
	prometheus.MustRegister(ReadingsCalculatedMetrics, CalculateDurationMetrics)
}

func ObserveCalculate(indicator string, readings int, duration time.Duration) {
	if !Enabled() {
		return
	}

	if readings > 0 {
		ReadingsCalculatedMetrics.WithLabelValues(indicator).Add(float64(readings))
	}
	CalculateDurationMetrics.WithLabelValues(indicator).Observe(duration.Seconds())
}
