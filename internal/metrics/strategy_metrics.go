// Package metrics defines strategy-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Strategy gauges
var (
	StrategyVersionsRegistered = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "strategy_versions_registered",
		Help:      "Number of strategy versions available to backtests",
	})
)

// Strategy counter vectors
var (
	SlotsFilledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_filled_total",
		Help:      "Total number of parlay slots filled by strategy version and category",
	}, []string{"version", "category"})
)

// UpdateStrategyVersions sets the registered version count.
func UpdateStrategyVersions(count int) {
	StrategyVersionsRegistered.Set(float64(count))
}

// RecordSlotFilled records a slot won by a leg of the given category.
func RecordSlotFilled(version, category string) {
	SlotsFilledTotal.WithLabelValues(version, category).Inc()
}
