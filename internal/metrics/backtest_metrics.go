// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by strategy version and status",
	}, []string{"version", "status"})

	LegsGradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "legs_graded_total",
		Help:      "Total number of graded parlay legs by strategy version and outcome",
	}, []string{"version", "outcome"})

	CandidatesBlockedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_blocked_total",
		Help:      "Total number of candidates excluded from a slot by strategy version and reason",
	}, []string{"version", "reason"})
)

// Backtest histograms
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest requests in seconds",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// Backtest gauge vectors
var (
	ParlayWinRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "parlay_win_rate",
		Help:      "Full-parlay win rate of the latest run for each strategy version",
	}, []string{"version"})

	LegHitRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "leg_hit_rate",
		Help:      "Leg hit rate of the latest run for each strategy version",
	}, []string{"version"})

	BlockingEffectiveness = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blocking_effectiveness_percent",
		Help:      "Share of edge-excluded candidates that would have missed, latest comparison",
	}, []string{"baseline", "candidate"})
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "completed", "no_data", "failure"
func RecordBacktestRun(version, status string) {
	BacktestRunsTotal.WithLabelValues(version, status).Inc()
}

// RecordBacktestDuration records backtest duration.
func RecordBacktestDuration(durationSeconds float64) {
	BacktestDuration.Observe(durationSeconds)
}

// RecordGradedLegs adds a run's leg outcomes.
func RecordGradedLegs(version string, hits, misses, pushes int) {
	LegsGradedTotal.WithLabelValues(version, "hit").Add(float64(hits))
	LegsGradedTotal.WithLabelValues(version, "miss").Add(float64(misses))
	LegsGradedTotal.WithLabelValues(version, "push").Add(float64(pushes))
}

// RecordBlockedCandidates adds a run's blocked candidate counts for one reason.
func RecordBlockedCandidates(version, reason string, count int) {
	CandidatesBlockedTotal.WithLabelValues(version, reason).Add(float64(count))
}

// UpdateRunRates sets the latest rates for a strategy version.
func UpdateRunRates(version string, legHitRate, parlayWinRate float64) {
	LegHitRate.WithLabelValues(version).Set(legHitRate)
	ParlayWinRate.WithLabelValues(version).Set(parlayWinRate)
}

// UpdateBlockingEffectiveness sets the latest comparison's blocking effectiveness.
func UpdateBlockingEffectiveness(baseline, candidate string, percent float64) {
	BlockingEffectiveness.WithLabelValues(baseline, candidate).Set(percent)
}
