package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunStarted logs the start of a run.
func (bl *BacktestLogger) LogRunStarted(versions []string, shape string, start, end time.Time, candidates, dates int) {
	bl.WithFields(logrus.Fields{
		"versions":   versions,
		"shape":      shape,
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"candidates": candidates,
		"dates":      dates,
	}).Info("Backtest run started")
}

// LogSlateBuilt logs one date's parlay.
func (bl *BacktestLogger) LogSlateBuilt(version, date string, legs, blockedByEdge, blockedByConflict int, allHit bool) {
	bl.WithFields(logrus.Fields{
		"strategy_name":       version,
		"date":                date,
		"legs":                legs,
		"blocked_by_edge":     blockedByEdge,
		"blocked_by_conflict": blockedByConflict,
		"all_hit":             allHit,
	}).Debug("Slate built")
}

// LogRunCompleted logs a finished version run.
func (bl *BacktestLogger) LogRunCompleted(version string, parlaysBuilt, totalLegs int, legHitRate, parlayWinRate float64, duration time.Duration) {
	bl.WithFields(logrus.Fields{
		"strategy_name":   version,
		"parlays_built":   parlaysBuilt,
		"total_legs":      totalLegs,
		"leg_hit_rate":    legHitRate,
		"parlay_win_rate": parlayWinRate,
		"duration_ms":     float64(duration.Microseconds()) / 1000,
	}).Info("Backtest run completed")
}

// LogComparison logs the head-to-head result of two versions.
func (bl *BacktestLogger) LogComparison(baseline, candidate string, legHitRateDelta, parlayWinRateDelta float64, excluded int, blockingEffectiveness float64) {
	bl.WithFields(logrus.Fields{
		"baseline":               baseline,
		"candidate":              candidate,
		"leg_hit_rate_delta":     legHitRateDelta,
		"parlay_win_rate_delta":  parlayWinRateDelta,
		"excluded":               excluded,
		"blocking_effectiveness": blockingEffectiveness,
	}).Info("Strategy comparison computed")
}
