// Package logger provides strategy-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StrategyLogger provides dedicated logging for strategy operations.
type StrategyLogger struct {
	*logrus.Entry
}

// NewStrategyLogger creates a new strategy logger.
func NewStrategyLogger(baseLogger *logrus.Logger) *StrategyLogger {
	return &StrategyLogger{
		Entry: baseLogger.WithField("component", "strategy"),
	}
}

// LogVersionRegistered logs a strategy version becoming available.
func (sl *StrategyLogger) LogVersionRegistered(name, version string, enforceEdgeGate, correlationEnabled bool, slots int) {
	sl.WithFields(logrus.Fields{
		"strategy_name":       name,
		"strategy_version":    version,
		"enforce_edge_gate":   enforceEdgeGate,
		"correlation_enabled": correlationEnabled,
		"slots":               slots,
	}).Info("Strategy version registered")
}

// LogLegSelected logs the winner of a parlay slot.
func (sl *StrategyLogger) LogLegSelected(strategyName, date string, slot int, player, category string, edge, score float64) {
	sl.WithFields(logrus.Fields{
		"strategy_name": strategyName,
		"date":          date,
		"slot":          slot,
		"player":        player,
		"category":      category,
		"edge":          edge,
		"score":         score,
	}).Debug("Leg selected")
}

// LogCandidateBlocked logs a candidate excluded from a slot.
func (sl *StrategyLogger) LogCandidateBlocked(strategyName, date, player, reason string, value float64) {
	sl.WithFields(logrus.Fields{
		"strategy_name": strategyName,
		"date":          date,
		"player":        player,
		"reason":        reason,
		"value":         value,
	}).Debug("Candidate blocked")
}
