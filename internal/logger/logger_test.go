package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "production")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	dev := newLogger(buf, "verbose", "development")
	assert.Equal(t, logrus.InfoLevel, dev.GetLevel())
	_, ok = dev.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestStrategyLoggerVersionRegistered(t *testing.T) {
	log, buf := setupTestLogger()
	strategyLogger := NewStrategyLogger(log)

	strategyLogger.LogVersionRegistered("synergy", "2", true, true, 6)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "strategy", logEntry["component"])
	assert.Equal(t, "synergy", logEntry["strategy_name"])
	assert.Equal(t, true, logEntry["enforce_edge_gate"])
	assert.Equal(t, float64(6), logEntry["slots"])
	assert.Equal(t, "info", logEntry["level"])
}

func TestStrategyLoggerCandidateBlocked(t *testing.T) {
	log, buf := setupTestLogger()
	strategyLogger := NewStrategyLogger(log)

	strategyLogger.LogCandidateBlocked("synergy", "2025-01-10", "Julius Randle", "edge_below_threshold", -2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "debug", logEntry["level"])
	assert.Equal(t, "edge_below_threshold", logEntry["reason"])
	assert.Equal(t, -2.0, logEntry["value"])
}

func TestStrategyLoggerLegSelectedSuppressedAtInfo(t *testing.T) {
	log, buf := setupTestLogger()
	log.SetLevel(logrus.InfoLevel)

	NewStrategyLogger(log).LogLegSelected("baseline", "2025-01-10", 0, "Jalen Brunson", "STAR_FLOOR_OVER", 4, 95)
	assert.Zero(t, buf.Len())
}

func TestBacktestLoggerRunCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRunCompleted("synergy", 12, 60, 0.61, 0.25, 1500*time.Millisecond)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "backtest", logEntry["component"])
	assert.Equal(t, float64(12), logEntry["parlays_built"])
	assert.Equal(t, 0.25, logEntry["parlay_win_rate"])
	assert.Equal(t, 1500.0, logEntry["duration_ms"])
}

func TestBacktestLoggerRunStarted(t *testing.T) {
	log, buf := setupTestLogger()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	NewBacktestLogger(log).LogRunStarted([]string{"baseline", "synergy"}, "standard_6", start, start.AddDate(0, 0, 6), 140, 7)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "2025-01-01", logEntry["start_date"])
	assert.Equal(t, "2025-01-07", logEntry["end_date"])
	assert.Equal(t, []interface{}{"baseline", "synergy"}, logEntry["versions"])
}

func TestBacktestLoggerComparison(t *testing.T) {
	log, buf := setupTestLogger()

	NewBacktestLogger(log).LogComparison("baseline", "synergy", 0.05, 0.1, 8, 62.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "synergy", logEntry["candidate"])
	assert.Equal(t, 62.5, logEntry["blocking_effectiveness"])
	assert.Equal(t, float64(8), logEntry["excluded"])
}
