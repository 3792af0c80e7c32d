package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/config"
)

func TestFromConfig(t *testing.T) {
	bt, err := FromConfig(&config.BacktestConfig{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
		Versions:  []string{"baseline", "synergy"},
		Shape:     "compact_3",
		Workers:   8,
		Persist:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, day(1), bt.StartDate)
	assert.Equal(t, day(31), bt.EndDate)
	assert.Equal(t, 8, bt.workers())

	req := bt.Request()
	assert.Equal(t, "compact_3", req.Shape)
	assert.Equal(t, []string{"baseline", "synergy"}, req.Versions)
}

func TestFromConfigOptionalRange(t *testing.T) {
	bt, err := FromConfig(&config.BacktestConfig{Versions: []string{"baseline"}})
	require.NoError(t, err)
	assert.True(t, bt.StartDate.IsZero())
	assert.Equal(t, defaultWorkers, bt.workers())
}

func TestFromConfigErrors(t *testing.T) {
	_, err := FromConfig(nil)
	assert.Error(t, err)

	_, err = FromConfig(&config.BacktestConfig{Versions: []string{"baseline"}, StartDate: "01/02/2025"})
	assert.Error(t, err)

	_, err = FromConfig(&config.BacktestConfig{})
	assert.Error(t, err)

	_, err = FromConfig(&config.BacktestConfig{Versions: []string{"baseline"}, Workers: -1})
	assert.Error(t, err)
}
