package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/models"
)

func TestBuiltinVersions(t *testing.T) {
	baseline := BaselineConfig()
	assert.Equal(t, VersionBaseline, baseline.Name())
	assert.False(t, baseline.EnforcesEdgeGate())
	assert.False(t, baseline.CorrelationEnabled())
	assert.Len(t, baseline.Slots(), 6)
	assert.True(t, baseline.PassesEdgeGate("points", 0))

	synergy := SynergyConfig()
	assert.Equal(t, VersionSynergy, synergy.Name())
	assert.True(t, synergy.EnforcesEdgeGate())
	assert.True(t, synergy.CorrelationEnabled())
	assert.Equal(t, 3.0, synergy.Threshold("points"))
	assert.Equal(t, 4.0, synergy.Threshold("points_rebounds_assists"))
	assert.Equal(t, 2.0, synergy.Threshold("turnovers"))
}

func TestPassesEdgeGateUsesMagnitude(t *testing.T) {
	cfg := SynergyConfig()
	assert.True(t, cfg.PassesEdgeGate("points", 3))
	assert.True(t, cfg.PassesEdgeGate("points", -3.5))
	assert.False(t, cfg.PassesEdgeGate("points", 2.99))
	assert.False(t, cfg.PassesEdgeGate("points", -2))
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Params{Name: "empty"})
	assert.True(t, errors.Is(err, ErrEmptySlots))

	_, err = NewConfig(Params{Slots: StandardSixSlots()})
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewConfig(Params{Name: "bad", Slots: []models.Category{models.CategoryUnknown}})
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewConfig(Params{Name: "neg", Slots: StandardSixSlots(), EdgeThresholds: map[string]float64{"points": -1}})
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg, err := NewConfig(Params{Name: "custom", Slots: StandardSixSlots(), Synergy: DefaultSynergyParams()})
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Version())
}

func TestConfigIsImmutable(t *testing.T) {
	thresholds := map[string]float64{"points": 3}
	slots := []models.Category{models.CategoryStarFloorOver}
	cfg, err := NewConfig(Params{Name: "frozen", Slots: slots, EdgeThresholds: thresholds, EnforceEdgeGate: true})
	require.NoError(t, err)

	thresholds["points"] = 100
	slots[0] = models.CategoryLowLineUnder
	assert.Equal(t, 3.0, cfg.Threshold("points"))
	assert.Equal(t, models.CategoryStarFloorOver, cfg.Slots()[0])

	cfg.Slots()[0] = models.CategoryLowLineUnder
	cfg.EdgeThresholds()["points"] = 50
	assert.Equal(t, models.CategoryStarFloorOver, cfg.Slots()[0])
	assert.Equal(t, 3.0, cfg.Threshold("points"))
}

func TestWithThresholdDerivesCopy(t *testing.T) {
	base := SynergyConfig()
	raised := base.WithThreshold("points", 5)
	assert.Equal(t, 5.0, raised.Threshold("points"))
	assert.Equal(t, 3.0, base.Threshold("points"))
}

func TestWithSlots(t *testing.T) {
	cfg, err := SynergyConfig().WithSlots([]models.Category{models.CategoryBigRebounderOver})
	require.NoError(t, err)
	assert.Equal(t, []models.Category{models.CategoryBigRebounderOver}, cfg.Slots())

	_, err = SynergyConfig().WithSlots(nil)
	assert.True(t, errors.Is(err, ErrEmptySlots))
}

func TestParameters(t *testing.T) {
	params := SynergyConfig().Parameters()
	assert.Equal(t, VersionSynergy, params["name"])
	assert.Equal(t, true, params["enforce_edge_gate"])
	assert.Len(t, params["slots"], 6)
}
