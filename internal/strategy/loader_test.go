package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestRegistryLoad(t *testing.T) {
	r := NewRegistry()

	err := r.Load([]config.StrategySettings{
		{
			Name:           "synergy_tight",
			Extends:        VersionSynergy,
			Version:        "2.1",
			EdgeThresholds: map[string]float64{"points": 4.0},
			SynergyWeight:  f(15),
			Shape:          "pair_scorers",
		},
		{
			Name:                 "baseline_gated",
			Extends:              VersionBaseline,
			EnforceEdgeGate:      boolPtr(true),
			DefaultEdgeThreshold: f(1.0),
		},
		{
			Name:               "tight_no_corr",
			Extends:            "synergy_tight",
			CorrelationEnabled: boolPtr(false),
		},
	}, map[string][]string{
		"pair_scorers": {"star_floor_over", "THREE_POINT_SHOOTER"},
	})
	require.NoError(t, err)

	slots, err := r.Shape("pair_scorers")
	require.NoError(t, err)
	assert.Equal(t, []models.Category{models.CategoryStarFloorOver, models.CategoryThreePointShooter}, slots)

	tight, err := r.Resolve("synergy_tight")
	require.NoError(t, err)
	assert.Equal(t, "2.1", tight.Version())
	assert.Equal(t, 4.0, tight.Threshold("points"))
	assert.Equal(t, 1.5, tight.Threshold("rebounds"))
	assert.Equal(t, 15.0, tight.Weights().Synergy)
	assert.Len(t, tight.Slots(), 2)
	assert.True(t, tight.CorrelationEnabled())

	gated, err := r.Resolve("baseline_gated")
	require.NoError(t, err)
	assert.True(t, gated.EnforcesEdgeGate())
	assert.Equal(t, 1.0, gated.Threshold("points"))
	assert.False(t, gated.CorrelationEnabled())

	chained, err := r.Resolve("tight_no_corr")
	require.NoError(t, err)
	assert.False(t, chained.CorrelationEnabled())
	assert.Equal(t, 4.0, chained.Threshold("points"))

	// the base version is untouched
	synergy, err := r.Resolve(VersionSynergy)
	require.NoError(t, err)
	assert.Equal(t, 3.0, synergy.Threshold("points"))
	assert.Equal(t, 10.0, synergy.Weights().Synergy)
}

func TestRegistryLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings []config.StrategySettings
		shapes   map[string][]string
		want     error
	}{
		{
			name:     "unknown base",
			settings: []config.StrategySettings{{Name: "x", Extends: "v9"}},
			want:     ErrUnknownVersion,
		},
		{
			name:     "unknown shape",
			settings: []config.StrategySettings{{Name: "x", Extends: VersionBaseline, Shape: "nope"}},
			want:     ErrUnknownShape,
		},
		{
			name:   "bad shape category",
			shapes: map[string][]string{"bad": {"MID_RANGE_OVER"}},
			want:   ErrInvalidConfig,
		},
		{
			name:   "empty shape",
			shapes: map[string][]string{"empty": {}},
			want:   ErrEmptySlots,
		},
		{
			name:     "negative threshold",
			settings: []config.StrategySettings{{Name: "x", Extends: VersionSynergy, EdgeThresholds: map[string]float64{"points": -1}}},
			want:     ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Load(tt.settings, tt.shapes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestConfigParamsRoundTrip(t *testing.T) {
	original := SynergyConfig()
	rebuilt, err := NewConfig(original.Params())
	require.NoError(t, err)
	assert.Equal(t, original.Parameters(), rebuilt.Parameters())
}
