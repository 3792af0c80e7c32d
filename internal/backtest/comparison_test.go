package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

func TestStrictIndex(t *testing.T) {
	baseline := strategy.BaselineConfig()
	synergy := strategy.SynergyConfig()

	assert.Equal(t, 1, StrictIndex(baseline, synergy))
	assert.Equal(t, 0, StrictIndex(synergy, baseline))
	assert.Equal(t, 1, StrictIndex(synergy, synergy))
	assert.Equal(t, 1, StrictIndex(baseline, baseline))
}

func TestCounterfactualFor(t *testing.T) {
	picks := []*models.Pick{
		testPick("A", "Knicks", "points", models.CategoryStarFloorOver, 28, 24, 0.8, day(10), models.OutcomeHit),  // passes
		testPick("B", "Knicks", "points", models.CategoryStarFloorOver, 25, 24, 0.8, day(10), models.OutcomeHit),  // excluded, hit
		testPick("C", "Knicks", "points", models.CategoryStarFloorOver, 23, 24, 0.8, day(10), models.OutcomeMiss), // excluded, miss
		testPick("D", "Knicks", "points", models.CategoryStarFloorOver, 22, 24, 0.8, day(10), models.OutcomeMiss), // excluded, miss
		testPick("E", "Knicks", "points", models.CategoryStarFloorOver, 24, 24, 0.8, day(10), models.OutcomePush), // excluded, push
		testPick("F", "Knicks", "points", models.CategoryStarFloorOver, 20, 24, 0.8, day(10), models.OutcomePending),
		nil,
	}

	cf := CounterfactualFor(strategy.SynergyConfig(), picks)
	assert.Equal(t, 4, cf.Excluded)
	assert.Equal(t, 1, cf.WouldHaveHit)
	assert.Equal(t, 2, cf.WouldHaveMissed)
	assert.Equal(t, 1, cf.WouldHavePushed)
	assert.InDelta(t, 66.6667, cf.BlockingEffectiveness, 1e-3)

	// no gate, nothing excluded
	assert.Equal(t, Counterfactual{}, CounterfactualFor(strategy.BaselineConfig(), picks))
}

func TestCompareDeltas(t *testing.T) {
	base := &Run{Version: "baseline", LegHitRate: 0.5, ParlayWinRate: 0.1, AvgEdge: 1, AvgSynergy: 0}
	cand := &Run{Version: "synergy", LegHitRate: 0.6, ParlayWinRate: 0.25, AvgEdge: 3, AvgSynergy: 0.5}

	c := Compare(base, cand, strategy.SynergyConfig(), nil)
	assert.Equal(t, "baseline", c.Baseline)
	assert.Equal(t, "synergy", c.Candidate)
	assert.InDelta(t, 0.1, c.LegHitRateDelta, 1e-9)
	assert.InDelta(t, 0.15, c.ParlayWinRateDelta, 1e-9)
	assert.Equal(t, 2.0, c.AvgEdgeDelta)
	assert.Equal(t, 0.5, c.AvgSynergyDelta)
	assert.Zero(t, c.Counterfactual.Excluded)
}
