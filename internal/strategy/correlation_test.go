package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/parlay-engine/internal/models"
)

func contexts(entries ...models.GameContext) models.GameContexts {
	list := make([]*models.GameContext, len(entries))
	for i := range entries {
		entries[i].GameDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		list[i] = &entries[i]
	}
	return models.NewGameContexts(list)
}

func TestSynergyHardConflict(t *testing.T) {
	cfg := SynergyConfig()
	over := pick("Jalen Brunson", "Knicks", "points", models.CategoryStarFloorOver, models.SideOver)
	under := pick("jalen  brunson", "Knicks", "assists", models.CategoryLowLineUnder, models.SideUnder)

	assert.Equal(t, HardConflict, Synergy(cfg, over, under, nil))
	assert.Equal(t, HardConflict, Synergy(cfg, under, over, nil))
}

func TestSynergySoftConflict(t *testing.T) {
	cfg := SynergyConfig()
	a := pick("Player A", "Celtics", "points", models.CategoryStarFloorOver, models.SideOver)
	b := pick("Player B", "Celtics", "points", models.CategoryStarFloorOver, models.SideOver)

	assert.Equal(t, SoftConflict, Synergy(cfg, a, b, nil))
}

func TestSynergySoftConflictSkipsBonuses(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205})
	a := pick("Player A", "Heat", "rebounds", models.CategoryBigRebounderOver, models.SideOver)
	b := pick("Player B", "Heat", "rebounds", models.CategoryRoleRebounderOver, models.SideOver)

	assert.Equal(t, SoftConflict, Synergy(cfg, a, b, ctx))
}

func TestSynergySlowGameRebounders(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(
		models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205},
		models.GameContext{TeamName: "Magic", GameID: "g1", ExpectedTotal: 205},
	)
	a := pick("Player A", "Heat", "rebounds", models.CategoryBigRebounderOver, models.SideOver)
	b := pick("Player B", "Magic", "rebounds", models.CategoryRoleRebounderOver, models.SideOver)

	assert.Equal(t, 1.0, Synergy(cfg, a, b, ctx))
}

func TestSynergySlowGameDifferentGamesNoReboundBonus(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(
		models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205},
		models.GameContext{TeamName: "Jazz", GameID: "g2", ExpectedTotal: 230},
	)
	a := pick("Player A", "Heat", "rebounds", models.CategoryBigRebounderOver, models.SideOver)
	b := pick("Player B", "Jazz", "rebounds", models.CategoryRoleRebounderOver, models.SideOver)

	assert.Equal(t, 0.0, Synergy(cfg, a, b, ctx))
}

func TestSynergySlowGameUnder(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205})
	a := pick("Player A", "Heat", "points", models.CategoryLowLineUnder, models.SideUnder)
	b := pick("Player B", "Suns", "assists", models.CategoryHighAssistOver, models.SideOver)

	assert.Equal(t, 0.5, Synergy(cfg, a, b, ctx))
	assert.Equal(t, 0.5, Synergy(cfg, b, a, ctx))
}

func TestSynergyFastGameScorers(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(models.GameContext{TeamName: "Pacers", GameID: "g1", ExpectedTotal: 240})
	a := pick("Player A", "Pacers", "points", models.CategoryStarFloorOver, models.SideOver)
	b := pick("Player B", "Hawks", "assists", models.CategoryHighAssistOver, models.SideOver)

	assert.Equal(t, 1.0, Synergy(cfg, a, b, ctx))
}

func TestSynergyFastGameSameTeamComplement(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(models.GameContext{TeamName: "Pacers", GameID: "g1", ExpectedTotal: 240})
	a := pick("Player A", "Pacers", "points", models.CategoryStarFloorOver, models.SideOver)
	b := pick("Player B", "Pacers", "assists", models.CategoryHighAssistOver, models.SideOver)

	assert.InDelta(t, 0.3, Synergy(cfg, a, b, ctx), 1e-9)
}

func TestSynergyComboPropsComplementSingleStat(t *testing.T) {
	cfg := SynergyConfig()
	scorer := pick("Player A", "Nuggets", "points", models.CategoryStarFloorOver, models.SideOver)
	combos := []string{"points_assists", "points_rebounds", "rebounds_assists", "points_rebounds_assists"}

	for _, propType := range combos {
		combo := pick("Player B", "Nuggets", propType, models.CategoryHighAssistOver, models.SideOver)
		assert.InDelta(t, 0.3, Synergy(cfg, scorer, combo, nil), 1e-9, propType)
	}

	a := pick("Player A", "Nuggets", "points_assists", models.CategoryHighAssistOver, models.SideOver)
	b := pick("Player B", "Nuggets", "Points_Assists", models.CategoryHighAssistOver, models.SideOver)
	assert.Equal(t, SoftConflict, Synergy(cfg, a, b, nil))
}

func TestSynergyMissingContextIsNeutral(t *testing.T) {
	cfg := SynergyConfig()
	a := pick("Player A", "Pacers", "points", models.CategoryStarFloorOver, models.SideOver)
	b := pick("Player B", "Hawks", "assists", models.CategoryHighAssistOver, models.SideOver)

	assert.Equal(t, 0.0, Synergy(cfg, a, b, nil))
	assert.Equal(t, 0.0, Synergy(cfg, a, b, models.GameContexts{}))
}

func TestSynergyIsSymmetric(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(
		models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205},
		models.GameContext{TeamName: "Pacers", GameID: "g2", ExpectedTotal: 241},
	)
	picks := []*models.Pick{
		pick("A", "Heat", "rebounds", models.CategoryBigRebounderOver, models.SideOver),
		pick("B", "Heat", "points", models.CategoryStarFloorOver, models.SideOver),
		pick("C", "Pacers", "points", models.CategoryStarFloorOver, models.SideOver),
		pick("D", "Pacers", "assists", models.CategoryLowLineUnder, models.SideUnder),
		pick("A", "Heat", "rebounds", models.CategoryLowLineUnder, models.SideUnder),
	}
	for _, a := range picks {
		for _, b := range picks {
			assert.Equal(t, Synergy(cfg, a, b, ctx), Synergy(cfg, b, a, ctx), "%s/%s", a.PlayerName, b.PlayerName)
		}
	}
}

func TestSynergySumFlagsHardConflict(t *testing.T) {
	cfg := SynergyConfig()
	ctx := contexts(models.GameContext{TeamName: "Heat", GameID: "g1", ExpectedTotal: 205})
	candidate := pick("A", "Heat", "points", models.CategoryLowLineUnder, models.SideUnder)
	selected := []*models.Pick{
		pick("A", "Heat", "points", models.CategoryStarFloorOver, models.SideOver),
		pick("B", "Bulls", "assists", models.CategoryHighAssistOver, models.SideOver),
	}

	sum, hard := SynergySum(cfg, candidate, selected, ctx)
	assert.True(t, hard)
	assert.Equal(t, -1.5, sum)
}

func TestParlaySynergy(t *testing.T) {
	cfg := SynergyConfig()
	legs := []*models.Pick{
		pick("A", "Celtics", "points", models.CategoryStarFloorOver, models.SideOver),
		pick("B", "Celtics", "rebounds", models.CategoryBigRebounderOver, models.SideOver),
		pick("C", "Celtics", "points", models.CategoryThreePointShooter, models.SideOver),
	}
	// A-B +0.3, A-C -1, B-C +0.3
	assert.InDelta(t, -0.4, ParlaySynergy(cfg, legs, nil), 1e-9)
	assert.Equal(t, 0.0, ParlaySynergy(cfg, legs[:1], nil))
}
