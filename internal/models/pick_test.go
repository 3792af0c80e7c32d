package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestPickLinePrefersActual(t *testing.T) {
	p := &Pick{RecommendedLine: float(24.5), ActualLine: float(25.5)}
	line, ok := p.Line()
	require.True(t, ok)
	assert.Equal(t, 25.5, line)

	p.ActualLine = nil
	line, ok = p.Line()
	require.True(t, ok)
	assert.Equal(t, 24.5, line)

	p.RecommendedLine = nil
	_, ok = p.Line()
	assert.False(t, ok)
}

func TestSideOpposes(t *testing.T) {
	assert.True(t, SideOver.Opposes(SideUnder))
	assert.True(t, SideUnder.Opposes(SideOver))
	assert.True(t, SideHome.Opposes(SideAway))
	assert.False(t, SideOver.Opposes(SideOver))
	assert.False(t, SideOver.Opposes(SideAway))
}

func TestParseOutcome(t *testing.T) {
	tests := map[string]Outcome{
		"hit":     OutcomeHit,
		"WON":     OutcomeHit,
		" lost ":  OutcomeMiss,
		"miss":    OutcomeMiss,
		"void":    OutcomePush,
		"push":    OutcomePush,
		"":        OutcomePending,
		"pending": OutcomePending,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseOutcome(raw), raw)
	}
}

func TestParsePropFamily(t *testing.T) {
	tests := map[string]PropFamily{
		"points":                  FamilyPoints,
		"Points":                  FamilyPoints,
		"points_rebounds_assists": FamilyPRA,
		"pra":                     FamilyPRA,
		"rebounds":                FamilyRebounds,
		"assists":                 FamilyAssists,
		"threes":                  FamilyThrees,
		"three_pointers_made":     FamilyThrees,
		"points_rebounds":         FamilyPointsRebounds,
		"pr":                      FamilyPointsRebounds,
		"points_assists":          FamilyPointsAssists,
		"Points + Assists":        FamilyPointsAssists,
		"rebounds_assists":        FamilyReboundsAssists,
		"ra":                      FamilyReboundsAssists,
		"steals":                  FamilyStealsBlocks,
		"blocks":                  FamilyStealsBlocks,
		"turnovers":               FamilyOther,
		"":                        FamilyOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePropFamily(raw), raw)
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryStarFloorOver, ParseCategory("star_floor_over"))
	assert.Equal(t, CategoryUnknown, ParseCategory("MYSTERY"))
	assert.Equal(t, ArchetypeRebounding, CategoryRoleRebounderOver.Archetype())
	assert.Equal(t, ArchetypeAssist, CategoryHighAssistOver.Archetype())
	assert.Equal(t, ArchetypeUnknown, CategoryUnknown.Archetype())
	assert.False(t, CategoryUnknown.IsKnown())
	assert.Len(t, KnownCategories(), 6)
}

func TestNormalize(t *testing.T) {
	p := &Pick{
		PropType:        "rebounds",
		Category:        "big_rebounder_over",
		Side:            "Over",
		Outcome:         "won",
		L10HitRate:      float(80),
		ConfidenceScore: float(0.65),
	}
	p.Normalize()

	assert.Equal(t, FamilyRebounds, p.PropFamily)
	assert.Equal(t, CategoryBigRebounderOver, p.Category)
	assert.Equal(t, SideOver, p.Side)
	assert.Equal(t, OutcomeHit, p.Outcome)
	assert.True(t, p.IsSettled())
	assert.InDelta(t, 0.8, *p.L10HitRate, 1e-9)
	assert.InDelta(t, 0.65, *p.ConfidenceScore, 1e-9)
}

func TestNormalizeRateClamps(t *testing.T) {
	assert.Nil(t, NormalizeRate(nil))
	assert.Nil(t, NormalizeRate(float(math.NaN())))
	assert.Equal(t, 1.0, *NormalizeRate(float(250)))
	assert.Equal(t, 0.0, *NormalizeRate(float(-0.2)))
	assert.Equal(t, 1.0, *NormalizeRate(float(1.5)))
	assert.Equal(t, 0.72, *NormalizeRate(float(0.72)))
	assert.InDelta(t, 0.02, *NormalizeRate(float(2)), 1e-9)
	assert.InDelta(t, 0.8, *NormalizeRate(float(80)), 1e-9)
	assert.Equal(t, 1.0, *NormalizeRate(float(100)))
}

func TestNormalizeDropsNonFiniteValues(t *testing.T) {
	p := &Pick{
		PropType:        "points",
		Side:            "over",
		RecommendedLine: float(24.5),
		ActualLine:      float(math.Inf(1)),
		ProjectedValue:  float(math.NaN()),
		L10Avg:          float(math.Inf(-1)),
		L10HitRate:      float(math.NaN()),
		ConfidenceScore: float(0.7),
	}
	p.Normalize()

	assert.Nil(t, p.ProjectedValue)
	assert.Nil(t, p.ActualLine)
	assert.Nil(t, p.L10Avg)
	assert.Nil(t, p.L10HitRate)
	require.NotNil(t, p.ConfidenceScore)

	line, ok := p.Line()
	require.True(t, ok)
	assert.Equal(t, 24.5, line)
}

func TestPlayerKeyNormalizes(t *testing.T) {
	a := &Pick{PlayerName: "  Nikola   Jokic"}
	b := &Pick{PlayerName: "nikola jokic"}
	assert.Equal(t, a.PlayerKey(), b.PlayerKey())
}

func TestGameContextsLookup(t *testing.T) {
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	contexts := NewGameContexts([]*GameContext{
		{TeamName: "Denver Nuggets", GameID: "g1", GameDate: date, ExpectedTotal: 210, Pace: PaceSlow},
		nil,
	})

	gc := contexts.Lookup("denver nuggets", 225)
	assert.Equal(t, 210.0, gc.ExpectedTotal)
	assert.Equal(t, "g1", gc.GameID)

	missing := contexts.Lookup("Boston Celtics", 225)
	assert.Equal(t, 225.0, missing.ExpectedTotal)
	assert.Equal(t, PaceAverage, missing.Pace)
	assert.Empty(t, missing.GameID)
}

func TestGroupGameContextsByDate(t *testing.T) {
	d1 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	grouped := GroupGameContextsByDate([]*GameContext{
		{TeamName: "A", GameDate: d1, ExpectedTotal: 220},
		{TeamName: "B", GameDate: d1, ExpectedTotal: 240},
		{TeamName: "A", GameDate: d2, ExpectedTotal: 210},
	})

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["2025-01-10"], 2)
	assert.Equal(t, 210.0, grouped["2025-01-11"].Lookup("A", 225).ExpectedTotal)
}
