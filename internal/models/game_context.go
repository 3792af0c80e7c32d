package models

import "time"

// Pace is a coarse game speed label
type Pace string

const (
	PaceSlow    Pace = "slow"
	PaceAverage Pace = "average"
	PaceFast    Pace = "fast"
)

// GameContext represents the environment of one team's game on a date
type GameContext struct {
	TeamName      string    `db:"team_name" json:"team_name"`
	GameID        string    `db:"game_id" json:"game_id"`
	GameDate      time.Time `db:"game_date" json:"game_date"`
	ExpectedTotal float64   `db:"expected_total" json:"expected_total"`
	Pace          Pace      `db:"pace" json:"pace"`
}

// DateKey returns the game date formatted as YYYY-MM-DD
func (g *GameContext) DateKey() string {
	return g.GameDate.UTC().Format(DateLayout)
}

// GameContexts indexes contexts by normalized team name
type GameContexts map[string]GameContext

// NewGameContexts builds an index from a slice. Later entries for the same team win.
func NewGameContexts(contexts []*GameContext) GameContexts {
	index := make(GameContexts, len(contexts))
	for _, gc := range contexts {
		if gc == nil {
			continue
		}
		index[NormalizeName(gc.TeamName)] = *gc
	}
	return index
}

// Lookup returns the context for a team, or a neutral average-paced context when absent
func (g GameContexts) Lookup(team string, neutralTotal float64) GameContext {
	if gc, ok := g[NormalizeName(team)]; ok {
		return gc
	}
	return GameContext{
		TeamName:      team,
		ExpectedTotal: neutralTotal,
		Pace:          PaceAverage,
	}
}

// GroupGameContextsByDate splits contexts into per-date indexes
func GroupGameContextsByDate(contexts []*GameContext) map[string]GameContexts {
	byDate := make(map[string][]*GameContext)
	for _, gc := range contexts {
		if gc == nil {
			continue
		}
		key := gc.DateKey()
		byDate[key] = append(byDate[key], gc)
	}
	result := make(map[string]GameContexts, len(byDate))
	for key, list := range byDate {
		result[key] = NewGameContexts(list)
	}
	return result
}
