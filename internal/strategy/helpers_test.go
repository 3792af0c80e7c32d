package strategy

import "github.com/yourusername/parlay-engine/internal/models"

func f(v float64) *float64 { return &v }

func pick(player, team, propType string, category models.Category, side models.Side) *models.Pick {
	p := &models.Pick{
		PlayerName: player,
		TeamName:   team,
		PropType:   propType,
		Category:   category,
		Side:       side,
		Outcome:    models.OutcomeHit,
	}
	p.PropFamily = models.ParsePropFamily(propType)
	return p
}
