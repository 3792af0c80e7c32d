package parlay

import (
	"time"

	"github.com/yourusername/parlay-engine/internal/models"
)

func f(v float64) *float64 { return &v }

var slateDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

type pickOpt func(*models.Pick)

func withProjection(v float64) pickOpt { return func(p *models.Pick) { p.ProjectedValue = f(v) } }
func withLine(v float64) pickOpt       { return func(p *models.Pick) { p.RecommendedLine = f(v) } }
func withHitRate(v float64) pickOpt    { return func(p *models.Pick) { p.L10HitRate = f(v) } }
func withOutcome(o models.Outcome) pickOpt {
	return func(p *models.Pick) { p.Outcome = o }
}

func newPick(player, team, propType string, category models.Category, side models.Side, opts ...pickOpt) *models.Pick {
	p := &models.Pick{
		PlayerName:   player,
		TeamName:     team,
		PropType:     propType,
		Category:     category,
		Side:         side,
		AnalysisDate: slateDate,
		Outcome:      models.OutcomeHit,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.PropFamily = models.ParsePropFamily(propType)
	return p
}
