package parlay

import "github.com/yourusername/parlay-engine/internal/models"

// Grade summarizes the settled outcomes of a parlay's legs
type Grade struct {
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	Pushes  int     `json:"pushes"`
	AllHit  bool    `json:"all_hit"`
	HitRate float64 `json:"hit_rate"`
}

// Legs returns the number of graded legs
func (g Grade) Legs() int {
	return g.Hits + g.Misses + g.Pushes
}

// GradeLegs tallies leg outcomes. Anything other than hit or miss is counted as a push.
// An empty or all-push parlay is not a win.
func GradeLegs(legs []Leg) Grade {
	var g Grade
	for _, leg := range legs {
		outcome := models.OutcomePush
		if leg.Pick != nil {
			outcome = leg.Pick.Outcome
		}
		switch outcome {
		case models.OutcomeHit:
			g.Hits++
		case models.OutcomeMiss:
			g.Misses++
		default:
			g.Pushes++
		}
	}
	g.AllHit = g.Misses == 0 && g.Hits > 0
	if decided := g.Hits + g.Misses; decided > 0 {
		g.HitRate = float64(g.Hits) / float64(decided)
	}
	return g
}
