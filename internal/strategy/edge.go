package strategy

import (
	"math"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Evaluation is the scored view of one pick under a strategy version
type Evaluation struct {
	Projection float64 `json:"projection"`
	Line       float64 `json:"line"`
	Edge       float64 `json:"edge"`
	BaseScore  float64 `json:"base_score"`
}

// ReconstructProjection returns the first present value of
// [projected value, L10 average, recommended line, actual line].
// ok is false only when none are present; the pick must then be excluded, never scored as zero.
func ReconstructProjection(pick *models.Pick) (float64, bool) {
	switch {
	case pick.ProjectedValue != nil:
		return *pick.ProjectedValue, true
	case pick.L10Avg != nil:
		return *pick.L10Avg, true
	case pick.RecommendedLine != nil:
		return *pick.RecommendedLine, true
	case pick.ActualLine != nil:
		return *pick.ActualLine, true
	}
	return 0, false
}

// Edge returns the directional distance between projection and the bet line, positive
// when the bet is favored: projection-line for over/home, line-projection for under/away.
// The actual line is used when present. ok is false when the pick has no line at all.
func Edge(pick *models.Pick, projection float64) (float64, bool) {
	line, ok := pick.Line()
	if !ok {
		return 0, false
	}
	if pick.Side.IsFavorable() {
		return projection - line, true
	}
	return line - projection, true
}

// BaseScore is the deterministic weighted desirability of a pick before synergy
func BaseScore(cfg Config, pick *models.Pick, edge float64) float64 {
	defaults := cfg.Defaults()
	hitRate := defaults.HitRate
	if pick.L10HitRate != nil {
		hitRate = *pick.L10HitRate
	}
	confidence := defaults.Confidence
	if pick.ConfidenceScore != nil {
		confidence = *pick.ConfidenceScore
	}
	w := cfg.Weights()
	return hitRate*w.HitRate + confidence*w.Confidence + edge*w.Edge
}

// Evaluate reconstructs the projection, computes edge and base score.
// ok is false when the pick has no usable projection or line, or when the result is not finite.
func Evaluate(cfg Config, pick *models.Pick) (Evaluation, bool) {
	projection, ok := ReconstructProjection(pick)
	if !ok {
		return Evaluation{}, false
	}
	edge, ok := Edge(pick, projection)
	if !ok {
		return Evaluation{}, false
	}
	line, _ := pick.Line()
	score := BaseScore(cfg, pick, edge)
	if !isFinite(edge) || !isFinite(score) {
		return Evaluation{}, false
	}
	return Evaluation{
		Projection: projection,
		Line:       line,
		Edge:       edge,
		BaseScore:  score,
	}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ExcludedByEdgeRule reports whether the version's edge rule rejects the pick,
// either for lack of a projection/line or for an edge below threshold.
func ExcludedByEdgeRule(cfg Config, pick *models.Pick) bool {
	eval, ok := Evaluate(cfg, pick)
	if !ok {
		return true
	}
	return !cfg.PassesEdgeGate(pick.PropType, eval.Edge)
}
