package backtest

import (
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

// Counterfactual partitions the settled picks the strict edge rule excludes by what they
// would have done
type Counterfactual struct {
	Excluded        int `json:"excluded"`
	WouldHaveHit    int `json:"would_have_hit"`
	WouldHaveMissed int `json:"would_have_missed"`
	WouldHavePushed int `json:"would_have_pushed"`
	// BlockingEffectiveness is missed / (hit + missed) as a percentage
	BlockingEffectiveness float64 `json:"blocking_effectiveness"`
}

// Comparison is the head-to-head of two runs over the same range. Deltas are candidate
// minus baseline.
type Comparison struct {
	Baseline           string         `json:"baseline"`
	Candidate          string         `json:"candidate"`
	LegHitRateDelta    float64        `json:"leg_hit_rate_delta"`
	ParlayWinRateDelta float64        `json:"parlay_win_rate_delta"`
	AvgEdgeDelta       float64        `json:"avg_edge_delta"`
	AvgSynergyDelta    float64        `json:"avg_synergy_delta"`
	Counterfactual     Counterfactual `json:"counterfactual"`
}

// StrictIndex picks which of two configs is the strict side: the one enforcing the edge
// gate, or the second when both or neither do.
func StrictIndex(first, second strategy.Config) int {
	if first.EnforcesEdgeGate() && !second.EnforcesEdgeGate() {
		return 0
	}
	return 1
}

// Compare derives the comparison from two completed runs and the already fetched picks
func Compare(baseline, candidate *Run, strict strategy.Config, picks []*models.Pick) *Comparison {
	return &Comparison{
		Baseline:           baseline.Version,
		Candidate:          candidate.Version,
		LegHitRateDelta:    candidate.LegHitRate - baseline.LegHitRate,
		ParlayWinRateDelta: candidate.ParlayWinRate - baseline.ParlayWinRate,
		AvgEdgeDelta:       candidate.AvgEdge - baseline.AvgEdge,
		AvgSynergyDelta:    candidate.AvgSynergy - baseline.AvgSynergy,
		Counterfactual:     CounterfactualFor(strict, picks),
	}
}

// CounterfactualFor replays the strict edge rule over every settled pick
func CounterfactualFor(strict strategy.Config, picks []*models.Pick) Counterfactual {
	var cf Counterfactual
	for _, p := range picks {
		if p == nil || !p.IsSettled() || !strategy.ExcludedByEdgeRule(strict, p) {
			continue
		}
		cf.Excluded++
		switch p.Outcome {
		case models.OutcomeHit:
			cf.WouldHaveHit++
		case models.OutcomeMiss:
			cf.WouldHaveMissed++
		default:
			cf.WouldHavePushed++
		}
	}
	cf.BlockingEffectiveness = ratio(float64(cf.WouldHaveMissed), float64(cf.WouldHaveHit+cf.WouldHaveMissed)) * 100
	return cf
}
