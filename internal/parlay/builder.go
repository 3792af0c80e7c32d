// Package parlay assembles multi-leg parlays from a scored candidate pool and grades them
// against settled outcomes. Everything here is pure and deterministic.
package parlay

import (
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

// Leg is a pick selected into a parlay slot
type Leg struct {
	Pick       *models.Pick    `json:"pick"`
	Slot       int             `json:"slot"`
	Category   models.Category `json:"category"`
	Projection float64         `json:"projection"`
	Edge       float64         `json:"edge"`
	BaseScore  float64         `json:"base_score"`
	SynergySum float64         `json:"synergy_sum"`
	Score      float64         `json:"score"`
}

// BlockReason explains why a candidate was excluded
type BlockReason string

const (
	BlockNoProjection BlockReason = "no_projection"
	BlockEdge         BlockReason = "edge_below_threshold"
	BlockConflict     BlockReason = "conflict"
)

// Blocked records a candidate excluded from a slot
type Blocked struct {
	Pick   *models.Pick `json:"pick"`
	Slot   int          `json:"slot"`
	Reason BlockReason  `json:"reason"`
	Edge   float64      `json:"edge"`
	Value  float64      `json:"value"`
}

// Result is the output of one build call
type Result struct {
	Legs              []Leg     `json:"legs"`
	BlockedByEdge     []Blocked `json:"blocked_by_edge"`
	BlockedByConflict []Blocked `json:"blocked_by_conflict"`
}

// Picks returns the selected picks in slot order
func (r Result) Picks() []*models.Pick {
	picks := make([]*models.Pick, len(r.Legs))
	for i, leg := range r.Legs {
		picks[i] = leg.Pick
	}
	return picks
}

// AvgEdge returns the mean edge of the selected legs, 0 for an empty parlay
func (r Result) AvgEdge() float64 {
	if len(r.Legs) == 0 {
		return 0
	}
	total := 0.0
	for _, leg := range r.Legs {
		total += leg.Edge
	}
	return total / float64(len(r.Legs))
}

// Build greedily fills the config's slots in order, one leg per slot.
//
// For each slot the pool is restricted to the slot's category. Candidates without a
// projection or line, or failing the edge gate, are recorded under BlockedByEdge. With
// correlation enabled, a candidate whose summed synergy against already chosen legs is at or
// below the conflict threshold, or that hard-conflicts any single chosen leg, is recorded
// under BlockedByConflict. The remaining candidate
// with the highest score wins the slot; on ties the earliest in pool order wins.
// Slots with no eligible candidate are omitted.
func Build(pool []*models.Pick, cfg strategy.Config, contexts models.GameContexts) Result {
	result := Result{
		Legs:              []Leg{},
		BlockedByEdge:     []Blocked{},
		BlockedByConflict: []Blocked{},
	}

	slots := cfg.Slots()
	selected := make([]*models.Pick, 0, len(slots))
	used := make(map[*models.Pick]bool, len(slots))
	edgeBlocked := make(map[*models.Pick]bool)
	conflictBlocked := make(map[*models.Pick]bool)

	params := cfg.SynergyParams()
	weights := cfg.Weights()

	for slotIdx, category := range slots {
		var best *Leg

		for _, pick := range pool {
			if pick == nil || pick.Category != category || used[pick] {
				continue
			}

			eval, ok := strategy.Evaluate(cfg, pick)
			if !ok {
				if !edgeBlocked[pick] {
					edgeBlocked[pick] = true
					result.BlockedByEdge = append(result.BlockedByEdge, Blocked{
						Pick: pick, Slot: slotIdx, Reason: BlockNoProjection,
					})
				}
				continue
			}

			if !cfg.PassesEdgeGate(pick.PropType, eval.Edge) {
				if !edgeBlocked[pick] {
					edgeBlocked[pick] = true
					result.BlockedByEdge = append(result.BlockedByEdge, Blocked{
						Pick: pick, Slot: slotIdx, Reason: BlockEdge, Edge: eval.Edge, Value: cfg.Threshold(pick.PropType),
					})
				}
				continue
			}

			synergySum := 0.0
			if cfg.CorrelationEnabled() {
				var hard bool
				synergySum, hard = strategy.SynergySum(cfg, pick, selected, contexts)
				if hard || synergySum <= params.ConflictBlockThreshold {
					if !conflictBlocked[pick] {
						conflictBlocked[pick] = true
						result.BlockedByConflict = append(result.BlockedByConflict, Blocked{
							Pick: pick, Slot: slotIdx, Reason: BlockConflict, Edge: eval.Edge, Value: synergySum,
						})
					}
					continue
				}
			}

			score := eval.BaseScore + synergySum*weights.Synergy
			if best == nil || score > best.Score {
				best = &Leg{
					Pick:       pick,
					Slot:       slotIdx,
					Category:   category,
					Projection: eval.Projection,
					Edge:       eval.Edge,
					BaseScore:  eval.BaseScore,
					SynergySum: synergySum,
					Score:      score,
				}
			}
		}

		if best == nil {
			continue
		}
		used[best.Pick] = true
		selected = append(selected, best.Pick)
		result.Legs = append(result.Legs, *best)
	}

	return result
}
