package strategy

import "github.com/yourusername/parlay-engine/internal/models"

// Synergy scores
const (
	HardConflict       = -2.0
	SoftConflict       = -1.0
	slowReboundBonus   = 1.0
	slowUnderBonus     = 0.5
	fastScoringBonus   = 1.0
	sameTeamComplement = 0.3
)

// Synergy returns the signed compatibility of two legs. It is symmetric.
// Rules apply in precedence order: hard conflict, soft conflict, then additive bonuses.
func Synergy(cfg Config, a, b *models.Pick, contexts models.GameContexts) float64 {
	if isHardConflict(a, b) {
		return HardConflict
	}

	sameTeam := a.TeamKey() != "" && a.TeamKey() == b.TeamKey()
	sameFamily := a.PropFamily == b.PropFamily

	if sameTeam && sameFamily && a.Side.IsFavorable() && b.Side.IsFavorable() {
		return SoftConflict
	}

	params := cfg.SynergyParams()
	ctxA := contexts.Lookup(a.TeamName, params.NeutralExpectedTotal)
	ctxB := contexts.Lookup(b.TeamName, params.NeutralExpectedTotal)

	score := 0.0

	if ctxA.ExpectedTotal < params.SlowTotalThreshold || ctxB.ExpectedTotal < params.SlowTotalThreshold {
		if isReboundingOver(a) && isReboundingOver(b) && sameGame(sameTeam, ctxA, ctxB) {
			score += slowReboundBonus
		}
		if a.Side == models.SideUnder || b.Side == models.SideUnder {
			score += slowUnderBonus
		}
	}

	if !sameTeam && (ctxA.ExpectedTotal > params.FastTotalThreshold || ctxB.ExpectedTotal > params.FastTotalThreshold) {
		if isScoringOver(a) && isScoringOver(b) {
			score += fastScoringBonus
		}
	}

	if sameTeam && !sameFamily {
		score += sameTeamComplement
	}

	return score
}

// SynergySum totals the synergy of a candidate against every already selected pick.
// hard reports whether any single pair is a hard conflict.
func SynergySum(cfg Config, candidate *models.Pick, selected []*models.Pick, contexts models.GameContexts) (sum float64, hard bool) {
	for _, leg := range selected {
		s := Synergy(cfg, candidate, leg, contexts)
		if s <= HardConflict {
			hard = true
		}
		sum += s
	}
	return sum, hard
}

// ParlaySynergy totals synergy over every unordered pair of legs
func ParlaySynergy(cfg Config, legs []*models.Pick, contexts models.GameContexts) float64 {
	total := 0.0
	for i := 0; i < len(legs); i++ {
		for j := i + 1; j < len(legs); j++ {
			total += Synergy(cfg, legs[i], legs[j], contexts)
		}
	}
	return total
}

func isHardConflict(a, b *models.Pick) bool {
	if a.PlayerKey() == "" || a.PlayerKey() != b.PlayerKey() {
		return false
	}
	return a.Side.Opposes(b.Side)
}

func isReboundingOver(p *models.Pick) bool {
	return p.Side == models.SideOver && p.Category.Archetype() == models.ArchetypeRebounding
}

func isScoringOver(p *models.Pick) bool {
	if p.Side != models.SideOver {
		return false
	}
	archetype := p.Category.Archetype()
	return archetype == models.ArchetypeScoring || archetype == models.ArchetypeAssist
}

func sameGame(sameTeam bool, a, b models.GameContext) bool {
	if sameTeam {
		return true
	}
	return a.GameID != "" && a.GameID == b.GameID
}
