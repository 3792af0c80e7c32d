package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

// SlateResult is the built and graded parlay for one date
type SlateResult struct {
	Date              string       `json:"date"`
	Candidates        int          `json:"candidates"`
	Legs              []parlay.Leg `json:"legs"`
	Grade             parlay.Grade `json:"grade"`
	BlockedByEdge     int          `json:"blocked_by_edge"`
	BlockedByConflict int          `json:"blocked_by_conflict"`
	Synergy           float64      `json:"synergy"`
	AvgEdge           float64      `json:"avg_edge"`
}

// Built reports whether the slate produced a parlay with at least one leg
func (s SlateResult) Built() bool {
	return len(s.Legs) > 0
}

// BuildSlate runs the builder and grader over one date's pool
func BuildSlate(date string, pool []*models.Pick, cfg strategy.Config, contexts models.GameContexts) (SlateResult, parlay.Result) {
	result := parlay.Build(pool, cfg, contexts)
	return SlateResult{
		Date:              date,
		Candidates:        len(pool),
		Legs:              result.Legs,
		Grade:             parlay.GradeLegs(result.Legs),
		BlockedByEdge:     len(result.BlockedByEdge),
		BlockedByConflict: len(result.BlockedByConflict),
		Synergy:           strategy.ParlaySynergy(cfg, result.Picks(), contexts),
		AvgEdge:           result.AvgEdge(),
	}, result
}

// Run is the aggregate of one strategy version over a date range
type Run struct {
	ID                uuid.UUID     `json:"id"`
	Version           string        `json:"version"`
	Shape             string        `json:"shape"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Dates             int           `json:"dates"`
	TotalLegs         int           `json:"total_legs"`
	Hits              int           `json:"hits"`
	Misses            int           `json:"misses"`
	Pushes            int           `json:"pushes"`
	ParlaysBuilt      int           `json:"parlays_built"`
	EmptySlates       int           `json:"empty_slates"`
	ParlaysAllHit     int           `json:"parlays_all_hit"`
	LegHitRate        float64       `json:"leg_hit_rate"`
	ParlayWinRate     float64       `json:"parlay_win_rate"`
	AvgEdge           float64       `json:"avg_edge"`
	AvgSynergy        float64       `json:"avg_synergy"`
	BlockedByEdge     int           `json:"blocked_by_edge"`
	BlockedByConflict int           `json:"blocked_by_conflict"`
	Slates            []SlateResult `json:"slates"`

	edgeSum    float64
	synergySum float64
}

// NewRun creates an empty run with a deterministic identifier
func NewRun(version, shape string, start, end time.Time) *Run {
	return &Run{
		ID:        RunID(version, shape, start, end),
		Version:   version,
		Shape:     shape,
		StartDate: start,
		EndDate:   end,
		Slates:    []SlateResult{},
	}
}

// RunID derives a stable identifier from the run's inputs
func RunID(version, shape string, start, end time.Time) uuid.UUID {
	name := version + "|" + shape + "|" + dateKey(start) + "|" + dateKey(end)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// Add folds a slate into the run's totals
func (r *Run) Add(s SlateResult) {
	r.Slates = append(r.Slates, s)
	r.Dates++
	r.TotalLegs += len(s.Legs)
	r.Hits += s.Grade.Hits
	r.Misses += s.Grade.Misses
	r.Pushes += s.Grade.Pushes
	r.BlockedByEdge += s.BlockedByEdge
	r.BlockedByConflict += s.BlockedByConflict

	if !s.Built() {
		r.EmptySlates++
		return
	}
	r.ParlaysBuilt++
	if s.Grade.AllHit {
		r.ParlaysAllHit++
	}
	r.edgeSum += s.AvgEdge
	r.synergySum += s.Synergy
}

// Finalize computes the derived rates. Every rate is 0 on a zero denominator.
func (r *Run) Finalize() {
	r.LegHitRate = ratio(float64(r.Hits), float64(r.Hits+r.Misses))
	r.ParlayWinRate = ratio(float64(r.ParlaysAllHit), float64(r.ParlaysBuilt))
	r.AvgEdge = ratio(r.edgeSum, float64(r.ParlaysBuilt))
	r.AvgSynergy = ratio(r.synergySum, float64(r.ParlaysBuilt))
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(models.DateLayout)
}
