package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BacktestRun represents a persisted backtest run for one strategy version
type BacktestRun struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	Version           string          `db:"version" json:"version"`
	Shape             string          `db:"shape" json:"shape"`
	StartDate         time.Time       `db:"start_date" json:"start_date"`
	EndDate           time.Time       `db:"end_date" json:"end_date"`
	Dates             int             `db:"dates" json:"dates"`
	TotalLegs         int             `db:"total_legs" json:"total_legs"`
	Hits              int             `db:"hits" json:"hits"`
	Misses            int             `db:"misses" json:"misses"`
	Pushes            int             `db:"pushes" json:"pushes"`
	ParlaysBuilt      int             `db:"parlays_built" json:"parlays_built"`
	ParlaysAllHit     int             `db:"parlays_all_hit" json:"parlays_all_hit"`
	LegHitRate        float64         `db:"leg_hit_rate" json:"leg_hit_rate"`
	ParlayWinRate     float64         `db:"parlay_win_rate" json:"parlay_win_rate"`
	AvgEdge           float64         `db:"avg_edge" json:"avg_edge"`
	AvgSynergy        float64         `db:"avg_synergy" json:"avg_synergy"`
	BlockedByEdge     int             `db:"blocked_by_edge" json:"blocked_by_edge"`
	BlockedByConflict int             `db:"blocked_by_conflict" json:"blocked_by_conflict"`
	Slates            json.RawMessage `db:"slates" json:"slates"`
	Comparison        json.RawMessage `db:"comparison" json:"comparison,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}
