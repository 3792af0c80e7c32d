package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side represents the side of a pick
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
	SideHome  Side = "home"
	SideAway  Side = "away"
)

// IsFavorable reports whether the pick wins when the result lands above the line.
// Over and home are the favorable direction; under and away are the opposite.
func (s Side) IsFavorable() bool {
	return s == SideOver || s == SideHome
}

// Opposes reports whether two sides are mutually exclusive on the same market
func (s Side) Opposes(other Side) bool {
	switch s {
	case SideOver:
		return other == SideUnder
	case SideUnder:
		return other == SideOver
	case SideHome:
		return other == SideAway
	case SideAway:
		return other == SideHome
	}
	return false
}

// ParseSide normalizes a raw side label
func ParseSide(raw string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "over", "o":
		return SideOver
	case "under", "u":
		return SideUnder
	case "home":
		return SideHome
	case "away":
		return SideAway
	}
	return Side(strings.ToLower(strings.TrimSpace(raw)))
}

// Outcome represents the settled result of a pick
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomePush    Outcome = "push"
)

// IsTerminal reports whether the outcome is final
func (o Outcome) IsTerminal() bool {
	return o == OutcomeHit || o == OutcomeMiss || o == OutcomePush
}

// ParseOutcome normalizes a raw outcome label. Unknown values are pending.
func ParseOutcome(raw string) Outcome {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hit", "won", "win":
		return OutcomeHit
	case "miss", "lost", "loss":
		return OutcomeMiss
	case "push", "void":
		return OutcomePush
	}
	return OutcomePending
}

// Pick represents one scorable bet candidate for an analysis date
type Pick struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PlayerName      string     `db:"player_name" json:"player_name"`
	TeamName        string     `db:"team_name" json:"team_name"`
	PropType        string     `db:"prop_type" json:"prop_type"`
	PropFamily      PropFamily `db:"-" json:"prop_family"`
	Category        Category   `db:"category" json:"category"`
	Side            Side       `db:"side" json:"side"`
	RecommendedLine *float64   `db:"recommended_line" json:"recommended_line,omitempty"`
	ActualLine      *float64   `db:"actual_line" json:"actual_line,omitempty"`
	ProjectedValue  *float64   `db:"projected_value" json:"projected_value,omitempty"`
	L10Avg          *float64   `db:"l10_avg" json:"l10_avg,omitempty"`
	L10HitRate      *float64   `db:"l10_hit_rate" json:"l10_hit_rate,omitempty"`
	ConfidenceScore *float64   `db:"confidence_score" json:"confidence_score,omitempty"`
	AnalysisDate    time.Time  `db:"analysis_date" json:"analysis_date"`
	Outcome         Outcome    `db:"outcome" json:"outcome"`
}

// Line returns the line being bet against: the actual line when present, else the recommended one
func (p *Pick) Line() (float64, bool) {
	if p.ActualLine != nil {
		return *p.ActualLine, true
	}
	if p.RecommendedLine != nil {
		return *p.RecommendedLine, true
	}
	return 0, false
}

// IsSettled checks if the pick carries a terminal outcome
func (p *Pick) IsSettled() bool {
	return p.Outcome.IsTerminal()
}

// PlayerKey returns the normalized identity used for same-individual checks
func (p *Pick) PlayerKey() string {
	return NormalizeName(p.PlayerName)
}

// TeamKey returns the normalized team identity
func (p *Pick) TeamKey() string {
	return NormalizeName(p.TeamName)
}

// DateKey returns the analysis date formatted as YYYY-MM-DD
func (p *Pick) DateKey() string {
	return p.AnalysisDate.UTC().Format(DateLayout)
}

// Normalize resolves the closed tags from raw fields. It is called once at the ingestion boundary.
func (p *Pick) Normalize() {
	p.PropFamily = ParsePropFamily(p.PropType)
	p.Category = ParseCategory(string(p.Category))
	p.Side = ParseSide(string(p.Side))
	p.Outcome = ParseOutcome(string(p.Outcome))
	p.RecommendedLine = finite(p.RecommendedLine)
	p.ActualLine = finite(p.ActualLine)
	p.ProjectedValue = finite(p.ProjectedValue)
	p.L10Avg = finite(p.L10Avg)
	p.L10HitRate = NormalizeRate(p.L10HitRate)
	p.ConfidenceScore = NormalizeRate(p.ConfidenceScore)
}

// DateLayout is the calendar date format shared by stores and reports
const DateLayout = "2006-01-02"

// NormalizeName lowercases and collapses whitespace in a name
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// finite drops NaN and infinite values so they read as absent
func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// NormalizeRate maps a rate onto 0..1. Values in [2, 100] are read as
// percentages (e.g. 80); anything else outside 0..1 is clamped.
func NormalizeRate(v *float64) *float64 {
	v = finite(v)
	if v == nil {
		return nil
	}
	rate := *v
	if rate >= 2 && rate <= 100 {
		rate = rate / 100
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &rate
}
