package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/models"
)

const (
	errScanPick = "failed to scan pick: %w"

	pickColumns = `id, player_name, team_name, prop_type, category, side,
		recommended_line, actual_line, projected_value, l10_avg, l10_hit_rate, confidence_score,
		analysis_date, outcome`
)

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

// GetSettledByDateRange retrieves settled picks within a date range
func (r *PostgresPickRepository) GetSettledByDateRange(ctx context.Context, start, end time.Time) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE analysis_date >= $1 AND analysis_date <= $2
			AND outcome IN ('hit', 'miss', 'push')
		ORDER BY analysis_date, id`

	rows, err := r.db.Querier(ctx).Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query settled picks: %w", err)
	}
	return scanPicks(rows)
}

// GetByAnalysisDate retrieves every pick for one analysis date regardless of outcome
func (r *PostgresPickRepository) GetByAnalysisDate(ctx context.Context, date time.Time) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks WHERE analysis_date = $1
		ORDER BY id`

	rows, err := r.db.Querier(ctx).Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks by analysis date: %w", err)
	}
	return scanPicks(rows)
}

func scanPicks(rows pgx.Rows) ([]*models.Pick, error) {
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		var (
			pick                    models.Pick
			category, side, outcome string
		)
		if err := rows.Scan(
			&pick.ID, &pick.PlayerName, &pick.TeamName, &pick.PropType, &category, &side,
			&pick.RecommendedLine, &pick.ActualLine, &pick.ProjectedValue, &pick.L10Avg, &pick.L10HitRate, &pick.ConfidenceScore,
			&pick.AnalysisDate, &outcome,
		); err != nil {
			return nil, fmt.Errorf(errScanPick, err)
		}
		pick.Category = models.Category(category)
		pick.Side = models.Side(side)
		pick.Outcome = models.Outcome(outcome)
		pick.Normalize()
		picks = append(picks, &pick)
	}
	return picks, rows.Err()
}
