package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/models"
)

const (
	errScanBacktestRun = "failed to scan backtest run: %w"

	backtestRunColumns = `id, version, shape, start_date, end_date, dates,
		total_legs, hits, misses, pushes, parlays_built, parlays_all_hit,
		leg_hit_rate, parlay_win_rate, avg_edge, avg_synergy,
		blocked_by_edge, blocked_by_conflict, slates, comparison, created_at`
)

// PostgresBacktestRunRepository implements BacktestRunRepository for PostgreSQL
type PostgresBacktestRunRepository struct {
	db *database.DB
}

// NewPostgresBacktestRunRepository creates a new backtest run repository
func NewPostgresBacktestRunRepository(db *database.DB) BacktestRunRepository {
	return &PostgresBacktestRunRepository{db: db}
}

// SaveRun upserts a backtest run. Run IDs are deterministic, so re-running a range replaces it.
func (r *PostgresBacktestRunRepository) SaveRun(ctx context.Context, run *models.BacktestRun) error {
	query := `
		INSERT INTO backtest_runs (` + backtestRunColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			dates = EXCLUDED.dates, total_legs = EXCLUDED.total_legs,
			hits = EXCLUDED.hits, misses = EXCLUDED.misses, pushes = EXCLUDED.pushes,
			parlays_built = EXCLUDED.parlays_built, parlays_all_hit = EXCLUDED.parlays_all_hit,
			leg_hit_rate = EXCLUDED.leg_hit_rate, parlay_win_rate = EXCLUDED.parlay_win_rate,
			avg_edge = EXCLUDED.avg_edge, avg_synergy = EXCLUDED.avg_synergy,
			blocked_by_edge = EXCLUDED.blocked_by_edge, blocked_by_conflict = EXCLUDED.blocked_by_conflict,
			slates = EXCLUDED.slates, comparison = EXCLUDED.comparison, created_at = EXCLUDED.created_at
	`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		run.ID, run.Version, run.Shape, run.StartDate, run.EndDate, run.Dates,
		run.TotalLegs, run.Hits, run.Misses, run.Pushes, run.ParlaysBuilt, run.ParlaysAllHit,
		run.LegHitRate, run.ParlayWinRate, run.AvgEdge, run.AvgSynergy,
		run.BlockedByEdge, run.BlockedByConflict, run.Slates, nullableJSON(run.Comparison), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest run: %w", err)
	}
	return nil
}

// GetByID retrieves a backtest run by ID
func (r *PostgresBacktestRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRun, error) {
	query := `SELECT ` + backtestRunColumns + ` FROM backtest_runs WHERE id = $1`

	run, err := scanBacktestRun(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatest retrieves the most recent runs, optionally restricted to one version
func (r *PostgresBacktestRunRepository) GetLatest(ctx context.Context, version string, limit int) ([]*models.BacktestRun, error) {
	query := `SELECT ` + backtestRunColumns + `
		FROM backtest_runs
		WHERE ($1 = '' OR version = $1)
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Querier(ctx).Query(ctx, query, version, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.BacktestRun
	for rows.Next() {
		run, err := scanBacktestRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanBacktestRun(row pgx.Row) (*models.BacktestRun, error) {
	run := &models.BacktestRun{}
	if err := row.Scan(
		&run.ID, &run.Version, &run.Shape, &run.StartDate, &run.EndDate, &run.Dates,
		&run.TotalLegs, &run.Hits, &run.Misses, &run.Pushes, &run.ParlaysBuilt, &run.ParlaysAllHit,
		&run.LegHitRate, &run.ParlayWinRate, &run.AvgEdge, &run.AvgSynergy,
		&run.BlockedByEdge, &run.BlockedByConflict, &run.Slates, &run.Comparison, &run.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf(errScanBacktestRun, err)
	}
	return run, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
