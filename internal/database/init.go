package database

import (
	"context"
	"fmt"

	"github.com/yourusername/parlay-engine/internal/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS picks (
		id UUID PRIMARY KEY,
		player_name TEXT NOT NULL,
		team_name TEXT NOT NULL DEFAULT '',
		prop_type TEXT NOT NULL,
		category TEXT NOT NULL,
		side TEXT NOT NULL,
		recommended_line DOUBLE PRECISION,
		actual_line DOUBLE PRECISION,
		projected_value DOUBLE PRECISION,
		l10_avg DOUBLE PRECISION,
		l10_hit_rate DOUBLE PRECISION,
		confidence_score DOUBLE PRECISION,
		analysis_date DATE NOT NULL,
		outcome TEXT NOT NULL DEFAULT 'pending'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_picks_analysis_date ON picks (analysis_date, outcome)`,
	`CREATE TABLE IF NOT EXISTS game_contexts (
		team_name TEXT NOT NULL,
		game_id TEXT NOT NULL DEFAULT '',
		game_date DATE NOT NULL,
		expected_total DOUBLE PRECISION NOT NULL,
		pace TEXT NOT NULL DEFAULT 'average',
		PRIMARY KEY (team_name, game_date)
	)`,
	`CREATE TABLE IF NOT EXISTS backtest_runs (
		id UUID PRIMARY KEY,
		version TEXT NOT NULL,
		shape TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		dates INTEGER NOT NULL,
		total_legs INTEGER NOT NULL,
		hits INTEGER NOT NULL,
		misses INTEGER NOT NULL,
		pushes INTEGER NOT NULL,
		parlays_built INTEGER NOT NULL,
		parlays_all_hit INTEGER NOT NULL,
		leg_hit_rate DOUBLE PRECISION NOT NULL,
		parlay_win_rate DOUBLE PRECISION NOT NULL,
		avg_edge DOUBLE PRECISION NOT NULL,
		avg_synergy DOUBLE PRECISION NOT NULL,
		blocked_by_edge INTEGER NOT NULL,
		blocked_by_conflict INTEGER NOT NULL,
		slates JSONB NOT NULL,
		comparison JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_backtest_runs_version ON backtest_runs (version, created_at DESC)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the tables the engine reads and writes when they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, stmt := range schema {
			if _, err := db.Querier(txCtx).Exec(txCtx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
