package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/models"
)

// PostgresGameContextRepository implements GameContextStore for PostgreSQL
type PostgresGameContextRepository struct {
	db *database.DB
}

// NewPostgresGameContextRepository creates a new game context repository
func NewPostgresGameContextRepository(db *database.DB) GameContextStore {
	return &PostgresGameContextRepository{db: db}
}

// GetByDateRange retrieves game contexts within a date range
func (r *PostgresGameContextRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.GameContext, error) {
	query := `
		SELECT team_name, game_id, game_date, expected_total, pace
		FROM game_contexts
		WHERE game_date >= $1 AND game_date <= $2
		ORDER BY game_date, team_name
	`
	rows, err := r.db.Querier(ctx).Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query game contexts: %w", err)
	}
	defer rows.Close()

	var contexts []*models.GameContext
	for rows.Next() {
		gc := &models.GameContext{}
		var pace string
		if err := rows.Scan(&gc.TeamName, &gc.GameID, &gc.GameDate, &gc.ExpectedTotal, &pace); err != nil {
			return nil, fmt.Errorf("failed to scan game context: %w", err)
		}
		gc.Pace = models.Pace(pace)
		contexts = append(contexts, gc)
	}
	return contexts, rows.Err()
}

// Save upserts game contexts in a single transaction
func (r *PostgresGameContextRepository) Save(ctx context.Context, contexts []*models.GameContext) error {
	query := `
		INSERT INTO game_contexts (team_name, game_id, game_date, expected_total, pace)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (team_name, game_date) DO UPDATE
		SET game_id = EXCLUDED.game_id, expected_total = EXCLUDED.expected_total, pace = EXCLUDED.pace
	`
	return r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, gc := range contexts {
			if _, err := r.db.Querier(txCtx).Exec(txCtx, query, gc.TeamName, gc.GameID, gc.GameDate, gc.ExpectedTotal, string(gc.Pace)); err != nil {
				return fmt.Errorf("failed to save game context for %s: %w", gc.TeamName, err)
			}
		}
		return nil
	})
}
