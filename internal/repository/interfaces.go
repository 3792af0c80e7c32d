package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/parlay-engine/internal/models"
)

// PickRepository defines read access to the candidate store
type PickRepository interface {
	// GetSettledByDateRange returns picks with a terminal outcome whose analysis date
	// falls within [start, end], ordered by analysis date then input order.
	GetSettledByDateRange(ctx context.Context, start, end time.Time) ([]*models.Pick, error)
	GetByAnalysisDate(ctx context.Context, date time.Time) ([]*models.Pick, error)
}

// GameContextRepository defines read access to the game context store
type GameContextRepository interface {
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.GameContext, error)
}

// GameContextStore is a game context repository that can also be written to
type GameContextStore interface {
	GameContextRepository
	Save(ctx context.Context, contexts []*models.GameContext) error
}

// BacktestRunRepository defines backtest run persistence
type BacktestRunRepository interface {
	SaveRun(ctx context.Context, run *models.BacktestRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRun, error)
	GetLatest(ctx context.Context, version string, limit int) ([]*models.BacktestRun, error)
}
