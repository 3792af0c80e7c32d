package repository

import (
	"fmt"

	"github.com/yourusername/parlay-engine/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Pick        PickRepository
	GameContext GameContextRepository
	BacktestRun BacktestRunRepository
}

// NewRepositories creates the PostgreSQL-backed repositories
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Pick:        NewPostgresPickRepository(db),
		GameContext: NewPostgresGameContextRepository(db),
		BacktestRun: NewPostgresBacktestRunRepository(db),
	}, nil
}
