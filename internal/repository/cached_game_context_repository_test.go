package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/models"
)

type countingContextRepo struct {
	calls    int
	err      error
	contexts []*models.GameContext
}

func (c *countingContextRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.GameContext, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.contexts, nil
}

func TestCachedGameContextRepositoryHitsCache(t *testing.T) {
	next := &countingContextRepo{contexts: []*models.GameContext{{TeamName: "Heat", ExpectedTotal: 210}}}
	cached := NewCachedGameContextRepository(next, time.Minute)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	first, err := cached.GetByDateRange(ctx, start, end)
	require.NoError(t, err)
	second, err := cached.GetByDateRange(ctx, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	hits, misses := cached.GetStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	_, err = cached.GetByDateRange(ctx, start, end.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)

	cached.Flush()
	_, err = cached.GetByDateRange(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestCachedGameContextRepositoryDoesNotCacheErrors(t *testing.T) {
	next := &countingContextRepo{err: errors.New("upstream down")}
	cached := NewCachedGameContextRepository(next, time.Minute)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := cached.GetByDateRange(context.Background(), day, day)
	assert.ErrorIs(t, err, next.err)

	next.err = nil
	_, err = cached.GetByDateRange(context.Background(), day, day)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
