package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/parlay-engine/internal/models"
)

// CachedGameContextRepository memoizes range lookups of another game context repository
type CachedGameContextRepository struct {
	next      GameContextRepository
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  uint64
	missCount uint64
}

// NewCachedGameContextRepository wraps next with an in-memory cache
func NewCachedGameContextRepository(next GameContextRepository, ttl time.Duration) *CachedGameContextRepository {
	return &CachedGameContextRepository{
		next:  next,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// GetByDateRange returns the cached contexts for the range or loads them from the wrapped repository
func (c *CachedGameContextRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.GameContext, error) {
	key := fmt.Sprintf("%s:%s", start.UTC().Format(models.DateLayout), end.UTC().Format(models.DateLayout))

	if cached, found := c.cache.Get(key); found {
		if contexts, ok := cached.([]*models.GameContext); ok {
			atomic.AddUint64(&c.hitCount, 1)
			return contexts, nil
		}
	}
	atomic.AddUint64(&c.missCount, 1)

	contexts, err := c.next.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, contexts, c.ttl)
	return contexts, nil
}

// Flush drops every cached range
func (c *CachedGameContextRepository) Flush() {
	c.cache.Flush()
}

// GetStats returns cache hit and miss counts
func (c *CachedGameContextRepository) GetStats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hitCount), atomic.LoadUint64(&c.missCount)
}
