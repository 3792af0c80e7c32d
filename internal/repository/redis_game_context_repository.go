package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/parlay-engine/internal/models"
)

// DefaultGameContextTTL is how long a date's context hash lives in redis
const DefaultGameContextTTL = 24 * time.Hour

// RedisHashClient is the subset of the redis client used by the game context store
type RedisHashClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisGameContextRepository stores one hash per date: field = team, value = JSON context
type RedisGameContextRepository struct {
	client RedisHashClient
	prefix string
	ttl    time.Duration
}

// NewRedisGameContextRepository creates a redis-backed game context store
func NewRedisGameContextRepository(client RedisHashClient, prefix string, ttl time.Duration) *RedisGameContextRepository {
	if prefix == "" {
		prefix = "game_context"
	}
	if ttl <= 0 {
		ttl = DefaultGameContextTTL
	}
	return &RedisGameContextRepository{client: client, prefix: prefix, ttl: ttl}
}

// Key returns the hash key for a date
func (r *RedisGameContextRepository) Key(date time.Time) string {
	return fmt.Sprintf("%s:%s", r.prefix, date.UTC().Format(models.DateLayout))
}

// GetByDateRange reads every date hash in [start, end]. Missing dates yield no contexts.
func (r *RedisGameContextRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.GameContext, error) {
	var contexts []*models.GameContext
	for day := truncateDay(start); !day.After(truncateDay(end)); day = day.AddDate(0, 0, 1) {
		fields, err := r.client.HGetAll(ctx, r.Key(day)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read game contexts for %s: %w", day.Format(models.DateLayout), err)
		}

		teams := make([]string, 0, len(fields))
		for team := range fields {
			teams = append(teams, team)
		}
		sort.Strings(teams)

		for _, team := range teams {
			gc := &models.GameContext{}
			if err := json.Unmarshal([]byte(fields[team]), gc); err != nil {
				return nil, fmt.Errorf("failed to decode game context %s/%s: %w", day.Format(models.DateLayout), team, err)
			}
			if gc.GameDate.IsZero() {
				gc.GameDate = day
			}
			contexts = append(contexts, gc)
		}
	}
	return contexts, nil
}

// Save writes contexts into their date hashes and refreshes the TTL
func (r *RedisGameContextRepository) Save(ctx context.Context, contexts []*models.GameContext) error {
	byKey := make(map[string][]interface{})
	var keys []string
	for _, gc := range contexts {
		data, err := json.Marshal(gc)
		if err != nil {
			return fmt.Errorf("marshaling game context: %w", err)
		}
		key := r.Key(gc.GameDate)
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], models.NormalizeName(gc.TeamName), string(data))
	}

	for _, key := range keys {
		if err := r.client.HSet(ctx, key, byKey[key]...).Err(); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set ttl on %s: %w", key, err)
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
