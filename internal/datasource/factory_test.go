package datasource

import (
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/repository"
)

func factoryConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{KeyPrefix: "ctx", TTLSeconds: 60},
		Sources: config.SourcesConfig{
			Picks:       config.PickSourceConfig{Type: "http", BaseURL: "http://picks.local", APIKey: "k"},
			GameContext: config.GameContextSourceConfig{Type: "redis", CacheEnabled: true, CacheTTLSeconds: 30},
		},
	}
}

// newNoopRedis returns a client that is never dialed by these tests
func newNoopRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
}

func TestFactory_HTTPAndRedis(t *testing.T) {
	f := NewFactory(factoryConfig(), nil, newNoopRedis(), nil)

	repos, err := f.Repositories()
	require.NoError(t, err)

	_, ok := repos.Pick.(*HTTPPickRepository)
	assert.True(t, ok)
	_, ok = repos.GameContext.(*repository.CachedGameContextRepository)
	assert.True(t, ok)
	assert.Nil(t, repos.BacktestRun)
}

func TestFactory_CacheDisabled(t *testing.T) {
	cfg := factoryConfig()
	cfg.Sources.GameContext.CacheEnabled = false

	repo, err := NewFactory(cfg, nil, newNoopRedis(), nil).GameContextRepository()
	require.NoError(t, err)
	_, ok := repo.(*repository.RedisGameContextRepository)
	assert.True(t, ok)
}

func TestFactory_MissingDependencies(t *testing.T) {
	cfg := factoryConfig()
	cfg.Sources.Picks.Type = "postgres"
	_, err := NewFactory(cfg, nil, nil, nil).PickRepository()
	assert.Error(t, err)

	cfg = factoryConfig()
	_, err = NewFactory(cfg, nil, nil, nil).GameContextStore()
	assert.Error(t, err)

	cfg.Sources.GameContext.Type = "csv"
	_, err = NewFactory(cfg, nil, newNoopRedis(), nil).GameContextStore()
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestHTTPClientConfigFromSettings(t *testing.T) {
	cfg := HTTPClientConfigFromSettings(config.PickSourceConfig{
		TimeoutSeconds: 10,
		RetryAttempts:  2,
		RateLimit:      3,
		Burst:          4,
	})
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 3.0, cfg.RateLimit)
	assert.Equal(t, 4, cfg.Burst)

	defaults := HTTPClientConfigFromSettings(config.PickSourceConfig{})
	assert.Equal(t, 30*time.Second, defaults.Timeout)
	assert.Equal(t, 1, defaults.Burst)
}

func TestNeedsDatabaseAndRedis(t *testing.T) {
	cfg := factoryConfig()
	assert.False(t, NeedsDatabase(cfg))
	assert.True(t, NeedsRedis(cfg))

	cfg.Backtest.Persist = true
	assert.True(t, NeedsDatabase(cfg))
}
