package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/repository"
)

// SourceType represents the type of data source
type SourceType string

const (
	PostgresSourceType SourceType = "postgres"
	HTTPSourceType     SourceType = "http"
	RedisSourceType    SourceType = "redis"
)

// Factory creates the candidate and game context stores selected by configuration
type Factory struct {
	config *config.Config
	db     *database.DB
	redis  repository.RedisHashClient
	logger *logrus.Logger
}

// NewFactory creates a new data source factory. db and redisClient may be nil when the
// configured sources do not need them.
func NewFactory(cfg *config.Config, db *database.DB, redisClient repository.RedisHashClient, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		config: cfg,
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// HTTPClientConfigFromSettings derives the HTTP client settings for the picks API
func HTTPClientConfigFromSettings(cfg config.PickSourceConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.RetryAttempts
	httpCfg.RateLimit = cfg.RateLimit
	if cfg.Burst > 0 {
		httpCfg.Burst = cfg.Burst
	}
	return httpCfg
}

// PickRepository creates the configured candidate store
func (f *Factory) PickRepository() (repository.PickRepository, error) {
	source := f.config.Sources.Picks
	switch SourceType(source.Type) {
	case PostgresSourceType:
		if f.db == nil {
			return nil, fmt.Errorf("postgres pick source requires a database connection")
		}
		return repository.NewPostgresPickRepository(f.db), nil

	case HTTPSourceType:
		if source.BaseURL == "" {
			return nil, fmt.Errorf("http pick source requires a base URL")
		}
		client := NewRateLimitedHTTPClient(HTTPClientConfigFromSettings(source), f.logger)
		f.logger.WithField("base_url", source.BaseURL).Info("Using picks API")
		return NewHTTPPickRepository(client, source.BaseURL, source.APIKey, f.logger), nil

	default:
		return nil, fmt.Errorf("%w: pick source %q", ErrUnknownSource, source.Type)
	}
}

// GameContextStore creates the configured game context store without caching
func (f *Factory) GameContextStore() (repository.GameContextStore, error) {
	source := f.config.Sources.GameContext
	switch SourceType(source.Type) {
	case PostgresSourceType:
		if f.db == nil {
			return nil, fmt.Errorf("postgres game context source requires a database connection")
		}
		return repository.NewPostgresGameContextRepository(f.db), nil

	case RedisSourceType:
		if f.redis == nil {
			return nil, fmt.Errorf("redis game context source requires a redis client")
		}
		ttl := time.Duration(f.config.Redis.TTLSeconds) * time.Second
		return repository.NewRedisGameContextRepository(f.redis, f.config.Redis.KeyPrefix, ttl), nil

	default:
		return nil, fmt.Errorf("%w: game context source %q", ErrUnknownSource, source.Type)
	}
}

// GameContextRepository creates the configured game context store, wrapped in the
// in-memory cache when enabled
func (f *Factory) GameContextRepository() (repository.GameContextRepository, error) {
	store, err := f.GameContextStore()
	if err != nil {
		return nil, err
	}

	source := f.config.Sources.GameContext
	if !source.CacheEnabled {
		return store, nil
	}

	ttl := time.Duration(source.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	f.logger.WithField("ttl", ttl).Debug("Caching game context lookups")
	return repository.NewCachedGameContextRepository(store, ttl), nil
}

// Repositories assembles the repository set for the engine. Run persistence is only
// available with a database connection.
func (f *Factory) Repositories() (*repository.Repositories, error) {
	picks, err := f.PickRepository()
	if err != nil {
		return nil, err
	}
	contexts, err := f.GameContextRepository()
	if err != nil {
		return nil, err
	}

	repos := &repository.Repositories{
		Pick:        picks,
		GameContext: contexts,
	}
	if f.db != nil {
		repos.BacktestRun = repository.NewPostgresBacktestRunRepository(f.db)
	}
	return repos, nil
}

// NewRedisClient connects to the configured redis instance
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NeedsDatabase reports whether any configured source reads from postgres
func NeedsDatabase(cfg *config.Config) bool {
	return cfg.Sources.Picks.Type == string(PostgresSourceType) ||
		cfg.Sources.GameContext.Type == string(PostgresSourceType) ||
		cfg.Backtest.Persist
}

// NeedsRedis reports whether the game context source reads from redis
func NeedsRedis(cfg *config.Config) bool {
	return cfg.Sources.GameContext.Type == string(RedisSourceType)
}
