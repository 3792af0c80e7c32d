// Package app wires configuration, stores, the strategy registry and the backtest engine
// for the command line entrypoints.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/backtest"
	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/datasource"
	"github.com/yourusername/parlay-engine/internal/logger"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/repository"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

// App holds the wired dependencies of one process
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       *database.DB
	Redis    *redis.Client
	Registry *strategy.Registry
	Factory  *datasource.Factory
	Repos    *repository.Repositories
	Engine   *backtest.Engine
}

// LoadConfig loads, overlays secrets onto and validates the configuration
func LoadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRegistry builds the strategy registry from the built-in versions plus the configured
// shapes and derived versions
func NewRegistry(cfg *config.Config, log *logrus.Logger) (*strategy.Registry, error) {
	registry := strategy.NewRegistry()
	if err := registry.Load(cfg.Strategies, cfg.Shapes); err != nil {
		return nil, fmt.Errorf("failed to load strategies: %w", err)
	}

	strategyLog := logger.NewStrategyLogger(log)
	names := registry.Names()
	for _, name := range names {
		s, err := registry.Resolve(name)
		if err != nil {
			return nil, err
		}
		strategyLog.LogVersionRegistered(s.Name(), s.Version(), s.EnforcesEdgeGate(), s.CorrelationEnabled(), len(s.Slots()))
	}
	metrics.UpdateStrategyVersions(len(names))

	return registry, nil
}

// New wires a process from the configuration file at path. Stores are only connected when
// the configured sources need them.
func New(ctx context.Context, path string) (*App, error) {
	cfg, err := LoadConfig(ctx, path)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	a := &App{Config: cfg, Logger: log}

	if datasource.NeedsDatabase(cfg) {
		a.DB, err = database.Initialize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	if datasource.NeedsRedis(cfg) {
		a.Redis, err = datasource.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	a.Registry, err = NewRegistry(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	var redisClient repository.RedisHashClient
	if a.Redis != nil {
		redisClient = a.Redis
	}
	a.Factory = datasource.NewFactory(cfg, a.DB, redisClient, log)
	a.Repos, err = a.Factory.Repositories()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	btCfg, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Engine, err = backtest.NewEngine(btCfg, a.Repos, a.Registry, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"environment":    cfg.App.Environment,
		"pick_source":    cfg.Sources.Picks.Type,
		"context_source": cfg.Sources.GameContext.Type,
		"versions":       len(a.Registry.Names()),
	}).Info("Parlay engine initialized")

	return a, nil
}

// Close releases the store connections
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close redis client")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
