// Package config provides configuration management for the parlay engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig           `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig      `mapstructure:"database" validate:"required"`
	Redis      RedisConfig         `mapstructure:"redis"`
	Sources    SourcesConfig       `mapstructure:"sources" validate:"required"`
	Backtest   BacktestConfig      `mapstructure:"backtest" validate:"required"`
	Strategies []StrategySettings  `mapstructure:"strategies" validate:"dive"`
	Shapes     map[string][]string `mapstructure:"shapes" validate:"dive,min=1"`
	Metrics    MetricsConfig       `mapstructure:"metrics"`
	Server     ServerConfig        `mapstructure:"server" validate:"required"`
	Schedule   ScheduleConfig      `mapstructure:"schedule"`
	Secrets    SecretsConfig       `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// RedisConfig represents the redis connection used by the game context store
type RedisConfig struct {
	URL        string `mapstructure:"url" validate:"omitempty,url"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db" validate:"gte=0"`
	KeyPrefix  string `mapstructure:"key_prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// SourcesConfig selects the candidate and game context stores
type SourcesConfig struct {
	Picks       PickSourceConfig        `mapstructure:"picks" validate:"required"`
	GameContext GameContextSourceConfig `mapstructure:"game_context" validate:"required"`
}

// PickSourceConfig represents the candidate store configuration
type PickSourceConfig struct {
	Type           string  `mapstructure:"type" validate:"required,picksource"`
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	Burst          int     `mapstructure:"burst" validate:"gte=0"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts  int     `mapstructure:"retry_attempts" validate:"gte=0"`
}

// GameContextSourceConfig represents the game context store configuration
type GameContextSourceConfig struct {
	Type            string `mapstructure:"type" validate:"required,contextsource"`
	CacheEnabled    bool   `mapstructure:"cache_enabled"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// BacktestConfig represents the default backtest request
type BacktestConfig struct {
	StartDate  string   `mapstructure:"start_date" validate:"omitempty,datetime"`
	EndDate    string   `mapstructure:"end_date" validate:"omitempty,datetime"`
	Versions   []string `mapstructure:"versions" validate:"required,min=1,dive,required"`
	Shape      string   `mapstructure:"shape"`
	Workers    int      `mapstructure:"workers" validate:"gte=0"`
	OutputPath string   `mapstructure:"output_path"`
	Persist    bool     `mapstructure:"persist"`
}

// StrategySettings describes an additional strategy version derived from a registered one
type StrategySettings struct {
	Name                 string             `mapstructure:"name" validate:"required"`
	Extends              string             `mapstructure:"extends" validate:"required"`
	Version              string             `mapstructure:"version"`
	Description          string             `mapstructure:"description"`
	Shape                string             `mapstructure:"shape"`
	EnforceEdgeGate      *bool              `mapstructure:"enforce_edge_gate"`
	CorrelationEnabled   *bool              `mapstructure:"correlation_enabled"`
	DefaultEdgeThreshold *float64           `mapstructure:"default_edge_threshold" validate:"omitempty,gte=0"`
	EdgeThresholds       map[string]float64 `mapstructure:"edge_thresholds" validate:"dive,gte=0"`
	SynergyWeight        *float64           `mapstructure:"synergy_weight"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                  int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds    int      `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds   int      `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
}

// ScheduleConfig represents the nightly backtest job
type ScheduleConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	NightlyBacktest string   `mapstructure:"nightly_backtest" validate:"required_if=Enabled true"`
	WindowDays      int      `mapstructure:"window_days" validate:"gte=0"`
	Versions        []string `mapstructure:"versions"`
}

// SecretsConfig selects the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// BacktestRange parses the configured default backtest range
func (c *Config) BacktestRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.Backtest.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backtest start_date: %w", err)
	}
	end, err := time.Parse(DateLayout, c.Backtest.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backtest end_date: %w", err)
	}
	return start, end, nil
}

// RequestTimeout returns the per-request API timeout
func (s ServerConfig) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// DateLayout is the calendar date format used in configuration
const DateLayout = "2006-01-02"
