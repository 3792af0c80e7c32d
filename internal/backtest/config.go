package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/parlay-engine/internal/config"
)

const defaultWorkers = 4

// BacktestConfig extends core config with backtest-specific settings
type BacktestConfig struct {
	StartDate  time.Time
	EndDate    time.Time
	Versions   []string
	Shape      string
	Workers    int
	OutputPath string
	Persist    bool
}

// FromConfig converts app config to backtest config. The date range is optional.
func FromConfig(cfg *config.BacktestConfig) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}

	bt := BacktestConfig{
		Versions:   append([]string(nil), cfg.Versions...),
		Shape:      cfg.Shape,
		Workers:    cfg.Workers,
		OutputPath: cfg.OutputPath,
		Persist:    cfg.Persist,
	}

	if cfg.StartDate != "" {
		start, err := time.Parse(config.DateLayout, cfg.StartDate)
		if err != nil {
			return BacktestConfig{}, fmt.Errorf("invalid start date: %w", err)
		}
		bt.StartDate = start
	}
	if cfg.EndDate != "" {
		end, err := time.Parse(config.DateLayout, cfg.EndDate)
		if err != nil {
			return BacktestConfig{}, fmt.Errorf("invalid end date: %w", err)
		}
		bt.EndDate = end
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if len(b.Versions) == 0 {
		return fmt.Errorf("at least one strategy version is required")
	}
	if b.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// Request returns the configured default request
func (b BacktestConfig) Request() Request {
	return Request{
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Versions:  append([]string(nil), b.Versions...),
		Shape:     b.Shape,
	}
}

func (b BacktestConfig) workers() int {
	if b.Workers <= 0 {
		return defaultWorkers
	}
	return b.Workers
}
