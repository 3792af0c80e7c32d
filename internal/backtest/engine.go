// Package backtest replays strategy versions over settled historical candidates and
// compares them.
package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/logger"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/repository"
	"github.com/yourusername/parlay-engine/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Report statuses
const (
	StatusCompleted = "completed"
	StatusNoData    = "no_data"
	statusFailure   = "failure"
)

// Request selects the range, versions and slot shape of a backtest
type Request struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Versions  []string  `json:"versions"`
	Shape     string    `json:"shape"`
}

// Report is the outcome of one backtest request
type Report struct {
	Status     string      `json:"status"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Shape      string      `json:"shape"`
	Runs       []*Run      `json:"runs"`
	Comparison *Comparison `json:"comparison,omitempty"`
}

// Run returns the run for a version, or nil
func (r *Report) Run(version string) *Run {
	for _, run := range r.Runs {
		if run.Version == version {
			return run
		}
	}
	return nil
}

// Engine orchestrates backtesting runs
type Engine struct {
	config       BacktestConfig
	repositories *repository.Repositories
	registry     *strategy.Registry
	logger       *logrus.Logger
	runLog       *logger.BacktestLogger
	strategyLog  *logger.StrategyLogger
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg BacktestConfig, repos *repository.Repositories, registry *strategy.Registry, log *logrus.Logger) (*Engine, error) {
	if repos == nil || repos.Pick == nil {
		return nil, fmt.Errorf("pick repository is required")
	}
	if registry == nil {
		registry = strategy.NewRegistry()
	}
	if log == nil {
		log = logrus.New()
	}

	return &Engine{
		config:       cfg,
		repositories: repos,
		registry:     registry,
		logger:       log,
		runLog:       logger.NewBacktestLogger(log),
		strategyLog:  logger.NewStrategyLogger(log),
	}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Registry returns the strategy registry used to resolve versions
func (e *Engine) Registry() *strategy.Registry {
	return e.registry
}

// Repositories returns the repository container
func (e *Engine) Repositories() *repository.Repositories {
	return e.repositories
}

type resolvedVersion struct {
	name string
	cfg  strategy.Config
}

// Run executes every requested version over the range. Empty fields fall back to the
// engine configuration. Unknown versions or shapes fail before any data is fetched; a
// malformed range or one with no settled picks yields a no_data report.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()
	req = e.withDefaults(req)

	versions, err := e.resolve(req)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Status:    StatusCompleted,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Shape:     req.Shape,
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.StartDate.After(req.EndDate) {
		e.logger.WithFields(logrus.Fields{
			"start_date": dateKey(req.StartDate),
			"end_date":   dateKey(req.EndDate),
		}).Warn("Malformed backtest range, returning empty report")
		return e.finish(report, versions, nil, nil, started), nil
	}

	picks, err := e.repositories.Pick.GetSettledByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		metrics.RecordUpstreamFetch("picks", statusFailure)
		e.recordFailure(versions)
		return nil, fmt.Errorf("failed to load settled picks: %w", err)
	}
	metrics.RecordUpstreamFetch("picks", "success")

	var contexts []*models.GameContext
	if e.repositories.GameContext != nil {
		contexts, err = e.repositories.GameContext.GetByDateRange(ctx, req.StartDate, req.EndDate)
		if err != nil {
			metrics.RecordUpstreamFetch("game_contexts", statusFailure)
			e.recordFailure(versions)
			return nil, fmt.Errorf("failed to load game contexts: %w", err)
		}
		metrics.RecordUpstreamFetch("game_contexts", "success")
	}

	settled := settledOnly(picks)
	dates, pools := groupByDate(settled)
	contextsByDate := models.GroupGameContextsByDate(contexts)

	e.runLog.LogRunStarted(req.Versions, req.Shape, req.StartDate, req.EndDate, len(settled), len(dates))

	if len(dates) == 0 {
		return e.finish(report, versions, nil, nil, started), nil
	}

	runs := make([]*Run, len(versions))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range versions {
		i, v := i, v
		g.Go(func() error {
			run, err := e.replay(gctx, v, req, dates, pools, contextsByDate)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.recordFailure(versions)
		return nil, err
	}

	return e.finish(report, versions, runs, settled, started), nil
}

func (e *Engine) withDefaults(req Request) Request {
	if len(req.Versions) == 0 {
		req.Versions = append([]string(nil), e.config.Versions...)
	}
	if req.Shape == "" {
		req.Shape = e.config.Shape
	}
	if req.StartDate.IsZero() {
		req.StartDate = e.config.StartDate
	}
	if req.EndDate.IsZero() {
		req.EndDate = e.config.EndDate
	}
	return req
}

func (e *Engine) resolve(req Request) ([]resolvedVersion, error) {
	if len(req.Versions) == 0 {
		return nil, fmt.Errorf("%w: no strategy versions requested", strategy.ErrInvalidConfig)
	}
	versions := make([]resolvedVersion, 0, len(req.Versions))
	for _, name := range req.Versions {
		cfg, err := e.registry.ResolveWithShape(name, req.Shape)
		if err != nil {
			return nil, err
		}
		versions = append(versions, resolvedVersion{name: name, cfg: cfg})
	}
	return versions, nil
}

// replay maps dates to slates in parallel, then folds them in date order
func (e *Engine) replay(ctx context.Context, v resolvedVersion, req Request, dates []string, pools map[string][]*models.Pick, contexts map[string]models.GameContexts) (*Run, error) {
	versionStarted := time.Now()
	slates := make([]SlateResult, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.workers())
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slate, result := BuildSlate(date, pools[date], v.cfg, contexts[date])
			slates[i] = slate
			e.logSlate(v.name, slate, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("backtest of %q interrupted: %w", v.name, err)
	}

	run := NewRun(v.name, req.Shape, req.StartDate, req.EndDate)
	for _, slate := range slates {
		run.Add(slate)
	}
	run.Finalize()

	e.runLog.LogRunCompleted(run.Version, run.ParlaysBuilt, run.TotalLegs, run.LegHitRate, run.ParlayWinRate, time.Since(versionStarted))
	return run, nil
}

func (e *Engine) logSlate(version string, slate SlateResult, result parlay.Result) {
	e.runLog.LogSlateBuilt(version, slate.Date, len(slate.Legs), slate.BlockedByEdge, slate.BlockedByConflict, slate.Grade.AllHit)
	if !e.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for _, leg := range result.Legs {
		e.strategyLog.LogLegSelected(version, slate.Date, leg.Slot, leg.Pick.PlayerName, string(leg.Category), leg.Edge, leg.Score)
	}
	for _, blocked := range append(append([]parlay.Blocked(nil), result.BlockedByEdge...), result.BlockedByConflict...) {
		e.strategyLog.LogCandidateBlocked(version, slate.Date, blocked.Pick.PlayerName, string(blocked.Reason), blocked.Value)
	}
}

// finish fills empty runs where none were produced, builds the comparison and records metrics
func (e *Engine) finish(report *Report, versions []resolvedVersion, runs []*Run, picks []*models.Pick, started time.Time) *Report {
	if runs == nil {
		report.Status = StatusNoData
		runs = make([]*Run, len(versions))
		for i, v := range versions {
			runs[i] = NewRun(v.name, report.Shape, report.StartDate, report.EndDate)
			runs[i].Finalize()
		}
	}
	report.Runs = runs

	if len(runs) == 2 {
		strict := StrictIndex(versions[0].cfg, versions[1].cfg)
		base := 1 - strict
		report.Comparison = Compare(runs[base], runs[strict], versions[strict].cfg, picks)
		c := report.Comparison
		e.runLog.LogComparison(c.Baseline, c.Candidate, c.LegHitRateDelta, c.ParlayWinRateDelta, c.Counterfactual.Excluded, c.Counterfactual.BlockingEffectiveness)
		metrics.UpdateBlockingEffectiveness(c.Baseline, c.Candidate, c.Counterfactual.BlockingEffectiveness)
	}

	for _, run := range runs {
		metrics.RecordBacktestRun(run.Version, report.Status)
		metrics.RecordGradedLegs(run.Version, run.Hits, run.Misses, run.Pushes)
		metrics.RecordBlockedCandidates(run.Version, string(parlay.BlockEdge), run.BlockedByEdge)
		metrics.RecordBlockedCandidates(run.Version, string(parlay.BlockConflict), run.BlockedByConflict)
		metrics.UpdateRunRates(run.Version, run.LegHitRate, run.ParlayWinRate)
		for _, slate := range run.Slates {
			for _, leg := range slate.Legs {
				metrics.RecordSlotFilled(run.Version, string(leg.Category))
			}
		}
	}
	metrics.RecordBacktestDuration(time.Since(started).Seconds())

	return report
}

func (e *Engine) recordFailure(versions []resolvedVersion) {
	for _, v := range versions {
		metrics.RecordBacktestRun(v.name, statusFailure)
	}
}

func settledOnly(picks []*models.Pick) []*models.Pick {
	settled := make([]*models.Pick, 0, len(picks))
	for _, p := range picks {
		if p != nil && p.IsSettled() {
			settled = append(settled, p)
		}
	}
	return settled
}

// groupByDate splits picks by analysis date, keeping input order within a date
func groupByDate(picks []*models.Pick) ([]string, map[string][]*models.Pick) {
	pools := make(map[string][]*models.Pick)
	for _, p := range picks {
		key := p.DateKey()
		pools[key] = append(pools[key], p)
	}
	dates := make([]string, 0, len(pools))
	for date := range pools {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, pools
}
