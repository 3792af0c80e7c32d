// Package scheduler runs the nightly backtest comparison on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-engine/internal/backtest"
	"github.com/yourusername/parlay-engine/internal/repository"
)

const defaultWindowDays = 30

// Backtester runs backtest requests
type Backtester interface {
	Run(ctx context.Context, req backtest.Request) (*backtest.Report, error)
}

// Options configures the nightly job
type Options struct {
	WindowDays int
	Versions   []string
	Shape      string
	Timeout    time.Duration
}

// Scheduler manages scheduled backtest jobs
type Scheduler struct {
	cron    *cron.Cron
	engine  Backtester
	runs    repository.BacktestRunRepository
	logger  *logrus.Logger
	opts    Options
	now     func() time.Time
	mu      sync.RWMutex
	running bool
	jobIDs  []cron.EntryID
}

// NewScheduler creates a new scheduler. Cron expressions carry a leading seconds field.
// runs may be nil, in which case reports are only logged.
func NewScheduler(engine Backtester, runs repository.BacktestRunRepository, logger *logrus.Logger, opts Options) *Scheduler {
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultWindowDays
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Hour
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		engine: engine,
		runs:   runs,
		logger: logger,
		opts:   opts,
		now:    time.Now,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// ScheduleNightlyBacktest schedules the trailing-window comparison
func (s *Scheduler) ScheduleNightlyBacktest(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
		defer cancel()

		if _, err := s.RunNightly(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled backtest failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled nightly backtest")
	return nil
}

// Window returns the trailing range ending yesterday (UTC)
func (s *Scheduler) Window() (time.Time, time.Time) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(s.opts.WindowDays - 1))
	return start, end
}

// RunNightly runs one comparison over the trailing window and persists the runs when a
// repository is configured
func (s *Scheduler) RunNightly(ctx context.Context) (*backtest.Report, error) {
	start, end := s.Window()
	log := s.logger.WithFields(logrus.Fields{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"versions":   s.opts.Versions,
	})
	log.Info("Starting scheduled backtest")

	report, err := s.engine.Run(ctx, backtest.Request{
		StartDate: start,
		EndDate:   end,
		Versions:  append([]string(nil), s.opts.Versions...),
		Shape:     s.opts.Shape,
	})
	if err != nil {
		return nil, err
	}

	if s.runs != nil && len(report.Runs) > 0 {
		if err := backtest.ExportToDatabase(ctx, s.runs, report); err != nil {
			return report, err
		}
	}

	fields := logrus.Fields{"status": report.Status, "runs": len(report.Runs)}
	if c := report.Comparison; c != nil {
		fields["parlay_win_rate_delta"] = c.ParlayWinRateDelta
		fields["blocking_effectiveness"] = c.Counterfactual.BlockingEffectiveness
	}
	log.WithFields(fields).Info("Scheduled backtest completed")
	return report, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.running = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return time.Time{}
	}

	var next time.Time
	for _, id := range s.jobIDs {
		entry := s.cron.Entry(id)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}
