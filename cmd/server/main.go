// Package main runs the parlay engine HTTP API and the nightly backtest schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-engine/internal/api"
	"github.com/yourusername/parlay-engine/internal/app"
	"github.com/yourusername/parlay-engine/internal/metrics"
	"github.com/yourusername/parlay-engine/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "parlay-server",
	Short:        "Serve the backtest API and run the nightly comparison",
	Version:      Version + " (" + GitCommit + ")",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

func serve(ctx context.Context) error {
	deps, err := app.New(ctx, configFile)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer deps.Close()

	cfg := deps.Config
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server := api.NewServer(api.Config{
		ServiceName:    cfg.App.Name,
		Version:        Version,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		RequestTimeout: cfg.Server.RequestTimeout(),
		MetricsPath:    metricsPath,
		Persist:        cfg.Backtest.Persist,
		Logger:         deps.Logger,
		DB:             pinger(deps),
		Engine:         deps.Engine,
		Registry:       deps.Registry,
		Runs:           deps.Repos.BacktestRun,
	})
	if err := server.Start(ctx); err != nil {
		return err
	}

	if cfg.Schedule.Enabled {
		versions := cfg.Schedule.Versions
		if len(versions) == 0 {
			versions = cfg.Backtest.Versions
		}
		sched := scheduler.NewScheduler(deps.Engine, deps.Repos.BacktestRun, deps.Logger, scheduler.Options{
			WindowDays: cfg.Schedule.WindowDays,
			Versions:   versions,
			Shape:      cfg.Backtest.Shape,
		})
		if err := sched.ScheduleNightlyBacktest(cfg.Schedule.NightlyBacktest); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		deps.Logger.WithField("next_run", sched.NextRun()).Info("Nightly backtest scheduled")
	}

	server.SetReady(true)
	<-ctx.Done()
	server.SetReady(false)
	deps.Logger.Info("Shutting down")

	return server.Shutdown()
}

// pinger returns the database readiness check, or nil when no database is configured
func pinger(deps *app.App) api.DatabasePinger {
	if deps.DB == nil {
		return nil
	}
	return deps.DB
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
