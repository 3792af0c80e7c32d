// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-engine/internal/app"
	"github.com/yourusername/parlay-engine/internal/backtest"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/parlay"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	deps       *app.App
)

var rootCmd = &cobra.Command{
	Use:     "parlay-backtest",
	Short:   "Build parlays and backtest strategy versions over settled picks",
	Version: Version + " (" + GitCommit + ")",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		deps, err = app.New(cmd.Context(), configFile)
		if err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deps != nil {
			deps.Close()
		}
	},
	SilenceUsage: true,
}

var runFlags struct {
	start    string
	end      string
	versions []string
	shape    string
	output   string
	csv      string
	persist  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay strategy versions over a date range and compare them",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := backtest.Request{Versions: runFlags.versions, Shape: runFlags.shape}
		var err error
		if req.StartDate, err = parseDate(runFlags.start); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		if req.EndDate, err = parseDate(runFlags.end); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		report, err := deps.Engine.Run(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Print(backtest.GenerateConsoleReport(report))

		output := runFlags.output
		if output == "" {
			output = deps.Config.Backtest.OutputPath
		}
		if output != "" {
			if err := backtest.ExportJSON(report, output); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			deps.Logger.WithField("path", output).Info("Backtest report written")
		}
		if runFlags.csv != "" {
			if err := backtest.GenerateCSVExport(report, runFlags.csv); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
		}

		if runFlags.persist || deps.Config.Backtest.Persist {
			if err := backtest.ExportToDatabase(cmd.Context(), deps.Repos.BacktestRun, report); err != nil {
				return err
			}
			deps.Logger.WithField("runs", len(report.Runs)).Info("Backtest runs persisted")
		}
		return nil
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List registered strategy versions and slot shapes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range deps.Registry.Names() {
			cfg, err := deps.Registry.Resolve(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s v%-6s gate=%-5t correlation=%-5t slots=%d  %s\n",
				cfg.Name(), cfg.Version(), cfg.EnforcesEdgeGate(), cfg.CorrelationEnabled(), len(cfg.Slots()), cfg.Description())
		}
		fmt.Println()
		for _, name := range deps.Registry.ShapeNames() {
			slots, err := deps.Registry.Shape(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s %v\n", name, slots)
		}
		return nil
	},
}

var buildFlags struct {
	date    string
	version string
	shape   string
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the parlay for one analysis date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(buildFlags.date)
		if err != nil || date.IsZero() {
			return fmt.Errorf("--date must be YYYY-MM-DD")
		}
		cfg, err := deps.Registry.ResolveWithShape(buildFlags.version, buildFlags.shape)
		if err != nil {
			return err
		}

		pool, err := deps.Repos.Pick.GetByAnalysisDate(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("failed to load picks: %w", err)
		}
		var contexts models.GameContexts
		if deps.Repos.GameContext != nil {
			rows, err := deps.Repos.GameContext.GetByDateRange(cmd.Context(), date, date)
			if err != nil {
				return fmt.Errorf("failed to load game contexts: %w", err)
			}
			contexts = models.NewGameContexts(rows)
		}

		result := parlay.Build(pool, cfg, contexts)
		fmt.Printf("%s parlay for %s (%d candidates)\n", cfg.Name(), date.Format(models.DateLayout), len(pool))
		for _, leg := range result.Legs {
			line, _ := leg.Pick.Line()
			fmt.Printf("  %d. %-24s %-22s %-6s line %-6.1f proj %-6.1f edge %+.1f score %.1f\n",
				leg.Slot+1, leg.Pick.PlayerName, leg.Category, leg.Pick.Side,
				line, leg.Projection, leg.Edge, leg.Score)
		}
		fmt.Printf("blocked: edge %d, conflict %d\n", len(result.BlockedByEdge), len(result.BlockedByConflict))
		return nil
	},
}

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "Manage the game context store",
}

var importFile string

var contextsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import game contexts from a JSON array file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importFile)
		if err != nil {
			return err
		}
		var contexts []*models.GameContext
		if err := json.Unmarshal(data, &contexts); err != nil {
			return fmt.Errorf("failed to parse %s: %w", importFile, err)
		}

		store, err := deps.Factory.GameContextStore()
		if err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), contexts); err != nil {
			return err
		}
		deps.Logger.WithField("contexts", len(contexts)).Info("Game contexts imported")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	runCmd.Flags().StringVar(&runFlags.start, "start", "", "Start date (YYYY-MM-DD), defaults to backtest.start_date")
	runCmd.Flags().StringVar(&runFlags.end, "end", "", "End date (YYYY-MM-DD), defaults to backtest.end_date")
	runCmd.Flags().StringSliceVar(&runFlags.versions, "versions", nil, "Strategy versions to compare")
	runCmd.Flags().StringVar(&runFlags.shape, "shape", "", "Slot shape")
	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "", "Write the JSON report to this path")
	runCmd.Flags().StringVar(&runFlags.csv, "csv", "", "Write per-slate rows to this CSV path")
	runCmd.Flags().BoolVar(&runFlags.persist, "persist", false, "Store runs in the database")

	buildCmd.Flags().StringVar(&buildFlags.date, "date", "", "Analysis date (YYYY-MM-DD)")
	buildCmd.Flags().StringVar(&buildFlags.version, "strategy", "synergy", "Strategy version")
	buildCmd.Flags().StringVar(&buildFlags.shape, "shape", "", "Slot shape")
	_ = buildCmd.MarkFlagRequired("date")

	contextsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file of game contexts")
	_ = contextsImportCmd.MarkFlagRequired("file")
	contextsCmd.AddCommand(contextsImportCmd)

	rootCmd.AddCommand(runCmd, versionsCmd, buildCmd, contextsCmd)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, raw)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
