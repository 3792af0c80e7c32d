package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/repository"
)

// ExportJSON writes the full report to a JSON file
func ExportJSON(report *Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// ToModel converts a run into its persisted form. The comparison is attached to every
// run it involves.
func ToModel(run *Run, comparison *Comparison) (*models.BacktestRun, error) {
	slates, err := json.Marshal(run.Slates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slates: %w", err)
	}

	var comparisonJSON json.RawMessage
	if comparison != nil && (comparison.Baseline == run.Version || comparison.Candidate == run.Version) {
		comparisonJSON, err = json.Marshal(comparison)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal comparison: %w", err)
		}
	}

	return &models.BacktestRun{
		ID:                run.ID,
		Version:           run.Version,
		Shape:             run.Shape,
		StartDate:         run.StartDate,
		EndDate:           run.EndDate,
		Dates:             run.Dates,
		TotalLegs:         run.TotalLegs,
		Hits:              run.Hits,
		Misses:            run.Misses,
		Pushes:            run.Pushes,
		ParlaysBuilt:      run.ParlaysBuilt,
		ParlaysAllHit:     run.ParlaysAllHit,
		LegHitRate:        run.LegHitRate,
		ParlayWinRate:     run.ParlayWinRate,
		AvgEdge:           run.AvgEdge,
		AvgSynergy:        run.AvgSynergy,
		BlockedByEdge:     run.BlockedByEdge,
		BlockedByConflict: run.BlockedByConflict,
		Slates:            slates,
		Comparison:        comparisonJSON,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// ExportToDatabase persists every run of the report. Re-running the same request
// overwrites the stored rows since run IDs are deterministic.
func ExportToDatabase(ctx context.Context, repo repository.BacktestRunRepository, report *Report) error {
	if repo == nil {
		return fmt.Errorf("backtest run repository is required")
	}
	for _, run := range report.Runs {
		record, err := ToModel(run, report.Comparison)
		if err != nil {
			return err
		}
		if err := repo.SaveRun(ctx, record); err != nil {
			return fmt.Errorf("failed to save run %s: %w", run.Version, err)
		}
	}
	return nil
}
