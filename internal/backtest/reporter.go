package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// percent renders a 0..1 rate as a percentage rounded half away from zero
func percent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2) + "%"
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).StringFixed(places)
}

// GenerateConsoleReport formats a report for terminal output
func GenerateConsoleReport(report *Report) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Range: %s to %s\n", dateKey(report.StartDate), dateKey(report.EndDate)))
	builder.WriteString(fmt.Sprintf("Shape: %s\n", report.Shape))
	builder.WriteString(fmt.Sprintf("Status: %s\n", report.Status))

	for _, run := range report.Runs {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Version: %s\n", run.Version))
		builder.WriteString(fmt.Sprintf("  Dates: %d (empty slates: %d)\n", run.Dates, run.EmptySlates))
		builder.WriteString(fmt.Sprintf("  Parlays Built: %d\n", run.ParlaysBuilt))
		builder.WriteString(fmt.Sprintf("  Parlays All Hit: %d\n", run.ParlaysAllHit))
		builder.WriteString(fmt.Sprintf("  Legs: %d (hit %d / miss %d / push %d)\n", run.TotalLegs, run.Hits, run.Misses, run.Pushes))
		builder.WriteString(fmt.Sprintf("  Leg Hit Rate: %s\n", percent(run.LegHitRate)))
		builder.WriteString(fmt.Sprintf("  Parlay Win Rate: %s\n", percent(run.ParlayWinRate)))
		builder.WriteString(fmt.Sprintf("  Avg Edge: %s\n", fixed(run.AvgEdge, 2)))
		builder.WriteString(fmt.Sprintf("  Avg Synergy: %s\n", fixed(run.AvgSynergy, 2)))
		builder.WriteString(fmt.Sprintf("  Blocked: edge %d / conflict %d\n", run.BlockedByEdge, run.BlockedByConflict))
	}

	if c := report.Comparison; c != nil {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Comparison: %s vs %s\n", c.Candidate, c.Baseline))
		builder.WriteString(fmt.Sprintf("  Leg Hit Rate Delta: %s\n", percent(c.LegHitRateDelta)))
		builder.WriteString(fmt.Sprintf("  Parlay Win Rate Delta: %s\n", percent(c.ParlayWinRateDelta)))
		builder.WriteString(fmt.Sprintf("  Avg Edge Delta: %s\n", fixed(c.AvgEdgeDelta, 2)))
		builder.WriteString(fmt.Sprintf("  Excluded By Edge Rule: %d (hit %d / miss %d / push %d)\n",
			c.Counterfactual.Excluded, c.Counterfactual.WouldHaveHit, c.Counterfactual.WouldHaveMissed, c.Counterfactual.WouldHavePushed))
		builder.WriteString(fmt.Sprintf("  Blocking Effectiveness: %s%%\n", fixed(c.Counterfactual.BlockingEffectiveness, 2)))
	}

	return builder.String()
}

// GenerateCSVExport writes one row per version and slate date for spreadsheets
func GenerateCSVExport(report *Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"version", "date", "candidates", "legs", "hits", "misses", "pushes", "all_hit",
		"avg_edge", "synergy", "blocked_by_edge", "blocked_by_conflict"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, run := range report.Runs {
		for _, s := range run.Slates {
			row := []string{
				run.Version,
				s.Date,
				strconv.Itoa(s.Candidates),
				strconv.Itoa(len(s.Legs)),
				strconv.Itoa(s.Grade.Hits),
				strconv.Itoa(s.Grade.Misses),
				strconv.Itoa(s.Grade.Pushes),
				strconv.FormatBool(s.Grade.AllHit),
				fixed(s.AvgEdge, 4),
				fixed(s.Synergy, 4),
				strconv.Itoa(s.BlockedByEdge),
				strconv.Itoa(s.BlockedByConflict),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
