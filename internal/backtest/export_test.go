package backtest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	report := sampleReport(t)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ExportJSON(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, StatusCompleted, decoded.Status)
	assert.Len(t, decoded.Runs, 2)
	require.NotNil(t, decoded.Comparison)
	assert.Equal(t, "synergy", decoded.Comparison.Candidate)

	assert.Error(t, ExportJSON(nil, path))
}

func TestToModel(t *testing.T) {
	report := sampleReport(t)
	run := report.Run("synergy")

	record, err := ToModel(run, report.Comparison)
	require.NoError(t, err)
	assert.Equal(t, run.ID, record.ID)
	assert.Equal(t, run.ParlaysAllHit, record.ParlaysAllHit)
	assert.NotEmpty(t, record.Slates)
	assert.NotEmpty(t, record.Comparison)
	assert.False(t, record.CreatedAt.IsZero())

	unrelated := &Comparison{Baseline: "a", Candidate: "b"}
	record, err = ToModel(run, unrelated)
	require.NoError(t, err)
	assert.Empty(t, record.Comparison)
}

func TestExportToDatabase(t *testing.T) {
	report := sampleReport(t)
	repo := &fakeRunRepo{}

	require.NoError(t, ExportToDatabase(context.Background(), repo, report))
	assert.Len(t, repo.saved, 2)

	// same request, same IDs
	require.NoError(t, ExportToDatabase(context.Background(), repo, sampleReport(t)))
	assert.Len(t, repo.saved, 2)

	boom := errors.New("disk full")
	err := ExportToDatabase(context.Background(), &fakeRunRepo{err: boom}, report)
	assert.True(t, errors.Is(err, boom))

	assert.Error(t, ExportToDatabase(context.Background(), nil, report))
}
