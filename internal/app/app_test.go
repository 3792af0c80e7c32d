package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-engine/internal/strategy"
)

const testConfig = `
app:
  name: parlay-engine
  environment: development
  log_level: warn
sources:
  picks:
    type: http
    base_url: https://picks.internal.local
shapes:
  rebound_heavy:
    - BIG_REBOUNDER_OVER
    - ROLE_REBOUNDER_OVER
strategies:
  - name: synergy_loose
    extends: synergy
    version: "2.1"
    default_edge_threshold: 1.0
    shape: rebound_heavy
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestLoadConfigAndRegistry(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Sources.Picks.Type)
	assert.Equal(t, []string{"baseline", "synergy"}, cfg.Backtest.Versions)

	registry, err := NewRegistry(cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"baseline", "synergy", "synergy_loose"}, registry.Names())

	loose, err := registry.Resolve("synergy_loose")
	require.NoError(t, err)
	assert.Equal(t, "2.1", loose.Version())
	assert.Len(t, loose.Slots(), 2)
	assert.True(t, loose.EnforcesEdgeGate())

	_, err = registry.Shape("rebound_heavy")
	assert.NoError(t, err)
	_, err = registry.Shape(strategy.ShapeStandardSix)
	assert.NoError(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(context.Background(), writeConfig(t, `
app:
  name: parlay-engine
  environment: moon
  log_level: info
`))
	assert.Error(t, err)

	_, err = LoadConfig(context.Background(), writeConfig(t, `
sources:
  picks:
    type: http
`))
	assert.Error(t, err, "http source without base_url")
}

func TestNewRegistryUnknownParent(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), writeConfig(t, `
strategies:
  - name: orphan
    extends: nonexistent
`))
	require.NoError(t, err)

	_, err = NewRegistry(cfg, quietLogger())
	assert.ErrorIs(t, err, strategy.ErrUnknownVersion)
}
