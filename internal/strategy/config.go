// Package strategy holds the versioned strategy configurations and the pure scoring
// functions (edge evaluation and leg correlation) the parlay builder consumes.
package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Built-in version names
const (
	VersionBaseline = "baseline"
	VersionSynergy  = "synergy"
)

// Config is an immutable strategy version. Construct it with NewConfig or a built-in
// constructor; accessors hand out copies so callers cannot mutate shared state.
type Config struct {
	name        string
	version     string
	description string

	edgeThresholds       map[string]float64
	defaultEdgeThreshold float64
	enforceEdgeGate      bool

	slots              []models.Category
	correlationEnabled bool

	weights  Weights
	synergy  SynergyParams
	defaults Defaults
}

// Weights are the scoring weights of a strategy
type Weights struct {
	HitRate    float64 `json:"hit_rate"`
	Confidence float64 `json:"confidence"`
	Edge       float64 `json:"edge"`
	Synergy    float64 `json:"synergy"`
}

// SynergyParams are the game-environment thresholds used by the correlation analyzer
type SynergyParams struct {
	SlowTotalThreshold     float64 `json:"slow_total_threshold"`
	FastTotalThreshold     float64 `json:"fast_total_threshold"`
	NeutralExpectedTotal   float64 `json:"neutral_expected_total"`
	ConflictBlockThreshold float64 `json:"conflict_block_threshold"`
}

// Defaults are substituted for absent quality signals
type Defaults struct {
	HitRate    float64 `json:"hit_rate"`
	Confidence float64 `json:"confidence"`
}

// Params is the mutable description a Config is built from
type Params struct {
	Name                 string
	Version              string
	Description          string
	EdgeThresholds       map[string]float64
	DefaultEdgeThreshold float64
	EnforceEdgeGate      bool
	Slots                []models.Category
	CorrelationEnabled   bool
	Weights              Weights
	Synergy              SynergyParams
	Defaults             Defaults
}

// DefaultWeights returns the scoring weights shared by the built-in versions
func DefaultWeights() Weights {
	return Weights{HitRate: 100, Confidence: 10, Edge: 2, Synergy: 10}
}

// DefaultSynergyParams returns NBA-calibrated game environment thresholds
func DefaultSynergyParams() SynergyParams {
	return SynergyParams{
		SlowTotalThreshold:     215,
		FastTotalThreshold:     235,
		NeutralExpectedTotal:   225,
		ConflictBlockThreshold: -2,
	}
}

// DefaultDefaults returns the fallback quality signals
func DefaultDefaults() Defaults {
	return Defaults{HitRate: 0.6, Confidence: 0.7}
}

// NewConfig validates params and freezes them into a Config
func NewConfig(p Params) (Config, error) {
	if p.Name == "" {
		return Config{}, fmt.Errorf("%w: strategy name is required", ErrInvalidConfig)
	}
	if len(p.Slots) == 0 {
		return Config{}, fmt.Errorf("%w: strategy %q", ErrEmptySlots, p.Name)
	}
	for _, slot := range p.Slots {
		if !slot.IsKnown() {
			return Config{}, fmt.Errorf("%w: strategy %q has unknown slot category %q", ErrInvalidConfig, p.Name, slot)
		}
	}
	for prop, threshold := range p.EdgeThresholds {
		if threshold < 0 || math.IsNaN(threshold) {
			return Config{}, fmt.Errorf("%w: strategy %q threshold for %q must be non-negative", ErrInvalidConfig, p.Name, prop)
		}
	}
	if p.DefaultEdgeThreshold < 0 {
		return Config{}, fmt.Errorf("%w: strategy %q default threshold must be non-negative", ErrInvalidConfig, p.Name)
	}
	if p.Synergy.SlowTotalThreshold > p.Synergy.FastTotalThreshold {
		return Config{}, fmt.Errorf("%w: strategy %q slow total threshold exceeds fast threshold", ErrInvalidConfig, p.Name)
	}

	version := p.Version
	if version == "" {
		version = "1"
	}

	thresholds := make(map[string]float64, len(p.EdgeThresholds))
	for prop, threshold := range p.EdgeThresholds {
		thresholds[prop] = threshold
	}

	return Config{
		name:                 p.Name,
		version:              version,
		description:          p.Description,
		edgeThresholds:       thresholds,
		defaultEdgeThreshold: p.DefaultEdgeThreshold,
		enforceEdgeGate:      p.EnforceEdgeGate,
		slots:                append([]models.Category(nil), p.Slots...),
		correlationEnabled:   p.CorrelationEnabled,
		weights:              p.Weights,
		synergy:              p.Synergy,
		defaults:             p.Defaults,
	}, nil
}

// BaselineConfig returns the permissive version: no edge requirement, no correlation awareness
func BaselineConfig() Config {
	cfg, _ := NewConfig(Params{
		Name:        VersionBaseline,
		Version:     "1",
		Description: "Best base score per slot, no edge gate, no correlation scoring",
		Slots:       StandardSixSlots(),
		Weights:     DefaultWeights(),
		Synergy:     DefaultSynergyParams(),
		Defaults:    DefaultDefaults(),
	})
	return cfg
}

// SynergyConfig returns the strict version: hard edge gate and correlation-aware scoring
func SynergyConfig() Config {
	cfg, _ := NewConfig(Params{
		Name:        VersionSynergy,
		Version:     "2",
		Description: "Per-prop edge gate with conflict blocking and synergy bonuses",
		EdgeThresholds: map[string]float64{
			"points":                  3.0,
			"rebounds":                1.5,
			"assists":                 1.5,
			"threes":                  0.5,
			"points_rebounds_assists": 4.0,
			"points_rebounds":         3.0,
			"points_assists":          3.0,
			"rebounds_assists":        2.0,
			"steals":                  0.5,
			"blocks":                  0.5,
		},
		DefaultEdgeThreshold: 2.0,
		EnforceEdgeGate:      true,
		Slots:                StandardSixSlots(),
		CorrelationEnabled:   true,
		Weights:              DefaultWeights(),
		Synergy:              DefaultSynergyParams(),
		Defaults:             DefaultDefaults(),
	})
	return cfg
}

// Name returns the version identifier
func (c Config) Name() string { return c.name }

// Version returns the revision label
func (c Config) Version() string { return c.version }

// Description returns a human readable summary
func (c Config) Description() string { return c.description }

// EnforcesEdgeGate reports whether candidates must clear a minimum edge
func (c Config) EnforcesEdgeGate() bool { return c.enforceEdgeGate }

// CorrelationEnabled reports whether synergy affects selection
func (c Config) CorrelationEnabled() bool { return c.correlationEnabled }

// Weights returns the scoring weights
func (c Config) Weights() Weights { return c.weights }

// SynergyParams returns the correlation thresholds
func (c Config) SynergyParams() SynergyParams { return c.synergy }

// Defaults returns the fallback quality signals
func (c Config) Defaults() Defaults { return c.defaults }

// Slots returns a copy of the ordered slot list
func (c Config) Slots() []models.Category {
	return append([]models.Category(nil), c.slots...)
}

// Threshold returns the minimum edge magnitude for a prop type
func (c Config) Threshold(propType string) float64 {
	if threshold, ok := c.edgeThresholds[propType]; ok {
		return threshold
	}
	return c.defaultEdgeThreshold
}

// EdgeThresholds returns a copy of the per-prop threshold table
func (c Config) EdgeThresholds() map[string]float64 {
	out := make(map[string]float64, len(c.edgeThresholds))
	for k, v := range c.edgeThresholds {
		out[k] = v
	}
	return out
}

// PassesEdgeGate reports whether an edge clears the threshold for the pick's prop type
func (c Config) PassesEdgeGate(propType string, edge float64) bool {
	if !c.enforceEdgeGate {
		return true
	}
	return math.Abs(edge) >= c.Threshold(propType)
}

// WithSlots derives a copy of the config using a different slot shape
func (c Config) WithSlots(slots []models.Category) (Config, error) {
	if len(slots) == 0 {
		return Config{}, fmt.Errorf("%w: strategy %q", ErrEmptySlots, c.name)
	}
	for _, slot := range slots {
		if !slot.IsKnown() {
			return Config{}, fmt.Errorf("%w: unknown slot category %q", ErrInvalidConfig, slot)
		}
	}
	derived := c
	derived.slots = append([]models.Category(nil), slots...)
	derived.edgeThresholds = c.EdgeThresholds()
	return derived, nil
}

// WithThreshold derives a copy of the config with one prop type's threshold replaced
func (c Config) WithThreshold(propType string, threshold float64) Config {
	derived := c
	derived.edgeThresholds = c.EdgeThresholds()
	derived.edgeThresholds[propType] = threshold
	derived.slots = c.Slots()
	return derived
}

// Parameters exports the configuration for reports and persistence
func (c Config) Parameters() map[string]interface{} {
	slots := make([]string, len(c.slots))
	for i, s := range c.slots {
		slots[i] = string(s)
	}
	props := make([]string, 0, len(c.edgeThresholds))
	for prop := range c.edgeThresholds {
		props = append(props, prop)
	}
	sort.Strings(props)
	thresholds := make(map[string]float64, len(props))
	for _, prop := range props {
		thresholds[prop] = c.edgeThresholds[prop]
	}
	return map[string]interface{}{
		"name":                   c.name,
		"version":                c.version,
		"enforce_edge_gate":      c.enforceEdgeGate,
		"default_edge_threshold": c.defaultEdgeThreshold,
		"edge_thresholds":        thresholds,
		"correlation_enabled":    c.correlationEnabled,
		"slots":                  slots,
		"weights":                c.weights,
		"synergy":                c.synergy,
		"defaults":               c.defaults,
	}
}
