package strategy

import (
	"fmt"
	"sort"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/models"
)

// Params returns the mutable description of the config
func (c Config) Params() Params {
	return Params{
		Name:                 c.name,
		Version:              c.version,
		Description:          c.description,
		EdgeThresholds:       c.EdgeThresholds(),
		DefaultEdgeThreshold: c.defaultEdgeThreshold,
		EnforceEdgeGate:      c.enforceEdgeGate,
		Slots:                c.Slots(),
		CorrelationEnabled:   c.correlationEnabled,
		Weights:              c.weights,
		Synergy:              c.synergy,
		Defaults:             c.defaults,
	}
}

// Load registers config-defined shapes, then config-defined versions. Shapes are
// registered in name order; each version is derived from the version it extends, which
// may itself be defined earlier in the list.
func (r *Registry) Load(settings []config.StrategySettings, shapes map[string][]string) error {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := shapes[name]
		slots := make([]models.Category, len(raw))
		for i, label := range raw {
			slots[i] = models.ParseCategory(label)
		}
		if err := r.RegisterShape(name, slots); err != nil {
			return err
		}
	}

	for _, s := range settings {
		cfg, err := r.derive(s)
		if err != nil {
			return err
		}
		if err := r.Register(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) derive(s config.StrategySettings) (Config, error) {
	base, err := r.Resolve(s.Extends)
	if err != nil {
		return Config{}, fmt.Errorf("strategy %q extends %q: %w", s.Name, s.Extends, err)
	}

	p := base.Params()
	p.Name = s.Name
	if s.Version != "" {
		p.Version = s.Version
	}
	if s.Description != "" {
		p.Description = s.Description
	}
	if s.EnforceEdgeGate != nil {
		p.EnforceEdgeGate = *s.EnforceEdgeGate
	}
	if s.CorrelationEnabled != nil {
		p.CorrelationEnabled = *s.CorrelationEnabled
	}
	if s.DefaultEdgeThreshold != nil {
		p.DefaultEdgeThreshold = *s.DefaultEdgeThreshold
	}
	for prop, threshold := range s.EdgeThresholds {
		p.EdgeThresholds[prop] = threshold
	}
	if s.SynergyWeight != nil {
		p.Weights.Synergy = *s.SynergyWeight
	}
	if s.Shape != "" {
		slots, err := r.Shape(s.Shape)
		if err != nil {
			return Config{}, fmt.Errorf("strategy %q: %w", s.Name, err)
		}
		p.Slots = slots
	}

	return NewConfig(p)
}
