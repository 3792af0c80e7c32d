package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/parlay-engine/internal/models"
)

// Registry resolves strategy versions and slot shapes by identifier
type Registry struct {
	mu       sync.RWMutex
	versions map[string]Config
	shapes   map[string][]models.Category
}

// NewRegistry creates a registry seeded with the built-in versions and shapes
func NewRegistry() *Registry {
	r := &Registry{
		versions: map[string]Config{},
		shapes:   builtinShapes(),
	}
	r.versions[VersionBaseline] = BaselineConfig()
	r.versions[VersionSynergy] = SynergyConfig()
	return r
}

// Register adds or replaces a strategy version
func (r *Registry) Register(cfg Config) error {
	if cfg.Name() == "" {
		return fmt.Errorf("%w: strategy name is required", ErrInvalidConfig)
	}
	if len(cfg.slots) == 0 {
		return fmt.Errorf("%w: strategy %q", ErrEmptySlots, cfg.Name())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[cfg.Name()] = cfg
	return nil
}

// RegisterShape adds or replaces a slot shape
func (r *Registry) RegisterShape(name string, slots []models.Category) error {
	if name == "" {
		return fmt.Errorf("%w: shape name is required", ErrInvalidConfig)
	}
	if len(slots) == 0 {
		return fmt.Errorf("%w: shape %q", ErrEmptySlots, name)
	}
	for _, slot := range slots {
		if !slot.IsKnown() {
			return fmt.Errorf("%w: shape %q has unknown category %q", ErrInvalidConfig, name, slot)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapes[name] = append([]models.Category(nil), slots...)
	return nil
}

// Resolve returns the version by name
func (r *Registry) Resolve(name string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.versions[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
	}
	return cfg, nil
}

// ResolveWithShape returns the version re-shaped to the named slot shape.
// An empty shape keeps the version's own slots.
func (r *Registry) ResolveWithShape(name, shape string) (Config, error) {
	cfg, err := r.Resolve(name)
	if err != nil {
		return Config{}, err
	}
	if shape == "" {
		return cfg, nil
	}
	slots, err := r.Shape(shape)
	if err != nil {
		return Config{}, err
	}
	return cfg.WithSlots(slots)
}

// Shape returns a copy of the named slot shape
func (r *Registry) Shape(name string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots, ok := r.shapes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return append([]models.Category(nil), slots...), nil
}

// Names returns the registered version names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.versions))
	for name := range r.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShapeNames returns the registered shape names in sorted order
func (r *Registry) ShapeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.shapes))
	for name := range r.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
