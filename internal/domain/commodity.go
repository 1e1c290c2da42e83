package domain

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// CommodityID is the stable identifier for a commodity. Markets and
// inventories are keyed by CommodityID, never by the definition struct.
type CommodityID string

// Commodity is the immutable definition of a tradable good.
type Commodity struct {
	ID            CommodityID `yaml:"id"`
	Name          string      `yaml:"name"`
	Transportable bool        `yaml:"transportable"`
	BasePrice     int64       `yaml:"base_price"`
	Description   string      `yaml:"description"`
}

// Registry holds commodity definitions in a thread-safe manner.
// Definitions are loaded once at startup and read-only afterwards.
type Registry struct {
	mu          sync.RWMutex
	commodities map[CommodityID]*Commodity
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commodities: make(map[CommodityID]*Commodity),
	}
}

// LoadFile reads commodity definitions from a YAML file and registers them.
// The file is a list of commodity entries. Entries with a non-positive
// base_price are rejected so the statistics fallbacks always have a usable
// floor.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading commodities file: %w", err)
	}

	var defs []*Commodity
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parsing commodities file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("commodity with empty id in %s", path)
		}
		if def.BasePrice <= 0 {
			return fmt.Errorf("commodity %s: base_price must be positive", def.ID)
		}
		r.commodities[def.ID] = def
	}
	return nil
}

// Register adds a single commodity definition. Used by tests and
// programmatic setup.
func (r *Registry) Register(def *Commodity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commodities[def.ID] = def
}

// Get returns the definition for the given ID, or ErrUnknownCommodity.
func (r *Registry) Get(id CommodityID) (*Commodity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commodities[id]
	if !ok {
		return nil, ErrUnknownCommodity
	}
	return c, nil
}

// Exists returns true if the commodity ID has been registered.
func (r *Registry) Exists(id CommodityID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commodities[id]
	return ok
}

// BasePrice returns the configured base price for the commodity, or 1 if
// the commodity is unknown. The base price seeds the statistics fallbacks.
func (r *Registry) BasePrice(id CommodityID) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.commodities[id]; ok {
		return c.BasePrice
	}
	return 1
}

// All returns every registered commodity, sorted by ID for deterministic
// iteration.
func (r *Registry) All() []*Commodity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Commodity, 0, len(r.commodities))
	for _, c := range r.commodities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns every registered commodity ID in sorted order.
func (r *Registry) IDs() []CommodityID {
	all := r.All()
	ids := make([]CommodityID, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	return ids
}
