package fuel

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Registry is an immutable, ID-keyed set of fuel definitions. It is safe for
// concurrent use without locking because nothing mutates it after construction.
type Registry struct {
	byID    map[string]Definition
	ordered []Definition
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	errDefault      error
)

// Default returns the registry built from the embedded fuel table. The table is parsed
// and checked once; an inconsistent embedded table panics on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, errDefault = NewRegistry(defaultTableYAML)
		if errDefault == nil {
			getLogger().Debug().
				Int("fuel_count", defaultRegistry.Len()).
				Msg("embedded fuel table loaded")
		}
	})
	if errDefault != nil {
		panic(fmt.Sprintf("embedded fuel table: %v", errDefault))
	}
	return defaultRegistry
}

// DefaultTable returns a copy of the embedded fuel table in YAML.
func DefaultTable() []byte {
	return bytes.Clone(defaultTableYAML)
}

// LoadFile builds a registry from a fuel table on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fuel table: %w", err)
	}
	reg, err := NewRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("fuel table %s: %w", path, err)
	}
	getLogger().Debug().
		Str("path", path).
		Int("fuel_count", reg.Len()).
		Msg("fuel table loaded from file")
	return reg, nil
}

// NewRegistry parses a YAML fuel table and checks every entry. Any violation of the
// activity-type/factor-shape rules returns an error wrapping ErrInconsistentFuelDefinition.
func NewRegistry(data []byte) (*Registry, error) {
	table, err := parseTable(data)
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		byID:    make(map[string]Definition, len(table.Fuels)),
		ordered: make([]Definition, 0, len(table.Fuels)),
	}
	for _, raw := range table.Fuels {
		def, err := raw.toDefinition()
		if err != nil {
			return nil, err
		}
		if _, dup := reg.byID[def.ID]; dup {
			return nil, inconsistent(def.ID, "duplicate fuel id")
		}
		reg.byID[def.ID] = def
		reg.ordered = append(reg.ordered, def)
	}
	sort.Slice(reg.ordered, func(i, j int) bool { return reg.ordered[i].ID < reg.ordered[j].ID })
	return reg, nil
}

// Lookup returns the definition for id. IDs are matched case-insensitively.
func (r *Registry) Lookup(id string) (Definition, error) {
	key := strings.ToUpper(strings.TrimSpace(id))
	def, ok := r.byID[key]
	if !ok {
		return Definition{}, &NotFoundError{ID: id}
	}
	return def, nil
}

// ListByActivityType returns the fuels of the given activity type sorted by ID.
// An empty subcategory matches every subcategory.
func (r *Registry) ListByActivityType(activity ActivityType, sub Subcategory) []Definition {
	var out []Definition
	for _, def := range r.ordered {
		if def.ActivityType != activity {
			continue
		}
		if sub != "" && def.Subcategory != sub {
			continue
		}
		out = append(out, def)
	}
	return out
}

// All returns every definition sorted by ID. The slice is a copy.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.ordered)
}
