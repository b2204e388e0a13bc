package zaruba

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Family is the variant class of a unit type. Every capability check in the
// game goes through the catalog entry's tag, not through key comparisons.
type Family string

const (
	FamilyRegular    Family = "regular"
	FamilyHero       Family = "hero"
	FamilyWarMachine Family = "war_machine"
)

// Stats is a base combat stat block. Range 0 means no base ranged weapon;
// RangeDamage 0 means ranged attacks fall back to Attack.
type Stats struct {
	Attack      float64 `yaml:"attack" json:"attack"`
	Defense     float64 `yaml:"defense" json:"defense"`
	Health      float64 `yaml:"health" json:"health"`
	Speed       float64 `yaml:"speed" json:"speed"`
	Range       float64 `yaml:"range,omitempty" json:"range,omitempty"`
	RangeDamage float64 `yaml:"range_damage,omitempty" json:"range_damage,omitempty"`
}

// UnitDef is one catalog entry.
type UnitDef struct {
	Key    string `yaml:"-" json:"key"`
	Name   string `yaml:"name" json:"name"`
	Family Family `yaml:"family" json:"family"`
	Stats  `yaml:",inline"`
}

// Catalog holds every deployable unit type. Immutable after load, so it is
// safe to share between the hub loop and HTTP handlers.
type Catalog struct {
	units map[string]UnitDef
}

// LoadCatalog reads the unit table from a YAML file. Unknown fields are
// rejected so a typo in the data file fails startup instead of silently
// shipping a unit with zeroed stats.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file struct {
		Units map[string]UnitDef `yaml:"units"`
	}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(file.Units) == 0 {
		return nil, fmt.Errorf("%s: no units defined", path)
	}

	c := &Catalog{units: make(map[string]UnitDef, len(file.Units))}
	for key, def := range file.Units {
		def.Key = key
		if err := validateDef(def); err != nil {
			return nil, fmt.Errorf("unit %q: %w", key, err)
		}
		c.units[key] = def
	}
	return c, nil
}

// NewCatalog builds a catalog from in-memory definitions. Used by tests.
func NewCatalog(defs map[string]UnitDef) (*Catalog, error) {
	c := &Catalog{units: make(map[string]UnitDef, len(defs))}
	for key, def := range defs {
		def.Key = key
		if err := validateDef(def); err != nil {
			return nil, fmt.Errorf("unit %q: %w", key, err)
		}
		c.units[key] = def
	}
	return c, nil
}

func validateDef(def UnitDef) error {
	switch def.Family {
	case FamilyRegular, FamilyHero, FamilyWarMachine:
	default:
		return fmt.Errorf("unknown family %q", def.Family)
	}
	if def.Attack <= 0 {
		return fmt.Errorf("attack must be > 0, got %v", def.Attack)
	}
	if def.Defense < 0 {
		return fmt.Errorf("defense must be >= 0, got %v", def.Defense)
	}
	if def.Health <= 0 {
		return fmt.Errorf("health must be > 0, got %v", def.Health)
	}
	if def.Speed <= 0 {
		return fmt.Errorf("speed must be > 0, got %v", def.Speed)
	}
	if def.Range < 0 {
		return fmt.Errorf("range must be >= 0, got %v", def.Range)
	}
	if def.RangeDamage < 0 {
		return fmt.Errorf("range_damage must be >= 0, got %v", def.RangeDamage)
	}
	return nil
}

// Get returns the definition for a unit-type key.
func (c *Catalog) Get(key string) (UnitDef, bool) {
	def, ok := c.units[key]
	return def, ok
}

// Count returns the number of unit types in the catalog.
func (c *Catalog) Count() int { return len(c.units) }

// Keys returns all unit-type keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.units))
	for k := range c.units {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
