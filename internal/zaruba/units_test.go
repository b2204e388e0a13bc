package zaruba

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// testCatalog mirrors the shipped units.yaml values the balance tests rely
// on.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(map[string]UnitDef{
		"warrior":  {Name: "Warrior", Family: FamilyRegular, Stats: Stats{Attack: 8, Defense: 6, Health: 25, Speed: 2}},
		"dwarf":    {Name: "Dwarf", Family: FamilyRegular, Stats: Stats{Attack: 12, Defense: 20, Health: 40, Speed: 1}},
		"spearman": {Name: "Spearman", Family: FamilyRegular, Stats: Stats{Attack: 9, Defense: 8, Health: 28, Speed: 1.5, Range: 3}},
		"archer":   {Name: "Archer", Family: FamilyRegular, Stats: Stats{Attack: 6, Defense: 3, Health: 18, Speed: 2, Range: 14, RangeDamage: 9}},
		"champion": {Name: "Champion", Family: FamilyHero, Stats: Stats{Attack: 25, Defense: 15, Health: 120, Speed: 2.5}},
		"catapult": {Name: "Catapult", Family: FamilyWarMachine, Stats: Stats{Attack: 10, Defense: 12, Health: 90, Speed: 1}},
	})
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return c
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame(testCatalog(t), zap.NewNop())
}

func writeCatalogFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalogFile(t, `
units:
  warrior:
    name: Warrior
    family: regular
    attack: 8
    defense: 6
    health: 25
    speed: 2
  archer:
    name: Archer
    family: regular
    attack: 6
    defense: 3
    health: 18
    speed: 2
    range: 14
    range_damage: 9
`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Count() != 2 {
		t.Fatalf("Count = %d, want 2", c.Count())
	}
	def, ok := c.Get("archer")
	if !ok {
		t.Fatal("archer missing")
	}
	if def.Key != "archer" || def.Family != FamilyRegular || def.Range != 14 {
		t.Errorf("archer = %+v", def)
	}
	if _, ok := c.Get("dragon"); ok {
		t.Error("unknown key should miss")
	}
}

func TestLoadCatalogRejectsUnknownFields(t *testing.T) {
	path := writeCatalogFile(t, `
units:
  warrior:
    name: Warrior
    family: regular
    attack: 8
    defense: 6
    health: 25
    speed: 2
    armor: 99
`)
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("unknown field should fail the load")
	}
}

func TestLoadCatalogValidation(t *testing.T) {
	cases := []struct {
		name string
		def  UnitDef
		want string
	}{
		{"unknown family", UnitDef{Name: "X", Family: "monster", Stats: Stats{Attack: 1, Health: 1, Speed: 1}}, "family"},
		{"zero attack", UnitDef{Name: "X", Family: FamilyRegular, Stats: Stats{Health: 1, Speed: 1}}, "attack"},
		{"zero health", UnitDef{Name: "X", Family: FamilyRegular, Stats: Stats{Attack: 1, Speed: 1}}, "health"},
		{"zero speed", UnitDef{Name: "X", Family: FamilyRegular, Stats: Stats{Attack: 1, Health: 1}}, "speed"},
		{"negative defense", UnitDef{Name: "X", Family: FamilyRegular, Stats: Stats{Attack: 1, Defense: -1, Health: 1, Speed: 1}}, "defense"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(map[string]UnitDef{"x": tc.def})
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestCatalogKeysSorted(t *testing.T) {
	c := testCatalog(t)
	keys := c.Keys()
	if len(keys) != c.Count() {
		t.Fatalf("Keys len = %d, want %d", len(keys), c.Count())
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
