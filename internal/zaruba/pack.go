package zaruba

import "math"

// World layout. The playfield splits into an attacker strip on the left, a
// dead neutral band, and the defender's ground on the right.
const (
	MapWidth  = 1200.0
	MapHeight = 700.0

	attackerZoneEnd  = MapWidth * 0.30
	defenderZoneFrom = MapWidth * 0.40

	PackSize        = 20
	MaxUnitsPerTeam = 500

	gridCols    = 5
	gridSpacing = 12.0

	anchorMarginX = 8.0
	anchorMarginY = 10.0

	UnitRadius     = 8.0
	packPickRadius = 30.0
)

const (
	TeamAttacker = 0
	TeamDefender = 1
)

// Pack is a deployment-time grouping of same-type units. Packs never fight;
// they dissolve into individual units when the battle starts.
type Pack struct {
	ID              int64            `json:"id"`
	Team            int              `json:"team"`
	Key             string           `json:"key"`
	X               float64          `json:"x"`
	Y               float64          `json:"y"`
	Size            int              `json:"size"`
	EngagementRange float64          `json:"range"`
	IsRanged        bool             `json:"ranged"`
	Armed           *ArmedWarMachine `json:"armed,omitempty"`
}

// ArmedWarMachine records what a war machine was loaded with and the combat
// stats it will fight with.
type ArmedWarMachine struct {
	ArmedWith string `json:"armed_with"`
	Stats     Stats  `json:"-"`
}

func zoneBounds(team int) (float64, float64) {
	if team == TeamAttacker {
		return 0, attackerZoneEnd
	}
	return defenderZoneFrom, MapWidth
}

// inZone reports whether a raw placement point lies in the team's own ground.
// The neutral band belongs to neither team.
func inZone(team int, x, y float64) bool {
	if y < 0 || y > MapHeight {
		return false
	}
	minX, maxX := zoneBounds(team)
	if team == TeamAttacker {
		return x >= minX && x < maxX
	}
	return x >= minX && x <= maxX
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unitsToSpawn(f Family) int {
	if f == FamilyHero || f == FamilyWarMachine {
		return 1
	}
	return PackSize
}

// teamPackUnits sums the units currently staged in a team's packs.
func (g *Game) teamPackUnits(team int) int {
	n := 0
	for _, p := range g.packs {
		if p.Team == team {
			n += p.Size
		}
	}
	return n
}

func (g *Game) packByID(id int64) *Pack {
	for _, p := range g.packs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlacePack stages a new pack at the requested point. Placement outside the
// team's zone, unknown unit types, and capacity overflow are all silent
// no-ops returning nil.
func (g *Game) PlacePack(x, y float64, team int, key string) *Pack {
	if g.Phase != PhaseDeploy {
		return nil
	}
	if team != TeamAttacker && team != TeamDefender {
		return nil
	}
	def, ok := g.Catalog.Get(key)
	if !ok {
		return nil
	}
	if !inZone(team, x, y) {
		return nil
	}
	spawn := unitsToSpawn(def.Family)
	if g.teamPackUnits(team)+spawn > MaxUnitsPerTeam {
		return nil
	}

	minX, maxX := zoneBounds(team)
	prof := Derive(def.Stats)
	g.nextPackID++
	p := &Pack{
		ID:              g.nextPackID,
		Team:            team,
		Key:             key,
		X:               clamp(x, minX+anchorMarginX, maxX-anchorMarginX),
		Y:               clamp(y, anchorMarginY, MapHeight-anchorMarginY),
		Size:            spawn,
		EngagementRange: prof.EngagementRange,
		IsRanged:        prof.IsRanged,
	}
	g.packs = append(g.packs, p)
	return p
}

// RemovePack deletes a staged pack outright.
func (g *Game) RemovePack(id int64) bool {
	if g.Phase != PhaseDeploy {
		return false
	}
	for i, p := range g.packs {
		if p.ID == id {
			g.packs = append(g.packs[:i], g.packs[i+1:]...)
			if g.selectedPack == id {
				g.selectedPack = 0
			}
			return true
		}
	}
	return false
}

// PackAt resolves a pointer position to the nearest staged pack within
// picking distance, or nil.
func (g *Game) PackAt(x, y float64) *Pack {
	var best *Pack
	bestDist := math.MaxFloat64
	for _, p := range g.packs {
		d := math.Hypot(p.X-x, p.Y-y)
		if d <= packPickRadius && d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// SelectPack marks the pack under the pointer for range preview; clicking
// empty ground clears the selection. At most one pack is selected at a time.
func (g *Game) SelectPack(x, y float64) *Pack {
	p := g.PackAt(x, y)
	if p == nil {
		g.selectedPack = 0
		return nil
	}
	g.selectedPack = p.ID
	return p
}

// ArmWarMachine loads a war machine pack with a full pure-melee pack of the
// same team, consuming the source whole. Every precondition failure leaves
// both packs untouched.
func (g *Game) ArmWarMachine(machineID, sourceID int64) bool {
	if g.Phase != PhaseDeploy {
		return false
	}
	machine := g.packByID(machineID)
	source := g.packByID(sourceID)
	if machine == nil || source == nil || machine == source {
		return false
	}
	if machine.Team != source.Team {
		return false
	}
	machineDef, ok := g.Catalog.Get(machine.Key)
	if !ok || machineDef.Family != FamilyWarMachine || machine.Armed != nil {
		return false
	}
	sourceDef, ok := g.Catalog.Get(source.Key)
	if !ok || sourceDef.Family != FamilyRegular || sourceDef.Range > 0 {
		return false
	}
	if source.Size < PackSize {
		return false
	}

	armed := Arm(machineDef.Stats)
	prof := Derive(armed)
	machine.Armed = &ArmedWarMachine{ArmedWith: source.Key, Stats: armed}
	machine.EngagementRange = prof.EngagementRange
	machine.IsRanged = prof.IsRanged
	g.RemovePack(source.ID)
	return true
}

// materialize dissolves every staged pack into live units through the
// creation callback, ascending pack id, then clears the staging area.
func (g *Game) materialize(create createUnitFunc) {
	for _, p := range g.packs {
		materializePack(p, p.Size, create)
	}
	g.packs = nil
	g.selectedPack = 0
}

type createUnitFunc func(x, y float64, team int, key string, armed *ArmedWarMachine)

// materializePack spawns up to count units of a pack. Full packs land on a
// 4x5 grid centered on the anchor; singles stand on the anchor itself.
func materializePack(p *Pack, count int, create createUnitFunc) {
	if count > p.Size {
		count = p.Size
	}
	if count <= 0 {
		return
	}
	if p.Size == 1 {
		create(p.X, p.Y, p.Team, p.Key, p.Armed)
		return
	}
	minX, maxX := zoneBounds(p.Team)
	for i := 0; i < count; i++ {
		col := i % gridCols
		row := i / gridCols
		x := p.X + (float64(col)-2)*gridSpacing
		y := p.Y + (float64(row)-1.5)*gridSpacing
		x = clamp(x, minX+anchorMarginX, maxX-anchorMarginX)
		y = clamp(y, anchorMarginY, MapHeight-anchorMarginY)
		create(x, y, p.Team, p.Key, p.Armed)
	}
}
