package zaruba

import (
	"math"

	"go.uber.org/zap"
)

// Phase of a battle round.
type Phase string

const (
	PhaseDeploy Phase = "deploy"
	PhaseBattle Phase = "battle"
	PhaseOver   Phase = "over"
)

const sepEpsilon = 0.001

// Unit is a live battle entity. The static combat numbers are filled once at
// creation; the engine mutates position, hp, cooldown and target every tick.
type Unit struct {
	ID    int64   `json:"id"`
	Key   string  `json:"key"`
	Team  int     `json:"team"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	HP    float64 `json:"hp"`
	MaxHP float64 `json:"max_hp"`
	Armed bool    `json:"armed,omitempty"`

	Stats           Stats   `json:"-"`
	MovementSpeed   float64 `json:"-"`
	EngagementRange float64 `json:"-"`
	IsRanged        bool    `json:"-"`
	CooldownMs      float64 `json:"-"`
	LastAttack      float64 `json:"-"`
	TargetID        int64   `json:"-"`
}

// SideCount is a per-side tally.
type SideCount struct {
	Attacker int `json:"attacker"`
	Defender int `json:"defender"`
}

func sideCount(c [2]int) SideCount {
	return SideCount{Attacker: c[TeamAttacker], Defender: c[TeamDefender]}
}

// Outcome describes one finished battle round.
type Outcome struct {
	Winner        string    `json:"winner"` // "attacker", "defender" or "draw"
	Mode          string    `json:"mode"`   // "live" or "auto"
	DurationMs    float64   `json:"duration_ms"`
	Remaining     SideCount `json:"remaining"`
	Deployed      SideCount `json:"deployed"`
	ArmedMachines SideCount `json:"armed_machines"`
}

// BattleStats is the pull-based phase/count snapshot.
type BattleStats struct {
	Phase         Phase `json:"phase"`
	AttackerCount int   `json:"attacker_count"`
	DefenderCount int   `json:"defender_count"`
}

// Game is one battle room: staged packs during deploy, the live unit arena
// during battle. All state is owned by whichever goroutine drives the
// exported methods — the hub loop in the server, the test itself in tests.
type Game struct {
	Catalog *Catalog
	Phase   Phase
	Outcome *Outcome

	// OnOutcome fires once per finished round, live or auto-resolved.
	OnOutcome func(Outcome)

	packs        []*Pack
	nextPackID   int64
	selectedPack int64

	units      []*Unit // ascending id, compacted at tick start
	byID       map[int64]*Unit
	teamUnits  [2][]*Unit
	alive      [2]int
	nextUnitID int64

	deployed      [2]int
	armedMachines [2]int
	battleMs      float64

	log *zap.Logger
}

func NewGame(catalog *Catalog, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		Catalog: catalog,
		Phase:   PhaseDeploy,
		byID:    make(map[int64]*Unit),
		log:     log,
	}
}

// Reset clears the whole round back to an empty deploy phase. Ids keep
// counting up so stale references from a previous round never resolve.
func (g *Game) Reset() {
	g.packs = nil
	g.selectedPack = 0
	g.units = nil
	g.byID = make(map[int64]*Unit)
	g.teamUnits[0] = nil
	g.teamUnits[1] = nil
	g.alive = [2]int{}
	g.deployed = [2]int{}
	g.armedMachines = [2]int{}
	g.battleMs = 0
	g.Outcome = nil
	g.Phase = PhaseDeploy
}

// StartBattle dissolves the staged packs into live units and flips the round
// into the battle phase. Needs at least one pack on each side.
func (g *Game) StartBattle() bool {
	if g.Phase != PhaseDeploy {
		return false
	}
	if g.teamPackUnits(TeamAttacker) == 0 || g.teamPackUnits(TeamDefender) == 0 {
		return false
	}
	g.recordDeployment()
	g.materialize(g.spawnUnit)
	g.battleMs = 0
	g.Phase = PhaseBattle
	return true
}

func (g *Game) recordDeployment() {
	g.deployed = [2]int{g.teamPackUnits(TeamAttacker), g.teamPackUnits(TeamDefender)}
	g.armedMachines = [2]int{}
	for _, p := range g.packs {
		if p.Armed != nil {
			g.armedMachines[p.Team]++
		}
	}
}

// spawnUnit is the engine's own unit-creation callback. A key missing from
// the catalog here means the staged packs and the catalog disagree, which is
// a data bug worth shouting about rather than papering over with default
// stats.
func (g *Game) spawnUnit(x, y float64, team int, key string, armed *ArmedWarMachine) {
	def, ok := g.Catalog.Get(key)
	if !ok {
		g.log.Error("unit type missing from catalog", zap.String("key", key))
		return
	}
	stats := def.Stats
	if armed != nil {
		stats = armed.Stats
	}
	prof := Derive(stats)
	g.nextUnitID++
	u := &Unit{
		ID:    g.nextUnitID,
		Key:   key,
		Team:  team,
		X:     x,
		Y:     y,
		HP:    stats.Health,
		MaxHP: stats.Health,
		Armed: armed != nil,

		Stats:           stats,
		MovementSpeed:   prof.MovementSpeed,
		EngagementRange: prof.EngagementRange,
		IsRanged:        prof.IsRanged,
		CooldownMs:      prof.AttackCooldownMs,
	}
	g.units = append(g.units, u)
	g.byID[u.ID] = u
	g.alive[team]++
}

// Tick advances the battle by deltaMs at the host's clock time (both in
// milliseconds). Outside the battle phase it does nothing.
func (g *Game) Tick(timeMs, deltaMs float64) {
	if g.Phase != PhaseBattle {
		return
	}
	g.battleMs += deltaMs
	g.rebuildTeams()

	for _, u := range g.units {
		if u.HP <= 0 {
			continue // killed earlier this tick
		}
		g.act(u, timeMs, deltaMs)
	}

	if g.alive[TeamAttacker] == 0 || g.alive[TeamDefender] == 0 {
		g.finishLive()
	}
}

// rebuildTeams compacts last tick's dead and rebuilds the per-team views in
// one pass.
func (g *Game) rebuildTeams() {
	active := g.units[:0]
	g.teamUnits[0] = g.teamUnits[0][:0]
	g.teamUnits[1] = g.teamUnits[1][:0]
	for _, u := range g.units {
		if u.HP > 0 {
			active = append(active, u)
			g.teamUnits[u.Team] = append(g.teamUnits[u.Team], u)
		}
	}
	g.units = active
}

func (g *Game) act(u *Unit, timeMs, deltaMs float64) {
	target := g.currentTarget(u)
	if target == nil {
		target = g.findTarget(u)
		if target == nil {
			return
		}
		u.TargetID = target.ID
	}

	sx, sy := g.separation(u)
	dx := target.X - u.X
	dy := target.Y - u.Y
	dist := math.Hypot(dx, dy)

	if dist <= u.EngagementRange {
		if timeMs-u.LastAttack >= u.CooldownMs {
			u.LastAttack = timeMs
			g.strike(u, target)
		}
		if !u.IsRanged {
			g.nudge(u, sx, sy, deltaMs)
		}
		return
	}

	g.moveToward(u, dx, dy, dist, sx, sy, deltaMs)
}

// currentTarget validates the remembered target by id lookup. The id is a
// weak reference: the unit may have died and left the index. Melee units
// additionally drop targets that slipped behind them.
func (g *Game) currentTarget(u *Unit) *Unit {
	if u.TargetID == 0 {
		return nil
	}
	t, ok := g.byID[u.TargetID]
	if !ok || t.HP <= 0 {
		u.TargetID = 0
		return nil
	}
	if !u.IsRanged && forwardOffset(u, t) < 0 {
		u.TargetID = 0
		return nil
	}
	return t
}

func advanceSign(team int) float64 {
	if team == TeamAttacker {
		return 1
	}
	return -1
}

// forwardOffset is the target's distance ahead of the unit along its team's
// advance axis; negative means behind.
func forwardOffset(u, t *Unit) float64 {
	return (t.X - u.X) * advanceSign(u.Team)
}

// findTarget applies the acquisition policy. Ranged units take the nearest
// living enemy; melee units prefer depth ahead of them, weighting forward
// offset double over lateral spread, and fall back to nearest when nothing
// is in front. First found wins on exact ties.
func (g *Game) findTarget(u *Unit) *Unit {
	enemies := g.teamUnits[1-u.Team]
	if u.IsRanged {
		return nearestUnit(u, enemies)
	}
	var best *Unit
	bestScore := math.MaxFloat64
	for _, e := range enemies {
		if e.HP <= 0 {
			continue
		}
		fwd := forwardOffset(u, e)
		if fwd < 0 {
			continue
		}
		score := 2*fwd + math.Abs(e.Y-u.Y)
		if score < bestScore {
			bestScore = score
			best = e
		}
	}
	if best == nil {
		best = nearestUnit(u, enemies)
	}
	return best
}

func nearestUnit(u *Unit, enemies []*Unit) *Unit {
	var best *Unit
	bestDist := math.MaxFloat64
	for _, e := range enemies {
		if e.HP <= 0 {
			continue
		}
		d := math.Hypot(e.X-u.X, e.Y-u.Y)
		if d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best
}

func (g *Game) strike(u, target *Unit) {
	target.HP -= Damage(u.Stats, target.Stats.Defense)
	if target.HP <= 0 {
		g.kill(target)
	}
}

// kill drops the unit from the id index immediately so weak target lookups
// fail from this moment on; the slices compact on the next tick.
func (g *Game) kill(u *Unit) {
	delete(g.byID, u.ID)
	g.alive[u.Team]--
}

// separation accumulates repulsion away from same-team neighbours closer
// than four unit radii, weighted down linearly with distance.
func (g *Game) separation(u *Unit) (float64, float64) {
	const minDist = 4 * UnitRadius
	var sx, sy float64
	for _, ally := range g.teamUnits[u.Team] {
		if ally == u || ally.HP <= 0 {
			continue
		}
		dx := u.X - ally.X
		dy := u.Y - ally.Y
		d := math.Hypot(dx, dy)
		if d <= sepEpsilon || d >= minDist {
			continue
		}
		w := (minDist - d) / minDist
		sx += dx / d * w
		sy += dy / d * w
	}
	return sx, sy
}

// moveToward blends the chase direction with separation, renormalizes, and
// steps the unit, keeping it inside the field.
func (g *Game) moveToward(u *Unit, dx, dy, dist, sx, sy, deltaMs float64) {
	if dist <= sepEpsilon {
		return
	}
	mx := dx/dist + sx
	my := dy/dist + sy
	l := math.Hypot(mx, my)
	if l <= sepEpsilon {
		return
	}
	step := u.MovementSpeed * deltaMs / 1000
	u.X = clamp(u.X+mx/l*step, UnitRadius, MapWidth-UnitRadius)
	u.Y = clamp(u.Y+my/l*step, UnitRadius, MapHeight-UnitRadius)
}

// nudge is the damped separation-only step melee fighters keep applying
// while in combat so they do not stack on one spot.
func (g *Game) nudge(u *Unit, sx, sy, deltaMs float64) {
	l := math.Hypot(sx, sy)
	if l <= sepEpsilon {
		return
	}
	step := u.MovementSpeed * 0.35 * deltaMs / 1000
	u.X = clamp(u.X+sx/l*step, UnitRadius, MapWidth-UnitRadius)
	u.Y = clamp(u.Y+sy/l*step, UnitRadius, MapHeight-UnitRadius)
}

func (g *Game) finishLive() {
	winner := "draw"
	if g.alive[TeamAttacker] > 0 {
		winner = "attacker"
	} else if g.alive[TeamDefender] > 0 {
		winner = "defender"
	}
	g.finish(winner, "live", g.battleMs, g.alive)
}

func (g *Game) finish(winner, mode string, durationMs float64, remaining [2]int) {
	g.Phase = PhaseOver
	g.Outcome = &Outcome{
		Winner:        winner,
		Mode:          mode,
		DurationMs:    durationMs,
		Remaining:     sideCount(remaining),
		Deployed:      sideCount(g.deployed),
		ArmedMachines: sideCount(g.armedMachines),
	}
	if g.OnOutcome != nil {
		g.OnOutcome(*g.Outcome)
	}
}

// Packs exposes the staged packs for rendering. Callers must treat the
// slice as read-only; all mutation goes through the command methods.
func (g *Game) Packs() []*Pack { return g.packs }

// Units returns the living units. Units killed earlier in the current tick
// are already filtered out.
func (g *Game) Units() []*Unit {
	out := make([]*Unit, 0, len(g.units))
	for _, u := range g.units {
		if u.HP > 0 {
			out = append(out, u)
		}
	}
	return out
}

// Selected returns the id of the currently selected pack, 0 for none.
func (g *Game) Selected() int64 { return g.selectedPack }

// BattleMs returns the elapsed battle time of the current round.
func (g *Game) BattleMs() float64 { return g.battleMs }

// Stats recomputes the snapshot from current state: staged pack sizes during
// deploy, living units once a battle has started.
func (g *Game) Stats() BattleStats {
	s := BattleStats{Phase: g.Phase}
	if g.Phase == PhaseDeploy {
		s.AttackerCount = g.teamPackUnits(TeamAttacker)
		s.DefenderCount = g.teamPackUnits(TeamDefender)
		return s
	}
	s.AttackerCount = g.alive[TeamAttacker]
	s.DefenderCount = g.alive[TeamDefender]
	return s
}
