package zaruba

import "math"

// Resolver defaults. Documented as part of the auto-resolve contract.
const (
	defaultStartDistance = 320.0
	defaultTimeStepMs    = 50.0
	defaultMaxDurationMs = 90000.0
)

// ResolveConfig carries the resolver tunables. Zero values fall back to the
// defaults above, so ResolveConfig{} is the standard auto-resolve request.
type ResolveConfig struct {
	StartDistance float64 `json:"start_distance,omitempty"`
	TimeStepMs    float64 `json:"time_step_ms,omitempty"`
	MaxDurationMs float64 `json:"max_duration_ms,omitempty"`
}

func (c ResolveConfig) withDefaults() ResolveConfig {
	if c.StartDistance <= 0 {
		c.StartDistance = defaultStartDistance
	}
	if c.TimeStepMs <= 0 {
		c.TimeStepMs = defaultTimeStepMs
	}
	if c.MaxDurationMs <= 0 {
		c.MaxDurationMs = defaultMaxDurationMs
	}
	return c
}

// ResolveResult is the predicted outcome of a fast-forwarded matchup.
type ResolveResult struct {
	Winner     string    `json:"winner"` // "attacker", "defender" or "draw"
	Remaining  SideCount `json:"remaining"`
	DurationMs float64   `json:"duration_ms"`
}

// ffUnit is the resolver's one-dimensional stand-in for a live unit. No
// lateral position, no separation, no target memory.
type ffUnit struct {
	team       int
	x          float64
	hp         float64
	stats      Stats
	prof       Profile
	lastAttack float64
}

// Simulate fast-forwards a single-type-per-side battle on a line. Attackers
// start at x=0, defenders at x=startDistance; ids ascend attackers-first,
// matching materialize order. Each tick works off a start-of-tick position
// snapshot so both sides enter range symmetrically, while hp stays live so
// kills take effect for later units in the same tick. Returns nil for an
// unknown type or an empty side. The loop is bounded by
// maxDurationMs/timeStepMs iterations; an unresolved fight is a draw.
//
// The damage and derivation math is shared verbatim with the live engine;
// everything geometric is deliberately simpler. The resolver predicts a
// winner and survivor counts, it does not replay the battle.
func Simulate(c *Catalog, attackerType, defenderType string, attackerCount, defenderCount int, cfg ResolveConfig) *ResolveResult {
	if attackerCount <= 0 || defenderCount <= 0 {
		return nil
	}
	atk, ok := c.Get(attackerType)
	if !ok {
		return nil
	}
	def, ok := c.Get(defenderType)
	if !ok {
		return nil
	}
	cfg = cfg.withDefaults()

	units := make([]*ffUnit, 0, attackerCount+defenderCount)
	for i := 0; i < attackerCount; i++ {
		units = append(units, &ffUnit{team: TeamAttacker, hp: atk.Health, stats: atk.Stats, prof: Derive(atk.Stats)})
	}
	for i := 0; i < defenderCount; i++ {
		units = append(units, &ffUnit{team: TeamDefender, x: cfg.StartDistance, hp: def.Health, stats: def.Stats, prof: Derive(def.Stats)})
	}
	alive := [2]int{attackerCount, defenderCount}

	snapshot := make([]float64, len(units))
	elapsed := 0.0
	for alive[TeamAttacker] > 0 && alive[TeamDefender] > 0 && elapsed < cfg.MaxDurationMs {
		elapsed += cfg.TimeStepMs
		for i, u := range units {
			snapshot[i] = u.x
		}
		for i, u := range units {
			if u.hp <= 0 {
				continue
			}
			j := nearestFoe(units, snapshot, i)
			if j < 0 {
				break
			}
			e := units[j]
			dist := math.Abs(snapshot[j] - snapshot[i])
			if dist <= u.prof.EngagementRange {
				if elapsed-u.lastAttack >= u.prof.AttackCooldownMs {
					u.lastAttack = elapsed
					e.hp -= Damage(u.stats, e.stats.Defense)
					if e.hp <= 0 {
						alive[e.team]--
					}
				}
				continue
			}
			step := u.prof.MovementSpeed * cfg.TimeStepMs / 1000
			if step > dist {
				step = dist
			}
			if snapshot[j] > snapshot[i] {
				u.x += step
			} else {
				u.x -= step
			}
		}
	}

	winner := "draw"
	if alive[TeamDefender] == 0 && alive[TeamAttacker] > 0 {
		winner = "attacker"
	} else if alive[TeamAttacker] == 0 && alive[TeamDefender] > 0 {
		winner = "defender"
	}
	return &ResolveResult{
		Winner:     winner,
		Remaining:  sideCount(alive),
		DurationMs: elapsed,
	}
}

// nearestFoe finds the living enemy closest to unit i by snapshot x
// distance. First found wins on exact ties.
func nearestFoe(units []*ffUnit, snapshot []float64, i int) int {
	best := -1
	bestDist := math.MaxFloat64
	for j, e := range units {
		if e.team == units[i].team || e.hp <= 0 {
			continue
		}
		d := math.Abs(snapshot[j] - snapshot[i])
		if d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// sideType returns the single unit type a team has staged; fails when the
// team mixes types or has staged nothing.
func (g *Game) sideType(team int) (string, bool) {
	key := ""
	for _, p := range g.packs {
		if p.Team != team {
			continue
		}
		if key == "" {
			key = p.Key
		} else if key != p.Key {
			return "", false
		}
	}
	return key, key != ""
}

// AutoResolve predicts the staged battle and applies the result. Returns nil
// with zero mutation when a precondition fails: not in the deploy phase,
// mixed unit types on a side, an armed war machine anywhere, or an empty
// side. On success the survivors re-materialize into the original pack
// anchors in ascending pack id, the round moves straight to the over phase,
// and the outcome fires through the same callback as a live finish.
func (g *Game) AutoResolve(cfg ResolveConfig) *ResolveResult {
	if g.Phase != PhaseDeploy {
		return nil
	}
	for _, p := range g.packs {
		if p.Armed != nil {
			return nil
		}
	}
	atkType, ok := g.sideType(TeamAttacker)
	if !ok {
		return nil
	}
	defType, ok := g.sideType(TeamDefender)
	if !ok {
		return nil
	}

	res := Simulate(g.Catalog, atkType, defType,
		g.teamPackUnits(TeamAttacker), g.teamPackUnits(TeamDefender), cfg)
	if res == nil {
		return nil
	}

	g.recordDeployment()
	left := [2]int{res.Remaining.Attacker, res.Remaining.Defender}
	for _, p := range g.packs {
		n := left[p.Team]
		if n > p.Size {
			n = p.Size
		}
		materializePack(p, n, g.spawnUnit)
		left[p.Team] -= n
	}
	g.packs = nil
	g.selectedPack = 0
	g.battleMs = res.DurationMs
	g.finish(res.Winner, "auto", res.DurationMs, g.alive)
	return res
}
