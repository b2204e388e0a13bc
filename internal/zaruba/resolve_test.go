package zaruba

import "testing"

func TestSimulateMirrorDuel(t *testing.T) {
	c := testCatalog(t)
	// Close enough that neither side has to move.
	res := Simulate(c, "warrior", "warrior", 1, 1, ResolveConfig{StartDistance: 10})
	if res == nil {
		t.Fatal("valid matchup returned nil")
	}
	// round(8 - 6*0.45) = 5 damage, 25 hp, so five swings 450ms apart. The
	// attacker acts first each tick and lands the killing blow before the
	// defender's final swing.
	if res.Winner != "attacker" {
		t.Errorf("winner = %q, want attacker", res.Winner)
	}
	if res.Remaining.Attacker != 1 || res.Remaining.Defender != 0 {
		t.Errorf("remaining = %+v", res.Remaining)
	}
	if res.DurationMs != 5*450 {
		t.Errorf("duration = %v, want 2250", res.DurationMs)
	}
}

func TestSimulateAttritionFavorsArmor(t *testing.T) {
	c := testCatalog(t)
	res := Simulate(c, "warrior", "dwarf", 20, 20, ResolveConfig{})
	if res == nil {
		t.Fatal("valid matchup returned nil")
	}
	if res.Winner != "defender" {
		t.Fatalf("winner = %q, want defender", res.Winner)
	}
	if res.Remaining.Attacker != 0 {
		t.Errorf("attacker remaining = %d, want 0", res.Remaining.Attacker)
	}
	// The dwarves win on attrition but not for free.
	if res.Remaining.Defender <= 10 || res.Remaining.Defender >= 20 {
		t.Errorf("defender remaining = %d, want strictly between 10 and 20", res.Remaining.Defender)
	}
	// Closing 320 field units at combined melee speed takes ~5s before the
	// first swing, then several combat rounds.
	if res.DurationMs <= 5000 || res.DurationMs >= defaultMaxDurationMs {
		t.Errorf("duration = %v, want a finished fight after the approach", res.DurationMs)
	}
}

func TestSimulateRangedFirstStrike(t *testing.T) {
	c := testCatalog(t)
	// Five archers drop a lone warrior in their opening volley, well before
	// it closes to melee range.
	res := Simulate(c, "archer", "warrior", 5, 1, ResolveConfig{})
	if res == nil {
		t.Fatal("valid matchup returned nil")
	}
	if res.Winner != "attacker" || res.Remaining.Attacker != 5 || res.Remaining.Defender != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestSimulateDrawOnCap(t *testing.T) {
	c := testCatalog(t)
	res := Simulate(c, "warrior", "dwarf", 5, 5, ResolveConfig{MaxDurationMs: 100})
	if res == nil {
		t.Fatal("valid matchup returned nil")
	}
	if res.Winner != "draw" {
		t.Errorf("winner = %q, want draw", res.Winner)
	}
	if res.Remaining.Attacker != 5 || res.Remaining.Defender != 5 {
		t.Errorf("remaining = %+v, nobody should have reached anybody", res.Remaining)
	}
	if res.DurationMs != 100 {
		t.Errorf("duration = %v, want the 100ms cap", res.DurationMs)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	c := testCatalog(t)
	if Simulate(c, "dragon", "warrior", 1, 1, ResolveConfig{}) != nil {
		t.Error("unknown attacker type should return nil")
	}
	if Simulate(c, "warrior", "dragon", 1, 1, ResolveConfig{}) != nil {
		t.Error("unknown defender type should return nil")
	}
	if Simulate(c, "warrior", "warrior", 0, 1, ResolveConfig{}) != nil {
		t.Error("empty attacker side should return nil")
	}
	if Simulate(c, "warrior", "warrior", 1, -1, ResolveConfig{}) != nil {
		t.Error("empty defender side should return nil")
	}
}

func TestAutoResolve(t *testing.T) {
	g := newTestGame(t)
	var got *Outcome
	g.OnOutcome = func(o Outcome) { got = &o }

	g.PlacePack(100, 350, TeamAttacker, "warrior")
	g.PlacePack(600, 350, TeamDefender, "dwarf")

	res := g.AutoResolve(ResolveConfig{})
	if res == nil {
		t.Fatal("AutoResolve failed on a valid setup")
	}
	if res.Winner != "defender" {
		t.Fatalf("winner = %q, want defender", res.Winner)
	}
	if g.Phase != PhaseOver {
		t.Errorf("phase = %v, want over", g.Phase)
	}
	if len(g.Packs()) != 0 {
		t.Error("packs must be consumed by resolution")
	}

	units := g.Units()
	if len(units) != res.Remaining.Defender {
		t.Errorf("%d survivors on the field, result says %d", len(units), res.Remaining.Defender)
	}
	for _, u := range units {
		if u.Team != TeamDefender || u.Key != "dwarf" {
			t.Fatalf("unexpected survivor %+v", u)
		}
		if u.X < defenderZoneFrom {
			t.Fatalf("survivor at x=%v left the defender zone", u.X)
		}
	}

	if got == nil {
		t.Fatal("outcome callback did not fire")
	}
	if got.Mode != "auto" || got.Winner != res.Winner || got.DurationMs != res.DurationMs {
		t.Errorf("outcome = %+v, result = %+v", got, res)
	}
	if got.Remaining != res.Remaining {
		t.Errorf("outcome remaining = %+v, result = %+v", got.Remaining, res.Remaining)
	}
	if got.Deployed != (SideCount{Attacker: PackSize, Defender: PackSize}) {
		t.Errorf("deployed = %+v", got.Deployed)
	}
}

func TestAutoResolveSurvivorsFillPacksInOrder(t *testing.T) {
	g := newTestGame(t)
	g.PlacePack(500, 200, TeamDefender, "dwarf")
	g.PlacePack(700, 500, TeamDefender, "dwarf")
	g.PlacePack(100, 300, TeamAttacker, "warrior")
	g.PlacePack(100, 400, TeamAttacker, "warrior")

	res := g.AutoResolve(ResolveConfig{})
	if res == nil || res.Winner != "defender" {
		t.Fatalf("result = %+v", res)
	}
	if res.Remaining.Defender <= PackSize || res.Remaining.Defender >= 2*PackSize {
		t.Fatalf("defender remaining = %d, want partial losses across two packs", res.Remaining.Defender)
	}

	// Survivors fill the earliest-placed pack first; the shortfall comes out
	// of the last anchor.
	var nearFirst int
	for _, u := range g.Units() {
		if u.Y < 350 {
			nearFirst++
		}
	}
	if nearFirst != PackSize {
		t.Errorf("%d survivors at the first anchor, want a full %d", nearFirst, PackSize)
	}
	if len(g.Units()) != res.Remaining.Defender {
		t.Errorf("field has %d units, result says %d", len(g.Units()), res.Remaining.Defender)
	}
}

func TestAutoResolvePreconditions(t *testing.T) {
	check := func(t *testing.T, g *Game, wantPacks int) {
		t.Helper()
		if res := g.AutoResolve(ResolveConfig{}); res != nil {
			t.Fatalf("AutoResolve = %+v, want nil", res)
		}
		if len(g.Packs()) != wantPacks {
			t.Errorf("staged packs = %d, want %d untouched", len(g.Packs()), wantPacks)
		}
		if g.Outcome != nil {
			t.Error("failed resolve must not record an outcome")
		}
	}

	t.Run("empty side", func(t *testing.T) {
		g := newTestGame(t)
		g.PlacePack(100, 350, TeamAttacker, "warrior")
		check(t, g, 1)
		if g.Phase != PhaseDeploy {
			t.Error("phase must stay deploy")
		}
	})

	t.Run("mixed types", func(t *testing.T) {
		g := newTestGame(t)
		g.PlacePack(100, 300, TeamAttacker, "warrior")
		g.PlacePack(100, 400, TeamAttacker, "archer")
		g.PlacePack(600, 350, TeamDefender, "warrior")
		check(t, g, 3)
	})

	t.Run("armed machine", func(t *testing.T) {
		g := newTestGame(t)
		machine := g.PlacePack(100, 300, TeamAttacker, "catapult")
		source := g.PlacePack(100, 400, TeamAttacker, "warrior")
		g.PlacePack(600, 350, TeamDefender, "warrior")
		if !g.ArmWarMachine(machine.ID, source.ID) {
			t.Fatal("arming should succeed")
		}
		check(t, g, 2)
	})

	t.Run("battle already running", func(t *testing.T) {
		g := newTestGame(t)
		g.PlacePack(100, 350, TeamAttacker, "warrior")
		g.PlacePack(600, 350, TeamDefender, "warrior")
		g.StartBattle()
		check(t, g, 0)
	})
}
