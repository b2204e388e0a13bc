package zaruba

import "testing"

func TestDeriveConversions(t *testing.T) {
	cases := []struct {
		name       string
		stats      Stats
		speed      float64
		engagement float64
		ranged     bool
		cooldown   float64
	}{
		{
			name:       "pure melee",
			stats:      Stats{Attack: 8, Defense: 6, Health: 25, Speed: 2},
			speed:      40,
			engagement: 18,
			ranged:     false,
			cooldown:   450,
		},
		{
			name:       "short range stays melee but slows down",
			stats:      Stats{Attack: 9, Defense: 8, Health: 28, Speed: 1.5, Range: 3},
			speed:      30,
			engagement: 15,
			ranged:     false,
			cooldown:   700,
		},
		{
			name:       "range at threshold is ranged",
			stats:      Stats{Attack: 6, Defense: 3, Health: 18, Speed: 2, Range: 10},
			speed:      40,
			engagement: 50,
			ranged:     true,
			cooldown:   700,
		},
		{
			name:       "long range",
			stats:      Stats{Attack: 6, Defense: 3, Health: 18, Speed: 2, Range: 14, RangeDamage: 9},
			speed:      40,
			engagement: 70,
			ranged:     true,
			cooldown:   700,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Derive(tc.stats)
			if p.MovementSpeed != tc.speed {
				t.Errorf("MovementSpeed = %v, want %v", p.MovementSpeed, tc.speed)
			}
			if p.EngagementRange != tc.engagement {
				t.Errorf("EngagementRange = %v, want %v", p.EngagementRange, tc.engagement)
			}
			if p.IsRanged != tc.ranged {
				t.Errorf("IsRanged = %v, want %v", p.IsRanged, tc.ranged)
			}
			if p.AttackCooldownMs != tc.cooldown {
				t.Errorf("AttackCooldownMs = %v, want %v", p.AttackCooldownMs, tc.cooldown)
			}
		})
	}
}

func TestDamage(t *testing.T) {
	cases := []struct {
		name     string
		attacker Stats
		defense  float64
		want     float64
	}{
		{"plain", Stats{Attack: 12}, 6, 9},             // round(12 - 2.7)
		{"rounding up", Stats{Attack: 10}, 1, 10},      // round(9.55)
		{"range damage wins", Stats{Attack: 6, RangeDamage: 9}, 0, 9},
		{"mitigation overflow floors at one", Stats{Attack: 8}, 20, 1},
		{"huge defense still floors", Stats{Attack: 1}, 10000, 1},
		{"zero defense", Stats{Attack: 5}, 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Damage(tc.attacker, tc.defense); got != tc.want {
				t.Errorf("Damage = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDamageNeverBelowOne(t *testing.T) {
	for attack := 1.0; attack <= 50; attack++ {
		for defense := 0.0; defense <= 200; defense += 7 {
			if got := Damage(Stats{Attack: attack}, defense); got < 1 {
				t.Fatalf("Damage(%v, %v) = %v, below floor", attack, defense, got)
			}
		}
	}
}

func TestArm(t *testing.T) {
	catapult := Stats{Attack: 10, Defense: 12, Health: 90, Speed: 1}

	armed := Arm(catapult)
	want := Stats{Attack: 20, Defense: 24, Health: 225, Speed: 1, Range: 35, RangeDamage: 24}
	if armed != want {
		t.Errorf("Arm = %+v, want %+v", armed, want)
	}

	// Pure function: same input, same output, input untouched.
	if again := Arm(catapult); again != armed {
		t.Errorf("second Arm = %+v, want %+v", again, armed)
	}
	if catapult.Range != 0 {
		t.Errorf("Arm mutated its input: %+v", catapult)
	}
}

func TestArmFixedRange(t *testing.T) {
	for speed := 0.5; speed <= 4; speed += 0.5 {
		armed := Arm(Stats{Attack: speed * 7, Defense: speed, Health: 40, Speed: speed, Range: 99})
		if armed.Range != 35 {
			t.Fatalf("armed range = %v, want 35", armed.Range)
		}
	}
}

func TestArmedProfileIsRanged(t *testing.T) {
	p := Derive(Arm(Stats{Attack: 10, Defense: 12, Health: 90, Speed: 1}))
	if !p.IsRanged {
		t.Error("armed machine should classify as ranged")
	}
	if p.EngagementRange != 175 {
		t.Errorf("armed engagement = %v, want 175", p.EngagementRange)
	}
	if p.AttackCooldownMs != 700 {
		t.Errorf("armed cooldown = %v, want 700", p.AttackCooldownMs)
	}
}
