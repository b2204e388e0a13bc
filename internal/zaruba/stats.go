package zaruba

import "math"

// Derivation constants shared by the live engine and the fast-forward
// resolver. The two simulations must agree on every one of them.
const (
	speedScale        = 20.0
	rangeScale        = 5.0
	meleeRange        = 18.0
	rangedThreshold   = 10.0
	cooldownRangedMs  = 700.0
	cooldownMeleeMs   = 450.0
	mitigationFactor  = 0.45
	armedMachineRange = 35.0
)

// Profile is the simulation-ready view of a stat block.
type Profile struct {
	MovementSpeed    float64
	EngagementRange  float64
	IsRanged         bool
	AttackCooldownMs float64
}

// Derive converts base stats into world-unit movement and engagement values.
// A base range below the ranged threshold keeps the unit melee-classified but
// still carries the slower ranged-weapon cooldown.
func Derive(s Stats) Profile {
	p := Profile{
		MovementSpeed:    s.Speed * speedScale,
		EngagementRange:  meleeRange,
		AttackCooldownMs: cooldownMeleeMs,
	}
	if s.Range > 0 {
		p.EngagementRange = s.Range * rangeScale
		p.AttackCooldownMs = cooldownRangedMs
		p.IsRanged = s.Range >= rangedThreshold
	}
	return p
}

// Damage resolves one hit from the attacker's stat block against a defense
// value. Never returns less than 1, however deep the mitigation.
func Damage(attacker Stats, defense float64) float64 {
	power := attacker.Attack
	if attacker.RangeDamage > 0 {
		power = attacker.RangeDamage
	}
	dmg := math.Round(power - defense*mitigationFactor)
	if dmg < 1 {
		return 1
	}
	return dmg
}

// Arm computes the combat profile a war machine takes on when loaded with a
// melee pack: doubled attack and armor, 2.5x health, half speed, and a fixed
// long-range weapon keyed off the boosted attack.
func Arm(s Stats) Stats {
	attack := math.Round(s.Attack * 2)
	return Stats{
		Attack:      attack,
		Defense:     math.Round(s.Defense * 2),
		Health:      math.Round(s.Health * 2.5),
		Speed:       math.Round(s.Speed * 0.5),
		Range:       armedMachineRange,
		RangeDamage: math.Round(attack * 1.2),
	}
}
