package stats

import "math"

// Scoring weights. Cost feeds the wave budget; threat feeds the HUD gauge and
// saturates at 100.
const (
	costHealthWeight = 0.1
	costDamageWeight = 2.0
	costSpeedWeight  = 0.5
	costXPWeight     = 0.3

	threatHealthWeight = 0.15
	threatDamageWeight = 3.0
	threatSpeedWeight  = 0.8
	threatXPWeight     = 0.4

	bossAbilityMultiplier    = 0.5
	unknownAbilityMultiplier = 0.1

	threatFloor   = 1
	threatCeiling = 100
)

// bossTierAbilities mark the high-impact casts that inflate spawn cost.
var bossTierAbilities = map[string]struct{}{
	"tide_vortex": {},
	"storm_call":  {},
}

// abilityThreatBonus is the flat threat contribution per recognized ability.
var abilityThreatBonus = map[string]int{
	"claw":        2,
	"slam":        8,
	"shield_wall": 10,
	"cleave":      5,
	"power_shot":  7,
	"kite":        3,
	"tide_vortex": 12,
	"storm_call":  15,
	"detonate":    10,
}

// Cost returns the wave-budget price of spawning one enemy with the given
// stat block. The function is pure: it reads nothing but its argument and
// always returns at least 1.
func Cost(def Definition) int {
	base := costHealthWeight*def.MaxHealth +
		costDamageWeight*def.Damage +
		costSpeedWeight*def.Speed +
		costXPWeight*def.XPValue

	multiplier := 1.0
	for _, ability := range def.Abilities {
		if _, boss := bossTierAbilities[ability]; boss {
			multiplier += bossAbilityMultiplier
			continue
		}
		if _, known := abilityThreatBonus[ability]; !known {
			multiplier += unknownAbilityMultiplier
		}
	}

	cost := int(math.Round(base * multiplier))
	if cost < 1 {
		return 1
	}
	return cost
}

// ThreatLevel returns the 1-100 danger rating shown to the player. Pure, like
// Cost.
func ThreatLevel(def Definition) int {
	base := threatHealthWeight*def.MaxHealth +
		threatDamageWeight*def.Damage +
		threatSpeedWeight*def.Speed +
		threatXPWeight*def.XPValue

	threat := int(math.Round(base))
	for _, ability := range def.Abilities {
		threat += abilityThreatBonus[ability]
	}

	if threat < threatFloor {
		return threatFloor
	}
	if threat > threatCeiling {
		return threatCeiling
	}
	return threat
}
