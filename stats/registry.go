package stats

var archetypeBase = map[Archetype]Definition{
	ArchetypeGnoll: {
		MaxHealth:  30,
		Damage:     8,
		Speed:      9,
		XPValue:    10,
		BodyRadius: 14,
		SkinKey:    "gnoll",
		Abilities:  []string{"claw"},
	},
	ArchetypeOgre: {
		MaxHealth:  120,
		Damage:     15,
		Speed:      4,
		XPValue:    35,
		BodyRadius: 26,
		SkinKey:    "ogre",
		Abilities:  []string{"slam"},
	},
	ArchetypeViking: {
		MaxHealth:  80,
		Damage:     12,
		Speed:      7,
		XPValue:    30,
		BodyRadius: 18,
		SkinKey:    "viking",
		Abilities:  []string{"shield_wall", "cleave"},
	},
	ArchetypeArcher: {
		MaxHealth:  40,
		Damage:     10,
		Speed:      8,
		XPValue:    25,
		BodyRadius: 14,
		SkinKey:    "archer",
		Abilities:  []string{"power_shot", "kite"},
	},
	ArchetypePirate: {
		MaxHealth:  50,
		Damage:     9,
		Speed:      6,
		XPValue:    30,
		BodyRadius: 16,
		SkinKey:    "pirate",
		Abilities:  []string{"tide_vortex"},
	},
	ArchetypeMage: {
		MaxHealth:  45,
		Damage:     14,
		Speed:      6,
		XPValue:    40,
		BodyRadius: 16,
		SkinKey:    "mage",
		Abilities:  []string{"storm_call"},
	},
	ArchetypeSpirit: {
		MaxHealth:  15,
		Damage:     25,
		Speed:      14,
		XPValue:    15,
		BodyRadius: 12,
		SkinKey:    "spirit",
		Abilities:  []string{"detonate"},
	},
}

// DefinitionFor returns a copy of the stat block for the given archetype.
// Unknown archetypes report ok=false so spawners can fail loudly instead of
// silently fielding a zero-stat enemy.
func DefinitionFor(archetype Archetype) (Definition, bool) {
	base, ok := archetypeBase[archetype]
	if !ok {
		return Definition{}, false
	}
	return base.clone(), true
}

// MustDefinition returns the stat block for a known archetype and panics for
// anything else. Intended for tests and static tables.
func MustDefinition(archetype Archetype) Definition {
	def, ok := DefinitionFor(archetype)
	if !ok {
		panic("stats: unknown archetype " + archetype.String())
	}
	return def
}
