package stats

// Archetype identifies one of the closed set of enemy families. Behavior
// dispatch, spawn validation, and scoring all key off this enum; there is no
// open registration path.
type Archetype uint8

const (
	ArchetypeGnoll Archetype = iota
	ArchetypeOgre
	ArchetypeViking
	ArchetypeArcher
	ArchetypePirate
	ArchetypeMage
	ArchetypeSpirit

	ArchetypeCount
)

var archetypeNames = [ArchetypeCount]string{
	ArchetypeGnoll:  "gnoll",
	ArchetypeOgre:   "ogre",
	ArchetypeViking: "viking",
	ArchetypeArcher: "archer",
	ArchetypePirate: "pirate",
	ArchetypeMage:   "mage",
	ArchetypeSpirit: "spirit",
}

func (a Archetype) String() string {
	if a < ArchetypeCount {
		return archetypeNames[a]
	}
	return "unknown"
}

// Valid reports whether the archetype is a member of the closed set.
func (a Archetype) Valid() bool {
	return a < ArchetypeCount
}

// ParseArchetype resolves an archetype by its wire name.
func ParseArchetype(name string) (Archetype, bool) {
	for idx, candidate := range archetypeNames {
		if candidate == name {
			return Archetype(idx), true
		}
	}
	return ArchetypeCount, false
}

// Definition is the immutable stat block an enemy is spawned from. Speed is a
// rating attribute used by the scorer; world movement speed is behavior
// tuning, not a stat.
type Definition struct {
	MaxHealth  float64
	Damage     float64
	Speed      float64
	XPValue    float64
	BodyRadius float64
	SkinKey    string
	Abilities  []string
}

// clone keeps callers from aliasing the registry's ability slices.
func (d Definition) clone() Definition {
	out := d
	if len(d.Abilities) > 0 {
		out.Abilities = append([]string(nil), d.Abilities...)
	}
	return out
}
