package stats

import "testing"

func TestCostKnownArchetypes(t *testing.T) {
	cases := []struct {
		name      string
		archetype Archetype
		want      int
	}{
		{name: "gnoll", archetype: ArchetypeGnoll, want: 27},
		{name: "pirate boss multiplier", archetype: ArchetypePirate, want: 53},
		{name: "spirit", archetype: ArchetypeSpirit, want: 63},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cost(MustDefinition(tc.archetype))
			if got != tc.want {
				t.Fatalf("Cost(%s) = %d, want %d", tc.archetype, got, tc.want)
			}
		})
	}
}

func TestThreatLevelKnownArchetypes(t *testing.T) {
	cases := []struct {
		name      string
		archetype Archetype
		want      int
	}{
		{name: "gnoll", archetype: ArchetypeGnoll, want: 42},
		{name: "pirate", archetype: ArchetypePirate, want: 63},
		{name: "spirit clamps at ceiling", archetype: ArchetypeSpirit, want: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ThreatLevel(MustDefinition(tc.archetype))
			if got != tc.want {
				t.Fatalf("ThreatLevel(%s) = %d, want %d", tc.archetype, got, tc.want)
			}
		})
	}
}

func TestScoringIsPure(t *testing.T) {
	def := MustDefinition(ArchetypeViking)
	wantCost := Cost(def)
	wantThreat := ThreatLevel(def)

	for i := 0; i < 25; i++ {
		if got := Cost(def); got != wantCost {
			t.Fatalf("Cost diverged on call %d: got %d, want %d", i, got, wantCost)
		}
		if got := ThreatLevel(def); got != wantThreat {
			t.Fatalf("ThreatLevel diverged on call %d: got %d, want %d", i, got, wantThreat)
		}
	}

	// Scoring must not mutate its input.
	fresh := MustDefinition(ArchetypeViking)
	if def.MaxHealth != fresh.MaxHealth || def.Damage != fresh.Damage ||
		def.Speed != fresh.Speed || def.XPValue != fresh.XPValue {
		t.Fatal("scoring mutated the definition")
	}
	if len(def.Abilities) != len(fresh.Abilities) {
		t.Fatal("scoring mutated the ability list")
	}
}

func TestCostUnknownAbilityMultiplier(t *testing.T) {
	def := Definition{
		MaxHealth: 10,
		Damage:    1,
		Speed:     2,
		XPValue:   0,
		Abilities: []string{"claw", "ancient_howl"},
	}
	// Base 4.0 with a 1.1 multiplier for the unrecognized ability.
	if got := Cost(def); got != 4 {
		t.Fatalf("Cost with unknown ability = %d, want 4", got)
	}
}

func TestCostFloorAndThreatFloor(t *testing.T) {
	var empty Definition
	if got := Cost(empty); got != 1 {
		t.Fatalf("Cost of empty definition = %d, want floor 1", got)
	}
	if got := ThreatLevel(empty); got != threatFloor {
		t.Fatalf("ThreatLevel of empty definition = %d, want floor %d", got, threatFloor)
	}
}
