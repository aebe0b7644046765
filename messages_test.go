package server

import (
	"testing"

	"rush-and-ruin/server/internal/sim"
	"rush-and-ruin/server/stats"
)

func TestRewardNoticesConvertDrops(t *testing.T) {
	drops := []sim.RewardDrop{
		{EnemyID: "enemy-7", Archetype: stats.ArchetypeGnoll, XPValue: 12, X: 320, Y: 144, Tick: 9},
		{EnemyID: "enemy-9", Archetype: stats.ArchetypeOgre, XPValue: 40, X: 80, Y: 610, Tick: 9},
	}

	notices := rewardNotices(drops)
	if len(notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(notices))
	}

	first := notices[0]
	if first.EnemyID != "enemy-7" {
		t.Fatalf("expected enemy id enemy-7, got %q", first.EnemyID)
	}
	if first.Archetype != stats.ArchetypeGnoll.String() {
		t.Fatalf("expected archetype %q, got %q", stats.ArchetypeGnoll.String(), first.Archetype)
	}
	if first.XP != 12 {
		t.Fatalf("expected xp 12, got %v", first.XP)
	}
	if first.X != 320 || first.Y != 144 {
		t.Fatalf("expected drop position (320,144), got (%v,%v)", first.X, first.Y)
	}

	if notices[1].Archetype != stats.ArchetypeOgre.String() {
		t.Fatalf("expected archetype %q, got %q", stats.ArchetypeOgre.String(), notices[1].Archetype)
	}
}

func TestRewardNoticesEmptyStaysNil(t *testing.T) {
	if notices := rewardNotices(nil); notices != nil {
		t.Fatalf("expected nil notices for no drops, got %v", notices)
	}
}
