package sim

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/logging"
	combatlog "rush-and-ruin/server/logging/combat"
	lifecyclelog "rush-and-ruin/server/logging/lifecycle"
	"rush-and-ruin/server/stats"
)

const testDT = 1.0 / TickRate

// eventCollector is a synchronous Publisher for tests; the world publishes
// from the stepping goroutine only, so a mutex-guarded slice is enough.
type eventCollector struct {
	mu     sync.Mutex
	events []logging.Event
}

func (c *eventCollector) Publish(_ context.Context, event logging.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *eventCollector) byType(t logging.EventType) []logging.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []logging.Event
	for _, ev := range c.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestWorld(t *testing.T) (*World, *eventCollector) {
	t.Helper()
	col := &eventCollector{}
	w := NewWorld(Config{Width: 1200, Height: 900, Seed: "test"}, "player-1", col, nil)
	return w, col
}

func (w *World) playerPos() geom.Vec { return w.player.pos }

func mustSpawn(t *testing.T, w *World, arch stats.Archetype, pos geom.Vec) Handle {
	t.Helper()
	h, err := w.SpawnEnemy(context.Background(), arch, pos)
	if err != nil {
		t.Fatalf("spawn %v: %v", arch, err)
	}
	return h
}

func enemyByHandle(t *testing.T, w *World, h Handle) *enemyState {
	t.Helper()
	e, ok := w.enemies.get(h)
	if !ok {
		t.Fatalf("handle no longer resolves")
	}
	return e
}

func TestSpawnEnemyUnknownArchetypeFails(t *testing.T) {
	w, _ := newTestWorld(t)
	if _, err := w.SpawnEnemy(context.Background(), stats.Archetype(99), geom.Vec{X: 100, Y: 100}); err == nil {
		t.Fatalf("expected spawn of unknown archetype to fail")
	}
	if w.EnemyCount() != 0 {
		t.Fatalf("failed spawn must not leave an enemy behind, got %d", w.EnemyCount())
	}
}

func TestDeadEnemyPaysExactlyOneReward(t *testing.T) {
	w, col := newTestWorld(t)
	ctx := context.Background()
	h := mustSpawn(t, w, stats.ArchetypeGnoll, geom.Vec{X: 200, Y: 200})
	e := enemyByHandle(t, w, h)
	deathPos := e.pos
	e.health = 0
	e.killedBy = "slash"

	w.Step(ctx, 1, testDT, nil)
	w.Step(ctx, 2, testDT, nil)

	rewards := w.DrainRewards()
	if len(rewards) != 1 {
		t.Fatalf("expected exactly one reward, got %d", len(rewards))
	}
	r := rewards[0]
	if r.XPValue != e.def.XPValue {
		t.Fatalf("reward xp = %v, want %v", r.XPValue, e.def.XPValue)
	}
	if r.X != deathPos.X || r.Y != deathPos.Y {
		t.Fatalf("reward at (%v,%v), want death position (%v,%v)", r.X, r.Y, deathPos.X, deathPos.Y)
	}
	if _, ok := w.enemies.get(h); ok {
		t.Fatalf("dead enemy should be released from the arena")
	}
	if got := len(col.byType(lifecyclelog.EventReward)); got != 1 {
		t.Fatalf("expected one reward event, got %d", got)
	}
	if got := len(col.byType(combatlog.EventDefeat)); got != 1 {
		t.Fatalf("expected one defeat event, got %d", got)
	}
	if w.DrainRewards() != nil {
		t.Fatalf("second drain should be empty")
	}
}

func TestNewAttacksAreNotAdvancedOnSpawnTick(t *testing.T) {
	w, _ := newTestWorld(t)
	ctx := context.Background()
	cmd := []Command{{
		ActorID: "player-1",
		Type:    CommandAction,
		Action:  &ActionCommand{Name: "bolt", AimX: w.playerPos().X + 300, AimY: w.playerPos().Y},
	}}

	w.Step(ctx, 1, testDT, cmd)
	if len(w.attacks) != 1 {
		t.Fatalf("expected one attack after action, got %d", len(w.attacks))
	}
	bolt := w.attacks[0]
	if bolt.traveled != 0 {
		t.Fatalf("attack advanced on its spawn tick: traveled=%v", bolt.traveled)
	}

	w.Step(ctx, 2, testDT, nil)
	if bolt.traveled <= 0 {
		t.Fatalf("attack should advance on the tick after spawn")
	}
}

func TestDestroyEnemyIsAdministrative(t *testing.T) {
	w, col := newTestWorld(t)
	ctx := context.Background()
	h := mustSpawn(t, w, stats.ArchetypeGnoll, geom.Vec{X: 300, Y: 300})

	if !w.DestroyEnemy(ctx, h, "test cleanup") {
		t.Fatalf("expected destroy of live enemy to succeed")
	}
	if w.DestroyEnemy(ctx, h, "again") {
		t.Fatalf("destroy with stale handle should be a no-op")
	}
	if rewards := w.DrainRewards(); rewards != nil {
		t.Fatalf("administrative destroy must not pay rewards, got %d", len(rewards))
	}
	if got := len(col.byType(lifecyclelog.EventDespawn)); got != 1 {
		t.Fatalf("expected one despawn event, got %d", got)
	}
}

func TestStepIsDeterministicForSeed(t *testing.T) {
	script := func(tick uint64) []Command {
		switch tick {
		case 3:
			return []Command{{ActorID: "player-1", Type: CommandMove, Move: &MoveCommand{DX: 1, DY: 0.5}}}
		case 9:
			return []Command{{ActorID: "player-1", Type: CommandAction, Action: &ActionCommand{Name: "bolt", AimX: 900, AimY: 450}}}
		case 20:
			return []Command{{ActorID: "player-1", Type: CommandMove, Move: &MoveCommand{DX: 0, DY: 0}}}
		case 25:
			return []Command{{ActorID: "player-1", Type: CommandAction, Action: &ActionCommand{Name: "nova"}}}
		}
		return nil
	}

	run := func() []byte {
		w := NewWorld(Config{Width: 1200, Height: 900, Seed: "pair", Obstacles: true, Waves: true}, "player-1", nil, nil)
		ctx := context.Background()
		for tick := uint64(1); tick <= 120; tick++ {
			w.Step(ctx, tick, testDT, script(tick))
		}
		blob, err := json.Marshal(w.Snapshot())
		if err != nil {
			t.Fatalf("marshal snapshot: %v", err)
		}
		return blob
	}

	first := run()
	second := run()
	if string(first) != string(second) {
		t.Fatalf("same seed and commands diverged:\n%s\n%s", first, second)
	}
}

func TestPlayerDefeatStopsEnemies(t *testing.T) {
	w, _ := newTestWorld(t)
	ctx := context.Background()
	h := mustSpawn(t, w, stats.ArchetypeGnoll, geom.Vec{X: 900, Y: 450})
	w.player.health = 0
	w.player.alive = false

	before, _ := w.Enemy(h)
	for tick := uint64(1); tick <= 10; tick++ {
		w.Step(ctx, tick, testDT, nil)
	}
	after, ok := w.Enemy(h)
	if !ok {
		t.Fatalf("enemy should survive the player's defeat")
	}
	if before.X != after.X || before.Y != after.Y {
		t.Fatalf("enemies should stand down once the player is dead")
	}
}
