package sim

import (
	"context"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/logging"
	ailog "rush-and-ruin/server/logging/ai"
	"rush-and-ruin/server/stats"
)

// behaviorFunc advances one enemy by one step. Behaviors may move the
// enemy, change its state, and queue attack intents, but never touch other
// enemies or live attacks directly.
type behaviorFunc func(*World, context.Context, *enemyState, uint64, float64)

// behaviorTable is the closed archetype dispatch table. A nil entry would
// mean an archetype without a behavior, which spawnInitialState rejects.
var behaviorTable = [stats.ArchetypeCount]behaviorFunc{
	stats.ArchetypeGnoll:  (*World).runGnoll,
	stats.ArchetypeOgre:   (*World).runOgre,
	stats.ArchetypeViking: (*World).runViking,
	stats.ArchetypeArcher: (*World).runArcher,
	stats.ArchetypePirate: (*World).runPirate,
	stats.ArchetypeMage:   (*World).runMage,
	stats.ArchetypeSpirit: (*World).runSpirit,
}

// spawnInitialState gives each archetype its entry state. Spirits skip
// straight to the rush.
func spawnInitialState(a stats.Archetype) behaviorState {
	if a == stats.ArchetypeSpirit {
		return stateRush
	}
	return stateSeek
}

// updateEnemies runs every live enemy's behavior. With the player dead the
// fight is over and enemies stand down where they are.
func (w *World) updateEnemies(ctx context.Context, tick uint64, dt float64) {
	if w.player == nil || !w.player.alive {
		return
	}
	w.enemies.forEach(func(e *enemyState) {
		if e.dead() {
			return
		}
		if fn := behaviorTable[e.archetype]; fn != nil {
			fn(w, ctx, e, tick, dt)
		}
	})
}

func (w *World) tuning(a stats.Archetype) Tuning {
	return w.tunings.forArchetype(a)
}

// transition moves an enemy to a new behavior state, logging the change.
// Re-entering the current state is a no-op.
func (w *World) transition(ctx context.Context, e *enemyState, to behaviorState, tick uint64) {
	if e.state == to {
		return
	}
	from := e.state
	e.enterState(to, tick)
	ailog.Transition(ctx, w.publisher, tick, w.enemyRef(e),
		ailog.TransitionPayload{From: from.String(), To: to.String()})
}

// beginLock freezes the enemy for the tuned lock window and captures the
// aim it will use when (or before) the lock resolves.
func (e *enemyState) beginLock(tick, ticks uint64, target geom.Vec) {
	e.bb.lockUntil = tick + ticks
	e.bb.lockedTarget = target
	e.bb.lockedFacing = geom.AngleOf(target.Sub(e.pos))
	e.facing = e.bb.lockedFacing
}

// queueEnemyAttack appends an attack intent for e and logs the commitment.
func (w *World) queueEnemyAttack(ctx context.Context, e *enemyState, kind AttackKind, target geom.Vec, facing float64, tick uint64) {
	w.pendingIntents = append(w.pendingIntents, attackIntent{
		kind:        kind,
		team:        teamEnemy,
		owner:       e.handle,
		ownerID:     e.id,
		origin:      e.pos,
		target:      target,
		facing:      facing,
		damage:      e.def.Damage,
		startOffset: e.def.BodyRadius,
	})
	ailog.AttackCommitted(ctx, w.publisher, tick, w.enemyRef(e),
		ailog.AttackCommittedPayload{Kind: kind.String(), TargetX: target.X, TargetY: target.Y})
}

func (w *World) enemyRef(e *enemyState) logging.EntityRef {
	return logging.EntityRef{ID: e.id, Kind: logging.EntityKindEnemy}
}

func (w *World) playerDistance(e *enemyState) float64 {
	return geom.Dist(e.pos, w.player.pos)
}

// moveEnemyToward steps the enemy at speed in the direction of target,
// clamped to the arena and stopped by obstacles.
func (w *World) moveEnemyToward(e *enemyState, target geom.Vec, speed, dt float64) {
	dir := target.Sub(e.pos)
	if dir.IsZero() {
		return
	}
	dir = dir.Normalize()
	e.facing = geom.AngleOf(dir)
	w.moveEnemyBy(e, dir, speed, dt)
}

// moveEnemyAway is the kiting mirror of moveEnemyToward. Facing stays on
// the threat while the body backs off.
func (w *World) moveEnemyAway(e *enemyState, from geom.Vec, speed, dt float64) {
	dir := e.pos.Sub(from)
	if dir.IsZero() {
		dir = geom.FromAngle(e.facing + 1)
	}
	dir = dir.Normalize()
	e.facing = geom.AngleOf(geom.Vec{X: -dir.X, Y: -dir.Y})
	w.moveEnemyBy(e, dir, speed, dt)
}

func (w *World) moveEnemyBy(e *enemyState, dir geom.Vec, speed, dt float64) {
	next := e.pos.Add(dir.Scale(speed * dt))
	next = w.clampToArena(next, e.def.BodyRadius)
	for _, box := range w.obstacles {
		if geom.CircleOverlapsAABB(next, e.def.BodyRadius, box) {
			return
		}
	}
	e.pos = next
}
