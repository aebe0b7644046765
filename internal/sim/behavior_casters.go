package sim

import "context"

// Pirates and mages share the caster loop and differ only in what the cast
// releases: a traveling tide vortex or a delayed storm strike. The cast
// lock is short; the attack objects carry the slow parts themselves.
func (w *World) runPirate(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	w.runCaster(ctx, e, tick, dt, AttackVortex)
}

func (w *World) runMage(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	w.runCaster(ctx, e, tick, dt, AttackStorm)
}

func (w *World) runCaster(ctx context.Context, e *enemyState, tick uint64, dt float64, kind AttackKind) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateCast:
		if e.locked(tick) {
			return
		}
		if !e.bb.committed {
			e.bb.committed = true
			w.queueEnemyAttack(ctx, e, kind, e.bb.lockedTarget, e.bb.lockedFacing, tick)
			e.startCooldown(abilitySlotPrimary, tick, t.cooldownTicks())
		}
		w.transition(ctx, e, stateHold, tick)
	case stateSeek, stateKite, stateHold:
		d := w.playerDistance(e)
		if e.abilityReady(abilitySlotPrimary, tick) && d <= t.AttackRange {
			w.transition(ctx, e, stateCast, tick)
			e.beginLock(tick, t.lockTicks(), w.player.pos)
			return
		}
		switch {
		case d < t.HoldMin:
			w.transition(ctx, e, stateKite, tick)
			w.moveEnemyAway(e, w.player.pos, t.MoveSpeed, dt)
		case d > t.HoldMax:
			w.transition(ctx, e, stateSeek, tick)
			w.moveEnemyToward(e, w.player.pos, t.MoveSpeed, dt)
		default:
			w.transition(ctx, e, stateHold, tick)
			e.facing = e.facingToward(w.player.pos)
		}
	default:
		w.transition(ctx, e, stateSeek, tick)
	}
}
