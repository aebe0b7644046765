package sim

import "context"

// runArcher keeps the player inside a preferred firing band: closer than
// hold_min it kites away, farther than hold_max it closes in, inside the
// band it stands and tracks. Whenever the shot is ready and the player is
// in range it roots into a long charge with position and facing locked,
// then releases a single arrow along the locked facing.
func (w *World) runArcher(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateCharge:
		if e.locked(tick) {
			return
		}
		if !e.bb.committed {
			e.bb.committed = true
			w.queueEnemyAttack(ctx, e, AttackArrow, e.bb.lockedTarget, e.bb.lockedFacing, tick)
			e.startCooldown(abilitySlotPrimary, tick, t.cooldownTicks())
		}
		w.transition(ctx, e, stateHold, tick)
	case stateSeek, stateKite, stateHold:
		d := w.playerDistance(e)
		if e.abilityReady(abilitySlotPrimary, tick) && d <= t.AttackRange {
			w.transition(ctx, e, stateCharge, tick)
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
