package sim

import "context"

// runGnoll is the basic melee loop: close the distance, freeze briefly,
// then claw the spot the player stood on when the freeze began.
func (w *World) runGnoll(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateSeek:
		if e.abilityReady(abilitySlotPrimary, tick) && w.playerDistance(e) <= t.TriggerRange {
			w.transition(ctx, e, stateAttack, tick)
			e.beginLock(tick, t.lockTicks(), w.player.pos)
			return
		}
		w.moveEnemyToward(e, w.player.pos, t.MoveSpeed, dt)
	case stateAttack:
		if e.locked(tick) {
			return
		}
		if !e.bb.committed {
			e.bb.committed = true
			w.queueEnemyAttack(ctx, e, AttackClaw, e.bb.lockedTarget, e.bb.lockedFacing, tick)
			e.startCooldown(abilitySlotPrimary, tick, t.cooldownTicks())
		}
		w.transition(ctx, e, stateSeek, tick)
	default:
		w.transition(ctx, e, stateSeek, tick)
	}
}
