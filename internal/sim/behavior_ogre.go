package sim

import "context"

// runOgre commits its slam the instant the lock starts: the strike zone is
// fixed at the player's position right then, and the slam object carries
// its own arm delay so clients can telegraph the hit. The ogre stays
// rooted for the whole lock either way.
func (w *World) runOgre(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateSeek:
		trigger := w.player.bodyRadius() + w.slamRadius + t.TriggerBuffer
		if e.abilityReady(abilitySlotPrimary, tick) && w.playerDistance(e) <= trigger {
			w.transition(ctx, e, stateAttack, tick)
			e.beginLock(tick, t.lockTicks(), w.player.pos)
			w.queueEnemyAttack(ctx, e, AttackSlam, e.bb.lockedTarget, e.bb.lockedFacing, tick)
			e.startCooldown(abilitySlotPrimary, tick, t.cooldownTicks())
			return
		}
		w.moveEnemyToward(e, w.player.pos, t.MoveSpeed, dt)
	case stateAttack:
		if e.locked(tick) {
			return
		}
		w.transition(ctx, e, stateSeek, tick)
	default:
		w.transition(ctx, e, stateSeek, tick)
	}
}
