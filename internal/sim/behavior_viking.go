package sim

import "context"

// runViking advances like a gnoll but with two tools: a forward shield
// wall raised while the player is still far away, and a cleave sweep once
// in reach. Only one shield can be up at a time; a live shield is never
// replaced, it has to expire or drop with its owner first.
func (w *World) runViking(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateSeek:
		d := w.playerDistance(e)
		if d >= t.ShieldRange &&
			e.abilityReady(abilitySlotShield, tick) &&
			!w.hasActiveShield(e.handle) {
			facing := e.facingToward(w.player.pos)
			w.queueEnemyAttack(ctx, e, AttackShieldWall, w.player.pos, facing, tick)
			e.startCooldown(abilitySlotShield, tick, msToTicks(t.ShieldCooldownMs))
		}
		if e.abilityReady(abilitySlotPrimary, tick) && d <= t.TriggerRange {
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
			w.queueEnemyAttack(ctx, e, AttackCleave, e.bb.lockedTarget, e.bb.lockedFacing, tick)
			e.startCooldown(abilitySlotPrimary, tick, t.cooldownTicks())
		}
		w.transition(ctx, e, stateSeek, tick)
	default:
		w.transition(ctx, e, stateSeek, tick)
	}
}
