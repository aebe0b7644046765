package sim

import "context"

// runSpirit rushes the player at boosted speed and, once close enough,
// roots in place while its fuse burns down. The detonation spends the
// spirit itself: it drops to zero health in the same step the blast is
// queued, and the normal death pass pays out its reward.
func (w *World) runSpirit(ctx context.Context, e *enemyState, tick uint64, dt float64) {
	t := w.tuning(e.archetype)
	switch e.state {
	case stateRush:
		if w.playerDistance(e) <= t.FuseRange {
			w.transition(ctx, e, stateExplode, tick)
			e.beginLock(tick, t.lockTicks(), w.player.pos)
			return
		}
		w.moveEnemyToward(e, w.player.pos, t.MoveSpeed*t.RushMultiplier, dt)
	case stateExplode:
		if e.locked(tick) {
			return
		}
		if !e.bb.committed {
			e.bb.committed = true
			w.queueEnemyAttack(ctx, e, AttackBlast, e.pos, e.facing, tick)
			e.health = 0
			e.killedBy = AttackBlast.String()
		}
	default:
		w.transition(ctx, e, stateRush, tick)
	}
}
