package sim

import (
	"context"
	"math"

	"rush-and-ruin/server/logging"
	combatlog "rush-and-ruin/server/logging/combat"
)

// resolveHits applies every live attack against the opposing side, in three
// ordered phases: shields intercept player projectiles, surviving player
// attacks damage enemies, then enemy attacks damage the player. Modifiers
// are passed in explicitly so the scales in force for this step are visible
// at the call site.
func (w *World) resolveHits(ctx context.Context, tick uint64, mods Modifiers) {
	w.interceptProjectiles(ctx, tick)
	w.resolvePlayerAttacks(ctx, tick, mods)
	w.resolveEnemyAttacks(ctx, tick, mods)
}

// interceptProjectiles lets active shield walls swallow player projectiles
// before any damage test runs. A blocked projectile is spent in the same
// step and deals nothing.
func (w *World) interceptProjectiles(ctx context.Context, tick uint64) {
	for _, proj := range w.attacks {
		if !proj.active || proj.team != teamPlayer || !proj.kind.projectile() {
			continue
		}
		head := proj.head()
		for _, shield := range w.attacks {
			if !shield.active || shield.kind != AttackShieldWall {
				continue
			}
			if shield.blocks(head) {
				proj.deactivate()
				combatlog.Blocked(ctx, w.publisher, tick,
					logging.EntityRef{ID: shield.ownerID, Kind: logging.EntityKindEnemy},
					logging.EntityRef{ID: proj.wireID, Kind: logging.EntityKindAttack},
					combatlog.BlockedPayload{Attack: proj.kind.String()})
				break
			}
		}
	}
}

func (w *World) resolvePlayerAttacks(ctx context.Context, tick uint64, mods Modifiers) {
	for _, a := range w.attacks {
		if a.team != teamPlayer || !a.damageOpen() {
			continue
		}
		if !finiteAttack(a) {
			w.discardDegenerate(a, tick)
			continue
		}
		for i := 0; i < w.enemies.len(); i++ {
			e := w.enemies.at(i)
			if e.dead() || !a.hits(e.pos) {
				continue
			}
			if !a.markHit(e.handle) {
				continue
			}
			dmg := a.damage * mods.DamageScale
			e.health -= dmg
			w.counters.AddHitsApplied(1)
			combatlog.Damage(ctx, w.publisher, tick,
				logging.EntityRef{ID: w.player.id, Kind: logging.EntityKindPlayer},
				w.enemyRef(e),
				combatlog.DamagePayload{Attack: a.kind.String(), Amount: dmg, TargetHealth: math.Max(0, e.health)})
			if e.health <= 0 && e.killedBy == "" {
				e.killedBy = a.kind.String()
			}
			if a.kind.projectile() {
				a.deactivate()
				break
			}
		}
	}
}

func (w *World) resolveEnemyAttacks(ctx context.Context, tick uint64, mods Modifiers) {
	p := w.player
	if p == nil || !p.alive {
		return
	}
	for _, a := range w.attacks {
		if a.team != teamEnemy || !a.damageOpen() {
			continue
		}
		if !finiteAttack(a) {
			w.discardDegenerate(a, tick)
			continue
		}
		if !a.hits(p.pos) {
			continue
		}
		if p.invulnerable(tick) {
			combatlog.HitSuppressed(ctx, w.publisher, tick,
				logging.EntityRef{ID: p.id, Kind: logging.EntityKindPlayer},
				combatlog.SuppressedPayload{Attack: a.kind.String()})
			if a.kind.projectile() {
				a.deactivate()
			}
			continue
		}
		dmg := a.damage * mods.IncomingScale
		p.health -= dmg
		p.invulnUntil = tick + scaledInvulnTicks(mods)
		w.counters.AddHitsApplied(1)
		combatlog.Damage(ctx, w.publisher, tick,
			logging.EntityRef{ID: a.ownerID, Kind: logging.EntityKindEnemy},
			logging.EntityRef{ID: p.id, Kind: logging.EntityKindPlayer},
			combatlog.DamagePayload{Attack: a.kind.String(), Amount: dmg, TargetHealth: math.Max(0, p.health)})
		if a.kind.projectile() {
			a.deactivate()
		}
		if p.health <= 0 {
			p.health = 0
			p.alive = false
			combatlog.Defeat(ctx, w.publisher, tick,
				logging.EntityRef{ID: p.id, Kind: logging.EntityKindPlayer},
				combatlog.DefeatPayload{Attack: a.kind.String()})
			return
		}
	}
}

// scaledInvulnTicks stretches or shrinks the default window by the player's
// InvulnScale. The window never drops below one tick while the scale is
// positive.
func scaledInvulnTicks(mods Modifiers) uint64 {
	scale := mods.InvulnScale
	if scale <= 0 {
		return 0
	}
	ticks := math.Ceil(invulnWindow.Seconds() * scale * TickRate)
	if ticks < 1 {
		ticks = 1
	}
	return uint64(ticks)
}

func finiteAttack(a *attackState) bool {
	return finite(a.shape.Center.X) && finite(a.shape.Center.Y) && finite(a.damage)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// discardDegenerate drops an attack whose geometry or damage went
// non-finite, which would otherwise poison every later containment test.
func (w *World) discardDegenerate(a *attackState, tick uint64) {
	if a.deactivate() {
		w.publishSystem(tick, logging.SeverityError, "discarded degenerate attack "+a.wireID)
	}
}

// hasActiveShield reports whether the enemy behind h currently has a live
// shield wall up.
func (w *World) hasActiveShield(h Handle) bool {
	for _, a := range w.attacks {
		if a.active && a.kind == AttackShieldWall && a.owner == h {
			return true
		}
	}
	return false
}
