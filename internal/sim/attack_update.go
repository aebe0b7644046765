package sim

import (
	"math"

	"rush-and-ruin/server/internal/geom"
)

// updateAttack advances one pre-existing attack by a tick. Attacks spawned
// during the current step are inserted after this pass and get their first
// update next step.
func (w *World) updateAttack(a *attackState, tick uint64, dt float64) {
	if !a.active {
		return
	}
	if a.expiresAt > 0 && tick >= a.expiresAt {
		a.deactivate()
		return
	}

	switch a.kind {
	case AttackSlam:
		if a.phase == phaseWindup && tick >= a.phaseEndsAt {
			a.phase = phaseActive
		}

	case AttackStorm:
		switch a.phase {
		case phaseWindup:
			if tick >= a.phaseEndsAt {
				a.phase = phaseStrike
				a.phaseEndsAt = tick + durationToTicks(stormStrikeDuration)
			}
		case phaseStrike:
			if tick >= a.phaseEndsAt {
				a.phase = phaseLinger
			}
		}

	case AttackArrow, AttackBolt:
		a.traveled += a.velocity.Length() * dt
		if a.traveled >= a.travelLimit {
			a.traveled = a.travelLimit
			a.shape.Length = math.Max(0, a.traveled-a.shape.StartOffset)
			a.deactivate()
			return
		}
		a.shape.Length = math.Max(0, a.traveled-a.shape.StartOffset)

	case AttackVortex:
		w.updateVortex(a, tick, dt)

	case AttackShieldWall:
		owner, ok := w.enemies.get(a.owner)
		if !ok || owner.dead() {
			a.deactivate()
			return
		}
		a.shape.Center = owner.pos
		a.shape.Facing = owner.facing
		if a.expiresAt > 0 && tick+durationToTicks(shieldPulseLead) >= a.expiresAt {
			a.pulse = true
		}

	case AttackBlast, AttackNova:
		a.shape.Radius = expandedRadius(a, tick)
	}
}

// updateVortex moves the vortex along its path, growing the radius in
// proportion to distance covered. Once the planned travel is done, or the
// vortex is stopped early, the radius freezes and the vortex lingers in
// place until it expires.
func (w *World) updateVortex(a *attackState, tick uint64, dt float64) {
	if a.phase == phaseTravel && !a.stopped {
		a.traveled += a.velocity.Length() * dt
		if a.traveled >= a.travelLimit {
			a.traveled = a.travelLimit
			a.phase = phaseLinger
		}
		dir := a.velocity.Normalize()
		next := a.origin.Add(dir.Scale(a.traveled))
		if !w.inBounds(next) {
			a.stopAtCurrentPosition()
		} else {
			a.shape.Center = next
			if a.travelLimit > 0 {
				frac := geom.Clamp(a.traveled/a.travelLimit, 0, 1)
				a.shape.Radius = math.Max(vortexMinRadius, a.maxRadius*frac)
			}
		}
	}
	if a.expiresAt > 0 && tick+durationToTicks(vortexFadeDuration) >= a.expiresAt {
		a.pulse = true
	}
}

// stopAtCurrentPosition halts a traveling vortex where it stands. The
// radius stops growing and the linger timer keeps running.
func (a *attackState) stopAtCurrentPosition() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.velocity = geom.Vec{}
	a.phase = phaseLinger
}

func expandedRadius(a *attackState, tick uint64) float64 {
	if a.expiresAt <= a.spawnedTick {
		return a.maxRadius
	}
	frac := float64(tick-a.spawnedTick) / float64(a.expiresAt-a.spawnedTick)
	return math.Max(vortexMinRadius, a.maxRadius*geom.Clamp(frac, 0, 1))
}
