package sim

import (
	"fmt"
	"math"
	"time"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/logging"
)

const vortexMinRadius = 8.0

// buildAttack turns an intent into a live attack object using the catalog
// entry for its kind. Geometry and timing come from the catalog; position,
// aim, and base damage come from the intent.
func (w *World) buildAttack(intent attackIntent, tick uint64) *attackState {
	entry, ok := w.catalog.Lookup(intent.kind.CatalogID())
	if !ok {
		// mustAttackCatalog checked coverage at startup, so this branch
		// only fires if the closed set grew without a catalog entry.
		w.publishSystem(tick, logging.SeverityError,
			fmt.Sprintf("no catalog entry for attack kind %q", intent.kind))
		return nil
	}

	w.attackSeq++
	assetKey, degraded := w.catalog.Visual(entry.ID)
	a := &attackState{
		id:          w.attackSeq,
		wireID:      fmt.Sprintf("attack-%s-%d", intent.kind, w.attackSeq),
		kind:        intent.kind,
		team:        intent.team,
		owner:       intent.owner,
		ownerID:     intent.ownerID,
		origin:      intent.origin,
		phase:       phaseActive,
		spawnedTick: tick,
		damage:      intent.damage * entry.DamageScale,
		assetKey:    assetKey,
		degraded:    degraded,
		active:      true,
	}
	if degraded {
		w.warnDegradedAsset(tick, intent.kind)
	}
	if entry.LifetimeMs > 0 {
		a.expiresAt = tick + msToTicks(entry.LifetimeMs)
	}

	halfAngle := entry.HalfAngleDeg * math.Pi / 180

	switch intent.kind {
	case AttackClaw:
		a.shape = geom.Shape{Kind: geom.ShapeCircle, Center: intent.target, Radius: entry.Radius}

	case AttackSlam:
		a.shape = geom.Shape{Kind: geom.ShapeCircle, Center: intent.target, Radius: entry.Radius}
		a.phase = phaseWindup
		a.phaseEndsAt = tick + durationToTicks(slamArmDelay)

	case AttackCleave, AttackSlash:
		a.shape = geom.Shape{
			Kind:      geom.ShapeCone,
			Center:    intent.origin,
			Facing:    intent.facing,
			Radius:    entry.Radius,
			HalfAngle: halfAngle,
		}

	case AttackShieldWall:
		a.shape = geom.Shape{
			Kind:      geom.ShapeSector,
			Center:    intent.origin,
			Facing:    intent.facing,
			Radius:    entry.Radius,
			HalfAngle: halfAngle,
		}

	case AttackArrow, AttackBolt:
		dir := geom.FromAngle(intent.facing)
		limit := geom.ClampRayRange(intent.origin, dir, entry.Range, w.obstacles)
		a.travelLimit = limit
		a.velocity = dir.Scale(entry.Speed)
		a.phase = phaseTravel
		a.shape = geom.Shape{
			Kind:        geom.ShapeCapsule,
			Center:      intent.origin,
			Facing:      intent.facing,
			HalfWidth:   entry.Width / 2,
			StartOffset: intent.startOffset,
			Length:      0,
		}
		if entry.Speed > 0 {
			flight := time.Duration(limit / entry.Speed * float64(time.Second))
			a.expiresAt = tick + durationToTicks(flight) + 2
		}

	case AttackVortex:
		dir := intent.target.Sub(intent.origin)
		if dir.IsZero() {
			dir = geom.FromAngle(intent.facing)
		}
		dir = dir.Normalize()
		dist := geom.Dist(intent.origin, intent.target)
		a.travelLimit = geom.Clamp(dist, 40, entry.Range)
		a.velocity = dir.Scale(entry.Speed)
		a.maxRadius = entry.Radius
		a.phase = phaseTravel
		a.shape = geom.Shape{Kind: geom.ShapeCircle, Center: intent.origin, Radius: vortexMinRadius}

	case AttackStorm:
		a.shape = geom.Shape{Kind: geom.ShapeCircle, Center: intent.target, Radius: entry.Radius}
		a.phase = phaseWindup
		a.phaseEndsAt = tick + durationToTicks(stormWarningDuration)

	case AttackBlast, AttackNova:
		a.maxRadius = entry.Radius
		a.shape = geom.Shape{Kind: geom.ShapeCircle, Center: intent.origin, Radius: vortexMinRadius}

	default:
		w.publishSystem(tick, logging.SeverityError,
			fmt.Sprintf("buildAttack: unhandled attack kind %q", intent.kind))
		return nil
	}

	return a
}
