package sim

import "rush-and-ruin/server/internal/geom"

// attackIntent is a request to spawn an attack object, emitted by enemy
// behaviors and player actions during a step. Intents collected in step N
// become live attacks at the end of N and first update in step N+1.
type attackIntent struct {
	kind    AttackKind
	team    attackTeam
	owner   Handle
	ownerID string

	origin geom.Vec
	target geom.Vec
	facing float64

	// damage is the owner's base damage before the catalog scale and any
	// player modifier is applied.
	damage float64

	// startOffset pushes capsule-shaped projectiles clear of the body that
	// fired them.
	startOffset float64
}
