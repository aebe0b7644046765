package sim

import (
	"fmt"

	"rush-and-ruin/server/catalog"
	"rush-and-ruin/server/internal/geom"
)

// AttackKind is the closed set of attack objects the simulation can spawn.
// Every kind maps to one catalog entry; mustAttackCatalog verifies the
// mapping at startup.
type AttackKind uint8

const (
	AttackClaw AttackKind = iota
	AttackSlam
	AttackCleave
	AttackShieldWall
	AttackArrow
	AttackVortex
	AttackStorm
	AttackBlast
	AttackSlash
	AttackBolt
	AttackNova
	attackKindCount
)

var attackCatalogIDs = [attackKindCount]string{
	AttackClaw:       "claw",
	AttackSlam:       "slam",
	AttackCleave:     "cleave",
	AttackShieldWall: "shield_wall",
	AttackArrow:      "power_shot",
	AttackVortex:     "tide_vortex",
	AttackStorm:      "storm_call",
	AttackBlast:      "detonate",
	AttackSlash:      "slash",
	AttackBolt:       "bolt",
	AttackNova:       "nova",
}

// CatalogID returns the attack definition id for k, doubling as its wire
// name.
func (k AttackKind) CatalogID() string {
	if k < attackKindCount {
		return attackCatalogIDs[k]
	}
	return "unknown"
}

func (k AttackKind) String() string { return k.CatalogID() }

// projectile kinds are single-use: they deactivate on their first hit.
func (k AttackKind) projectile() bool {
	return k == AttackArrow || k == AttackBolt
}

type attackTeam uint8

const (
	teamEnemy attackTeam = iota
	teamPlayer
)

func (t attackTeam) String() string {
	if t == teamPlayer {
		return "player"
	}
	return "enemy"
}

type attackPhase uint8

const (
	phaseActive attackPhase = iota
	phaseWindup
	phaseTravel
	phaseStrike
	phaseLinger
)

var attackPhaseNames = [...]string{
	phaseActive: "active",
	phaseWindup: "windup",
	phaseTravel: "travel",
	phaseStrike: "strike",
	phaseLinger: "linger",
}

func (p attackPhase) String() string {
	if int(p) < len(attackPhaseNames) {
		return attackPhaseNames[p]
	}
	return "unknown"
}

// attackState is one live attack object. All fields are owned by the world
// goroutine; nothing here is safe for concurrent use.
type attackState struct {
	id      uint64
	wireID  string
	kind    AttackKind
	team    attackTeam
	owner   Handle
	ownerID string

	shape     geom.Shape
	maxRadius float64

	velocity    geom.Vec
	origin      geom.Vec
	traveled    float64
	travelLimit float64

	phase       attackPhase
	phaseEndsAt uint64
	expiresAt   uint64
	spawnedTick uint64

	damage   float64
	assetKey string
	degraded bool

	// hitActors records which enemies a player attack already damaged, so
	// one swing or nova instance lands at most once per target.
	hitActors map[Handle]struct{}

	stopped bool
	pulse   bool
	active  bool
}

// markHit records a target for a player attack instance. It reports false
// when the target was already hit by this instance.
func (a *attackState) markHit(h Handle) bool {
	if a.hitActors == nil {
		a.hitActors = make(map[Handle]struct{}, 4)
	}
	if _, seen := a.hitActors[h]; seen {
		return false
	}
	a.hitActors[h] = struct{}{}
	return true
}

// deactivate flips the attack inactive. Repeat calls are no-ops so hit
// resolution and expiry can both try without double-processing.
func (a *attackState) deactivate() bool {
	if !a.active {
		return false
	}
	a.active = false
	return true
}

// damageOpen reports whether the attack can currently deal damage. Shields
// never damage; slams damage only once armed; storms only during the
// strike flash.
func (a *attackState) damageOpen() bool {
	if !a.active {
		return false
	}
	switch a.kind {
	case AttackShieldWall:
		return false
	case AttackSlam:
		return a.phase == phaseActive
	case AttackStorm:
		return a.phase == phaseStrike
	default:
		return a.phase != phaseWindup
	}
}

// hits runs the shape containment test. Inactive attacks and closed damage
// windows hit nothing.
func (a *attackState) hits(p geom.Vec) bool {
	if !a.damageOpen() {
		return false
	}
	return a.shape.ContainsPoint(p)
}

/// blocks is the shield variant of hits: geometry only, no damage window.
func (a *attackState) blocks(p geom.Vec) bool {
	if !a.active {
		return false
	}
	return a.shape.ContainsPoint(p)
}

// head is the point the renderer should anchor the attack to. Projectiles
// report their current tip rather than the capsule origin.
func (a *attackState) head() geom.Vec {
	if a.kind.projectile() {
		dir := geom.FromAngle(a.shape.Facing)
		return a.origin.Add(dir.Scale(a.traveled))
	}
	return a.shape.Center
}

// mustAttackCatalog resolves the default attack catalog and checks every
// kind in the closed set has a definition. A missing or malformed entry is
// a packaging error worth crashing over.
func mustAttackCatalog() *catalog.Resolver {
	res := catalog.Default()
	for k := AttackKind(0); k < attackKindCount; k++ {
		if _, ok := res.Lookup(k.CatalogID()); !ok {
			panic(fmt.Sprintf("sim: attack catalog is missing %q", k.CatalogID()))
		}
	}
	return res
}

var defaultCatalog = mustAttackCatalog()
