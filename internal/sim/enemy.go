package sim

import (
	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/stats"
)

type behaviorState uint8

const (
	stateSeek behaviorState = iota
	stateAttack
	stateKite
	stateHold
	stateCharge
	stateCast
	stateRush
	stateExplode
)

var behaviorStateNames = [...]string{
	stateSeek:    "seek",
	stateAttack:  "attack",
	stateKite:    "kite",
	stateHold:    "hold",
	stateCharge:  "charge",
	stateCast:    "cast",
	stateRush:    "rush",
	stateExplode: "explode",
}

func (s behaviorState) String() string {
	if int(s) < len(behaviorStateNames) {
		return behaviorStateNames[s]
	}
	return "unknown"
}

const (
	abilitySlotPrimary = iota
	abilitySlotShield
	abilitySlotCount
)

// blackboard holds per-enemy scratch state owned by the behavior functions.
// Nothing outside behaviors.go and its per-archetype files should write it.
type blackboard struct {
	lockUntil    uint64
	lockedTarget geom.Vec
	lockedFacing float64
	// committed marks that the lock's attack intent was already emitted,
	// for archetypes that fire on lock expiry (gnoll, viking, archer).
	committed        bool
	nextAbilityReady [abilitySlotCount]uint64
	stateEntered     uint64
}

type enemyState struct {
	handle    Handle
	id        string
	archetype stats.Archetype
	def       stats.Definition

	pos    geom.Vec
	facing float64
	health float64

	state behaviorState
	bb    blackboard

	// cost and threat are computed once at spawn from the archetype
	// definition and never recomputed.
	cost   int
	threat int

	// killedBy names the attack behind the killing blow, for the defeat
	// event. Spirits set it themselves when they detonate.
	killedBy string

	alive bool
}

func (e *enemyState) dead() bool {
	return !e.alive || e.health <= 0
}

// enterState records a transition and resets the lock scratch fields.
func (e *enemyState) enterState(s behaviorState, tick uint64) {
	e.state = s
	e.bb.stateEntered = tick
	e.bb.committed = false
}

func (e *enemyState) locked(tick uint64) bool {
	return tick < e.bb.lockUntil
}

func (e *enemyState) abilityReady(slot int, tick uint64) bool {
	return tick >= e.bb.nextAbilityReady[slot]
}

// facingToward returns the angle from the enemy to target, keeping the
// current facing when the two coincide.
func (e *enemyState) facingToward(target geom.Vec) float64 {
	d := target.Sub(e.pos)
	if d.IsZero() {
		return e.facing
	}
	return geom.AngleOf(d)
}

func (e *enemyState) startCooldown(slot int, tick, ticks uint64) {
	e.bb.nextAbilityReady[slot] = tick + ticks
}
