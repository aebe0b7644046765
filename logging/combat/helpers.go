package combat

import (
	"context"

	"rush-and-ruin/server/logging"
)

const (
	// EventDamage is emitted when an attack deals damage to an actor.
	EventDamage logging.EventType = "combat.damage"
	// EventDefeat is emitted when an enemy's health reaches zero.
	EventDefeat logging.EventType = "combat.defeat"
	// EventBlocked is emitted when a shield destroys a projectile.
	EventBlocked logging.EventType = "combat.blocked"
	// EventHitSuppressed is emitted when an invulnerability window swallows a
	// hit that would otherwise have landed.
	EventHitSuppressed logging.EventType = "combat.hit_suppressed"
)

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	Attack       string  `json:"attack"`
	Amount       float64 `json:"amount"`
	TargetHealth float64 `json:"targetHealth"`
}

// DefeatPayload describes the killing blow.
type DefeatPayload struct {
	Attack  string  `json:"attack,omitempty"`
	XPValue float64 `json:"xpValue"`
}

// BlockedPayload names the projectile a shield intercepted.
type BlockedPayload struct {
	Attack string `json:"attack"`
}

// SuppressedPayload records a hit swallowed by an invulnerability window.
type SuppressedPayload struct {
	Attack string `json:"attack"`
}

// Damage publishes a combat damage event.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Defeat publishes a combat defeat event.
func Defeat(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DefeatPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefeat,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Blocked publishes a shield interception event. The actor is the shield
// owner; the target is the destroyed projectile.
func Blocked(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload BlockedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBlocked,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// HitSuppressed publishes a debug event for a hit absorbed by an
// invulnerability window.
func HitSuppressed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SuppressedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHitSuppressed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
