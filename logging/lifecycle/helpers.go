package lifecycle

import (
	"context"

	"rush-and-ruin/server/logging"
)

const (
	// EventSpawn is emitted once per enemy entering the world.
	EventSpawn logging.EventType = "lifecycle.spawn"
	// EventReward is emitted exactly once per enemy death.
	EventReward logging.EventType = "lifecycle.reward"
	// EventDespawn is emitted when an enemy leaves the world without dying.
	EventDespawn logging.EventType = "lifecycle.despawn"
)

// SpawnPayload records the scored stat block an enemy entered play with.
type SpawnPayload struct {
	Archetype string  `json:"archetype"`
	Cost      int     `json:"cost"`
	Threat    int     `json:"threat"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// RewardPayload carries the experience value and the position the enemy died
// at.
type RewardPayload struct {
	XPValue float64 `json:"xpValue"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// DespawnPayload names the administrative reason an enemy was removed.
type DespawnPayload struct {
	Reason string `json:"reason"`
}

// Spawn publishes a lifecycle spawn event.
func Spawn(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpawnPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSpawn,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// Reward publishes the single reward event for a dead enemy.
func Reward(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RewardPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventReward,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// Despawn publishes a lifecycle despawn event.
func Despawn(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DespawnPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDespawn,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}
