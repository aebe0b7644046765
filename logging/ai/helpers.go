package ai

import (
	"context"

	"rush-and-ruin/server/logging"
)

const (
	// EventTransition is emitted when an enemy changes behavior state.
	EventTransition logging.EventType = "ai.transition"
	// EventAttackCommitted is emitted when a behavior emits an attack intent.
	EventAttackCommitted logging.EventType = "ai.attack_committed"
)

// TransitionPayload names the states on either side of a behavior change.
type TransitionPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AttackCommittedPayload records the intent an enemy queued.
type AttackCommittedPayload struct {
	Kind    string  `json:"kind"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
}

// Transition publishes a behavior state change at debug severity.
func Transition(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload TransitionPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTransition,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAI,
		Payload:  payload,
	})
}

// AttackCommitted publishes a queued attack intent at debug severity.
func AttackCommitted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AttackCommittedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAttackCommitted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryAI,
		Payload:  payload,
	})
}
