package waves

import (
	"context"

	"rush-and-ruin/server/logging"
)

const (
	// EventStarted is emitted when the wave director fields a new wave.
	EventStarted logging.EventType = "waves.started"
	// EventCleared is emitted when the last enemy of a wave dies.
	EventCleared logging.EventType = "waves.cleared"
)

// StartedPayload summarizes the wave the director just spent its budget on.
type StartedPayload struct {
	Wave    int `json:"wave"`
	Budget  int `json:"budget"`
	Spent   int `json:"spent"`
	Enemies int `json:"enemies"`
	Threat  int `json:"threat"`
}

// ClearedPayload records how long the wave survived.
type ClearedPayload struct {
	Wave          int    `json:"wave"`
	DurationTicks uint64 `json:"durationTicks"`
}

// Started publishes a wave start event.
func Started(ctx context.Context, pub logging.Publisher, tick uint64, payload StartedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStarted,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWaves,
		Payload:  payload,
	})
}

// Cleared publishes a wave cleared event.
func Cleared(ctx context.Context, pub logging.Publisher, tick uint64, payload ClearedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCleared,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWaves,
		Payload:  payload,
	})
}
