package network

import (
	"context"

	"rush-and-ruin/server/logging"
)

const (
	// EventJoin is emitted when a client joins the world.
	EventJoin logging.EventType = "network.join"
	// EventDisconnect is emitted when a client's session ends.
	EventDisconnect logging.EventType = "network.disconnect"
)

// DisconnectPayload names why the session ended.
type DisconnectPayload struct {
	Reason string `json:"reason,omitempty"`
}

// Join publishes a client join event.
func Join(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventJoin,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
	})
}

// Disconnect publishes a client disconnect event.
func Disconnect(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DisconnectPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDisconnect,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
	})
}
