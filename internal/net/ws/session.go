package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"rush-and-ruin/server"
	"rush-and-ruin/server/internal/net/proto"
	"rush-and-ruin/server/internal/sim"
)

func (h *Handler) disconnect(playerID string) {
	if h.hub.Disconnect(playerID) {
		h.logger.Printf("session closed for %s", playerID)
	}
}

// serveSession reads client messages until the connection drops. Commands
// carry an optional sequence number; acknowledged sequences are remembered
// on the subscriber so resends collapse into duplicate acks.
func (h *Handler) serveSession(playerID string, sub subscription, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.disconnect(playerID)
			return
		}

		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", playerID, err)
			continue
		}

		normalizedSeq := uint64(0)
		if msg.Seq != nil && *msg.Seq > 0 {
			normalizedSeq = *msg.Seq
		}

		write := func(data []byte) bool {
			if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
				h.disconnect(playerID)
				return false
			}
			return true
		}

		sendDuplicateAck := func() bool {
			if normalizedSeq == 0 {
				return true
			}
			data, err := proto.EncodeCommandAck(proto.CommandAck{Seq: normalizedSeq})
			if err != nil {
				h.logger.Printf("failed to marshal ack for %s: %v", playerID, err)
				return true
			}
			return write(data)
		}

		// isDuplicate collapses resends of already-acked sequences.
		isDuplicate := func() (bool, bool) {
			if normalizedSeq == 0 {
				return false, true
			}
			if last := sub.LastCommandSeq(); last > 0 && normalizedSeq <= last {
				return true, sendDuplicateAck()
			}
			return false, true
		}

		// settle acks or rejects the command and reports false once the
		// connection is gone.
		settle := func(cmd sim.Command, ok bool, reason string) bool {
			if normalizedSeq == 0 {
				return true
			}
			if ok {
				data, err := proto.EncodeCommandAck(proto.CommandAck{Seq: normalizedSeq, Tick: cmd.OriginTick})
				if err != nil {
					h.logger.Printf("failed to marshal ack for %s: %v", playerID, err)
					return true
				}
				if !write(data) {
					return false
				}
				sub.StoreLastCommandSeq(normalizedSeq)
				return true
			}
			data, err := proto.EncodeCommandReject(proto.CommandReject{
				Seq:    normalizedSeq,
				Reason: reason,
				Retry:  reason == server.CommandRejectQueueLimit,
			})
			if err != nil {
				h.logger.Printf("failed to marshal reject for %s: %v", playerID, err)
				return true
			}
			return write(data)
		}

		switch msg.Type {
		case proto.TypeInput:
			dup, alive := isDuplicate()
			if !alive {
				return
			}
			if dup {
				continue
			}
			cmd, ok, reason := h.hub.UpdateIntent(playerID, msg.DX, msg.DY)
			if !settle(cmd, ok, reason) {
				return
			}
			if !ok && reason == server.CommandRejectUnknownActor {
				h.logger.Printf("input ignored for unknown player %s", playerID)
			}
		case proto.TypeFace:
			dup, alive := isDuplicate()
			if !alive {
				return
			}
			if dup {
				continue
			}
			cmd, ok, reason := h.hub.UpdateFacing(playerID, msg.Facing)
			if !settle(cmd, ok, reason) {
				return
			}
			if !ok && reason == server.CommandRejectUnknownActor {
				h.logger.Printf("facing ignored for unknown player %s", playerID)
			}
		case proto.TypeAction:
			if msg.Action == "" {
				continue
			}
			dup, alive := isDuplicate()
			if !alive {
				return
			}
			if dup {
				continue
			}
			cmd, ok, reason := h.hub.TriggerAction(playerID, msg.Action, msg.AimX, msg.AimY)
			if !settle(cmd, ok, reason) {
				return
			}
			if !ok {
				if reason == server.CommandRejectInvalidAction {
					h.logger.Printf("unknown action %q from %s", msg.Action, playerID)
				} else if reason == server.CommandRejectUnknownActor {
					h.logger.Printf("action ignored for unknown player %s", playerID)
				}
			}
		case proto.TypeHeartbeat:
			now := time.Now()
			rtt, ok := h.hub.UpdateHeartbeat(playerID, now, msg.SentAt)
			if !ok {
				continue
			}
			data, err := proto.EncodeHeartbeat(proto.Heartbeat{
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			})
			if err != nil {
				h.logger.Printf("failed to marshal heartbeat ack for %s: %v", playerID, err)
				continue
			}
			if !write(data) {
				return
			}
		default:
			h.logger.Printf("unhandled message type %q from %s", msg.Type, playerID)
		}
	}
}
