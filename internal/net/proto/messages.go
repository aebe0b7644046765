package proto

import (
	"encoding/json"
	"fmt"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/internal/sim"
)

// Version tracks the wire-protocol revision expected by clients.
const Version = 1

// Message type identifiers. Heartbeats share one identifier in both
// directions.
const (
	TypeInput         = "input"
	TypeFace          = "face"
	TypeAction        = "action"
	TypeHeartbeat     = "heartbeat"
	TypeState         = "state"
	TypeCommandAck    = "commandAck"
	TypeCommandReject = "commandReject"
)

// ClientMessage captures an inbound websocket message from the client.
type ClientMessage struct {
	Ver    int     `json:"ver,omitempty"`
	Type   string  `json:"type"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Facing float64 `json:"facing"`
	Action string  `json:"action"`
	AimX   float64 `json:"aimX"`
	AimY   float64 `json:"aimY"`
	SentAt int64   `json:"sentAt"`
	Seq    *uint64 `json:"seq,omitempty"`
}

// DecodeClientMessage converts raw websocket payloads into a structured
// message, rejecting protocol versions this server does not speak.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// ClientCommand maps a client message onto the simulation command it
// carries. Heartbeats are session bookkeeping, not simulation input, so
// they report ok=false like any other non-command message.
func ClientCommand(msg ClientMessage) (sim.Command, bool) {
	switch msg.Type {
	case TypeInput:
		return sim.Command{
			Type: sim.CommandMove,
			Move: &sim.MoveCommand{DX: msg.DX, DY: msg.DY},
		}, true
	case TypeFace:
		return sim.Command{
			Type: sim.CommandFace,
			Face: &sim.FaceCommand{Angle: msg.Facing},
		}, true
	case TypeAction:
		if msg.Action == "" {
			return sim.Command{}, false
		}
		return sim.Command{
			Type: sim.CommandAction,
			Action: &sim.ActionCommand{
				Name: msg.Action,
				AimX: msg.AimX,
				AimY: msg.AimY,
			},
		}, true
	default:
		return sim.Command{}, false
	}
}

// RewardNotice tells the client one enemy paid out this tick.
type RewardNotice struct {
	EnemyID   string  `json:"enemyId"`
	Archetype string  `json:"archetype"`
	XP        float64 `json:"xp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// StateMessage is the per-tick broadcast frame.
type StateMessage struct {
	Ver        int              `json:"ver"`
	Type       string           `json:"type"`
	Tick       uint64           `json:"t"`
	Player     sim.PlayerView   `json:"player"`
	Enemies    []sim.EnemyView  `json:"enemies,omitempty"`
	Attacks    []sim.AttackView `json:"attacks,omitempty"`
	Wave       sim.WaveView     `json:"wave"`
	Rewards    []RewardNotice   `json:"rewards,omitempty"`
	ServerTime int64            `json:"serverTime"`
}

// NewStateMessage assembles a broadcast frame from a world snapshot.
func NewStateMessage(snap sim.Snapshot, rewards []RewardNotice, serverTime int64) StateMessage {
	return StateMessage{
		Ver:        Version,
		Type:       TypeState,
		Tick:       snap.Tick,
		Player:     snap.Player,
		Enemies:    snap.Enemies,
		Attacks:    snap.Attacks,
		Wave:       snap.Wave,
		Rewards:    rewards,
		ServerTime: serverTime,
	}
}

// Entities counts the renderable entities in the frame, for telemetry.
func (m StateMessage) Entities() int {
	return 1 + len(m.Enemies) + len(m.Attacks)
}

// EncodeStateMessage renders a state frame.
func EncodeStateMessage(msg StateMessage) ([]byte, error) {
	msg.Ver = Version
	if msg.Type == "" {
		msg.Type = TypeState
	}
	return json.Marshal(msg)
}

// JoinResponse is the HTTP join payload: identity, world layout, and the
// state as of the join so the client can render before the first frame.
type JoinResponse struct {
	Ver       int              `json:"ver"`
	ID        string           `json:"id"`
	Config    sim.Config       `json:"config"`
	Obstacles []geom.AABB      `json:"obstacles"`
	Actions   []string         `json:"actions"`
	Tick      uint64           `json:"t"`
	Player    sim.PlayerView   `json:"player"`
	Enemies   []sim.EnemyView  `json:"enemies,omitempty"`
	Attacks   []sim.AttackView `json:"attacks,omitempty"`
	Wave      sim.WaveView     `json:"wave"`
}

// EncodeJoinResponse renders a join payload.
func EncodeJoinResponse(msg JoinResponse) ([]byte, error) {
	msg.Ver = Version
	return json.Marshal(msg)
}

// CommandAck acknowledges a processed command by client sequence number.
type CommandAck struct {
	Seq  uint64
	Tick uint64
}

// EncodeCommandAck renders a command acknowledgement.
func EncodeCommandAck(msg CommandAck) ([]byte, error) {
	frame := struct {
		Ver  int    `json:"ver"`
		Type string `json:"type"`
		Seq  uint64 `json:"seq"`
		Tick uint64 `json:"tick,omitempty"`
	}{
		Ver:  Version,
		Type: TypeCommandAck,
		Seq:  msg.Seq,
	}
	if msg.Tick > 0 {
		frame.Tick = msg.Tick
	}
	return json.Marshal(frame)
}

// CommandReject notifies the client that a command was refused.
type CommandReject struct {
	Seq    uint64
	Reason string
	Retry  bool
}

// EncodeCommandReject renders a command rejection.
func EncodeCommandReject(msg CommandReject) ([]byte, error) {
	frame := struct {
		Ver    int    `json:"ver"`
		Type   string `json:"type"`
		Seq    uint64 `json:"seq"`
		Reason string `json:"reason"`
		Retry  bool   `json:"retry,omitempty"`
	}{
		Ver:    Version,
		Type:   TypeCommandReject,
		Seq:    msg.Seq,
		Reason: msg.Reason,
		Retry:  msg.Retry,
	}
	return json.Marshal(frame)
}

// Heartbeat echoes timing metadata back to the client.
type Heartbeat struct {
	ServerTime int64
	ClientTime int64
	RTTMillis  int64
}

// EncodeHeartbeat renders a heartbeat acknowledgement.
func EncodeHeartbeat(msg Heartbeat) ([]byte, error) {
	frame := struct {
		Ver        int    `json:"ver"`
		Type       string `json:"type"`
		ServerTime int64  `json:"serverTime"`
		ClientTime int64  `json:"clientTime"`
		RTTMillis  int64  `json:"rtt"`
	}{
		Ver:        Version,
		Type:       TypeHeartbeat,
		ServerTime: msg.ServerTime,
		ClientTime: msg.ClientTime,
		RTTMillis:  msg.RTTMillis,
	}
	return json.Marshal(frame)
}
