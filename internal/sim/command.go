package sim

import "time"

// CommandType discriminates the Command union below.
type CommandType string

const (
	CommandMove      CommandType = "move"
	CommandFace      CommandType = "face"
	CommandAction    CommandType = "action"
	CommandHeartbeat CommandType = "heartbeat"
)

// MoveCommand sets the player's movement intent for the next step. DX/DY
// is a direction, not a displacement; the world normalizes it.
type MoveCommand struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// FaceCommand turns the player in place without moving.
type FaceCommand struct {
	Angle float64 `json:"angle"`
}

// ActionCommand triggers a named player attack aimed at a world position.
type ActionCommand struct {
	Name string  `json:"name"`
	AimX float64 `json:"aimX"`
	AimY float64 `json:"aimY"`
}

// Command is the envelope the hub queues between network reads and the
// step that consumes them. Exactly one payload pointer matches Type.
type Command struct {
	ActorID    string
	Type       CommandType
	Move       *MoveCommand
	Face       *FaceCommand
	Action     *ActionCommand
	IssuedAt   time.Time
	OriginTick uint64
}
