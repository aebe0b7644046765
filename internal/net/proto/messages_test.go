package proto

import (
	"encoding/json"
	"testing"

	"rush-and-ruin/server/internal/sim"
)

func TestClientCommand(t *testing.T) {
	t.Run("move command", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeInput, DX: 1.5, DY: -0.25})
		if !ok {
			t.Fatalf("expected move command to be recognized")
		}
		if cmd.Type != sim.CommandMove {
			t.Fatalf("expected move command type, got %q", cmd.Type)
		}
		if cmd.Move == nil || cmd.Move.DX != 1.5 || cmd.Move.DY != -0.25 {
			t.Fatalf("unexpected move payload: %+v", cmd.Move)
		}
	})

	t.Run("face command", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeFace, Facing: 1.25})
		if !ok {
			t.Fatalf("expected face command to be recognized")
		}
		if cmd.Type != sim.CommandFace {
			t.Fatalf("expected face type, got %q", cmd.Type)
		}
		if cmd.Face == nil || cmd.Face.Angle != 1.25 {
			t.Fatalf("unexpected face payload: %+v", cmd.Face)
		}
	})

	t.Run("action command", func(t *testing.T) {
		cmd, ok := ClientCommand(ClientMessage{Type: TypeAction, Action: "slash", AimX: 40, AimY: -8})
		if !ok {
			t.Fatalf("expected action command to be recognized")
		}
		if cmd.Type != sim.CommandAction {
			t.Fatalf("expected action type, got %q", cmd.Type)
		}
		if cmd.Action == nil || cmd.Action.Name != "slash" {
			t.Fatalf("unexpected action payload: %+v", cmd.Action)
		}
		if cmd.Action.AimX != 40 || cmd.Action.AimY != -8 {
			t.Fatalf("unexpected aim: %+v", cmd.Action)
		}
	})

	t.Run("action command requires name", func(t *testing.T) {
		if _, ok := ClientCommand(ClientMessage{Type: TypeAction}); ok {
			t.Fatalf("expected empty action to be rejected")
		}
	})

	t.Run("heartbeat is not a command", func(t *testing.T) {
		if _, ok := ClientCommand(ClientMessage{Type: TypeHeartbeat}); ok {
			t.Fatalf("expected heartbeat to be ignored")
		}
	})
}

func TestDecodeClientMessageVersioning(t *testing.T) {
	t.Run("missing version defaults to current", func(t *testing.T) {
		msg, err := DecodeClientMessage([]byte(`{"type":"input","dx":1}`))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if msg.Ver != Version {
			t.Fatalf("expected version %d, got %d", Version, msg.Ver)
		}
	})

	t.Run("future version rejected", func(t *testing.T) {
		if _, err := DecodeClientMessage([]byte(`{"ver":99,"type":"input"}`)); err == nil {
			t.Fatalf("expected version mismatch error")
		}
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		if _, err := DecodeClientMessage([]byte(`{"type":`)); err == nil {
			t.Fatalf("expected decode error")
		}
	})
}

func TestEncodeStateMessageSetsVersionAndType(t *testing.T) {
	frame := NewStateMessage(sim.Snapshot{Tick: 42}, nil, 1000)
	data, err := EncodeStateMessage(frame)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if decoded["ver"] != float64(Version) {
		t.Fatalf("expected ver %d, got %v", Version, decoded["ver"])
	}
	if decoded["type"] != "state" {
		t.Fatalf("expected state type, got %v", decoded["type"])
	}
	if decoded["t"] != float64(42) {
		t.Fatalf("expected tick 42, got %v", decoded["t"])
	}
}

func TestStateMessageEntities(t *testing.T) {
	frame := NewStateMessage(sim.Snapshot{
		Enemies: make([]sim.EnemyView, 3),
		Attacks: make([]sim.AttackView, 2),
	}, nil, 0)
	if got := frame.Entities(); got != 6 {
		t.Fatalf("expected 6 entities (player + 3 enemies + 2 attacks), got %d", got)
	}
}
