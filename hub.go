package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"rush-and-ruin/server/internal/net/proto"
	"rush-and-ruin/server/internal/sim"
	"rush-and-ruin/server/internal/telemetry"
	"rush-and-ruin/server/logging"
	networklog "rush-and-ruin/server/logging/network"
)

const (
	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
	commandQueueLimit = 64
)

// Command reject reasons sent back to clients.
const (
	CommandRejectUnknownActor  = "unknown_actor"
	CommandRejectQueueLimit    = "queue_limit"
	CommandRejectInvalidAction = "invalid_action"
)

// TickRate exposes the simulation rate for diagnostics payloads.
func TickRate() int { return sim.TickRate }

// HeartbeatInterval is the cadence clients are expected to ping at.
func HeartbeatInterval() time.Duration { return heartbeatInterval }

var errNoConnection = errors.New("subscriber has no connection")

// Subscriber serializes writes onto one websocket connection and remembers
// the last acknowledged client command sequence.
type Subscriber struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	lastSeq atomic.Uint64
}

// WriteMessage writes one frame under the session's write lock.
func (s *Subscriber) WriteMessage(messageType int, data []byte) error {
	if s == nil || s.conn == nil {
		return errNoConnection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// LastCommandSeq returns the highest acknowledged command sequence.
func (s *Subscriber) LastCommandSeq() uint64 { return s.lastSeq.Load() }

// StoreLastCommandSeq records an acknowledged command sequence.
func (s *Subscriber) StoreLastCommandSeq(seq uint64) { s.lastSeq.Store(seq) }

func (s *Subscriber) close() {
	if s != nil && s.conn != nil {
		s.conn.Close()
	}
}

// seat is the one live player session. Each world hosts a single player;
// a new join rebuilds the seat from scratch.
type seat struct {
	playerID      string
	world         *sim.World
	tick          uint64
	pending       []sim.Command
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

// HubConfig carries construction options for the hub.
type HubConfig struct {
	World  sim.Config
	Logger telemetry.Logger
}

// DefaultHubConfig returns the stock single-arena setup.
func DefaultHubConfig() HubConfig {
	return HubConfig{World: DefaultWorldConfig()}
}

// Hub owns the live world, the subscriber registry, and the tick loop.
type Hub struct {
	mu          sync.Mutex
	seat        *seat
	subscribers map[string]*Subscriber
	cfg         sim.Config

	nextID    atomic.Uint64
	publisher logging.Publisher
	counters  *telemetry.Counters
	logger    telemetry.Logger
}

// NewHubWithConfig creates a hub with no seated player yet.
func NewHubWithConfig(cfg HubConfig, publisher logging.Publisher) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(log.Default())
	}
	world := cfg.World
	if world == (sim.Config{}) {
		world = DefaultWorldConfig()
	}
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		cfg:         sanitizeConfig(world),
		publisher:   publisher,
		counters:    telemetry.NewCounters(),
		logger:      logger,
	}
}

// Join seats a new player in a fresh world and returns the join payload.
// The server hosts one player at a time; a second join takes the seat over
// and the previous session is closed.
func (h *Hub) Join() proto.JoinResponse {
	id := h.nextID.Add(1)
	playerID := fmt.Sprintf("player-%d", id)
	now := time.Now()

	var evicted *Subscriber
	h.mu.Lock()
	if old := h.seat; old != nil {
		if sub, ok := h.subscribers[old.playerID]; ok {
			evicted = sub
			delete(h.subscribers, old.playerID)
		}
		h.logger.Printf("seat taken over: %s replaces %s", playerID, old.playerID)
	}
	world := sim.NewWorld(h.cfg, playerID, h.publisher, h.counters)
	h.seat = &seat{playerID: playerID, world: world, lastHeartbeat: now}
	snap := world.Snapshot()
	cfg := world.Config()
	obstacles := world.Obstacles()
	h.mu.Unlock()

	if evicted != nil {
		evicted.close()
	}
	networklog.Join(context.Background(), h.publisher, snap.Tick,
		logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer})

	return proto.JoinResponse{
		ID:        playerID,
		Config:    cfg,
		Obstacles: obstacles,
		Actions:   sim.ActionNames(),
		Tick:      snap.Tick,
		Player:    snap.Player,
		Enemies:   snap.Enemies,
		Attacks:   snap.Attacks,
		Wave:      snap.Wave,
	}
}

// Subscribe associates a websocket connection with the seated player and
// returns the current state frame for the initial write.
func (h *Hub) Subscribe(playerID string, conn *websocket.Conn) (*Subscriber, proto.StateMessage, bool) {
	h.mu.Lock()
	s := h.seat
	if s == nil || s.playerID != playerID {
		h.mu.Unlock()
		return nil, proto.StateMessage{}, false
	}
	s.lastHeartbeat = time.Now()

	var replaced *Subscriber
	if existing, ok := h.subscribers[playerID]; ok {
		replaced = existing
	}
	sub := &Subscriber{conn: conn}
	h.subscribers[playerID] = sub
	frame := proto.NewStateMessage(s.world.Snapshot(), nil, time.Now().UnixMilli())
	h.mu.Unlock()

	if replaced != nil {
		replaced.close()
	}
	return sub, frame, true
}

// Disconnect tears down the player's session. The world goes with it: one
// player per world, so an abandoned run is over.
func (h *Hub) Disconnect(playerID string) bool {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	if subOK {
		delete(h.subscribers, playerID)
	}
	var tick uint64
	seated := h.seat != nil && h.seat.playerID == playerID
	if seated {
		tick = h.seat.tick
		h.seat = nil
	}
	h.mu.Unlock()

	if subOK {
		sub.close()
	}
	if seated {
		networklog.Disconnect(context.Background(), h.publisher, tick,
			logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
			networklog.DisconnectPayload{Reason: "client"})
	}
	return seated
}

// enqueueLocked appends a command for the next step, enforcing the queue cap.
func (h *Hub) enqueueLocked(s *seat, cmd sim.Command) (sim.Command, bool, string) {
	if len(s.pending) >= commandQueueLimit {
		return sim.Command{}, false, CommandRejectQueueLimit
	}
	cmd.ActorID = s.playerID
	cmd.IssuedAt = time.Now()
	cmd.OriginTick = s.tick + 1
	s.pending = append(s.pending, cmd)
	return cmd, true, ""
}

// UpdateIntent queues a movement command for the seated player.
func (h *Hub) UpdateIntent(playerID string, dx, dy float64) (sim.Command, bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.seat
	if s == nil || s.playerID != playerID {
		return sim.Command{}, false, CommandRejectUnknownActor
	}
	return h.enqueueLocked(s, sim.Command{
		Type: sim.CommandMove,
		Move: &sim.MoveCommand{DX: dx, DY: dy},
	})
}

// UpdateFacing queues a turn-in-place command for the seated player.
func (h *Hub) UpdateFacing(playerID string, angle float64) (sim.Command, bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.seat
	if s == nil || s.playerID != playerID {
		return sim.Command{}, false, CommandRejectUnknownActor
	}
	return h.enqueueLocked(s, sim.Command{
		Type: sim.CommandFace,
		Face: &sim.FaceCommand{Angle: angle},
	})
}

// TriggerAction queues a named attack aimed at a world position.
func (h *Hub) TriggerAction(playerID, name string, aimX, aimY float64) (sim.Command, bool, string) {
	if !sim.ValidAction(name) {
		return sim.Command{}, false, CommandRejectInvalidAction
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.seat
	if s == nil || s.playerID != playerID {
		return sim.Command{}, false, CommandRejectUnknownActor
	}
	return h.enqueueLocked(s, sim.Command{
		Type:   sim.CommandAction,
		Action: &sim.ActionCommand{Name: name, AimX: aimX, AimY: aimY},
	})
}

// UpdateHeartbeat records liveness and computes RTT from the client clock.
func (h *Hub) UpdateHeartbeat(playerID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.seat
	if s == nil || s.playerID != playerID {
		return 0, false
	}
	s.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			s.lastRTT = rtt
		}
	}
	return s.lastRTT, true
}

// advance runs one simulation step. It returns the broadcast frame, any
// subscriber dropped for heartbeat timeout, and whether a step ran.
func (h *Hub) advance(ctx context.Context, now time.Time, dt float64) (proto.StateMessage, *Subscriber, bool) {
	h.mu.Lock()
	s := h.seat
	if s == nil {
		h.mu.Unlock()
		return proto.StateMessage{}, nil, false
	}

	if now.Sub(s.lastHeartbeat) > disconnectAfter {
		var stale *Subscriber
		if sub, ok := h.subscribers[s.playerID]; ok {
			stale = sub
			delete(h.subscribers, s.playerID)
		}
		tick := s.tick
		playerID := s.playerID
		h.seat = nil
		h.mu.Unlock()

		h.logger.Printf("disconnecting %s due to heartbeat timeout", playerID)
		networklog.Disconnect(ctx, h.publisher, tick,
			logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
			networklog.DisconnectPayload{Reason: "heartbeat timeout"})
		return proto.StateMessage{}, stale, false
	}

	commands := s.pending
	s.pending = nil
	s.tick++

	start := time.Now()
	s.world.Step(ctx, s.tick, dt, commands)
	snap := s.world.Snapshot()
	rewards := rewardNotices(s.world.DrainRewards())
	h.mu.Unlock()

	h.counters.RecordStep(time.Since(start))
	return proto.NewStateMessage(snap, rewards, now.UnixMilli()), nil, true
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes. dt comes from the wall clock with a fixed-step fallback.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ctx := context.Background()
	ticker := time.NewTicker(time.Second / sim.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / sim.TickRate
			}
			last = now

			frame, stale, stepped := h.advance(ctx, now, dt)
			if stale != nil {
				stale.close()
			}
			if !stepped {
				continue
			}
			h.broadcastState(frame)
		}
	}
}

// broadcastState sends the frame to every subscriber, dropping dead ones.
func (h *Hub) broadcastState(frame proto.StateMessage) {
	data, err := proto.EncodeStateMessage(frame)
	if err != nil {
		h.logger.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[string]*Subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("failed to send update to %s: %v", id, err)
			h.Disconnect(id)
			continue
		}
		h.counters.RecordBroadcast(len(data), frame.Entities())
	}
}

// RecordTelemetryBroadcast counts a state frame sent outside the shared
// broadcast path, such as the initial frame written on subscribe.
func (h *Hub) RecordTelemetryBroadcast(bytes, entities int) {
	h.counters.RecordBroadcast(bytes, entities)
}

// CurrentConfig returns the configuration the next world will be built with.
func (h *Hub) CurrentConfig() sim.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seat != nil {
		return h.seat.world.Config()
	}
	return h.cfg
}

// ResetWorld swaps in a new configuration. A seated player gets a fresh
// world immediately; otherwise the config applies to the next join.
func (h *Hub) ResetWorld(cfg sim.Config) (sim.Config, bool) {
	cfg = sanitizeConfig(cfg)
	h.mu.Lock()
	h.cfg = cfg
	s := h.seat
	var effective sim.Config
	rebuilt := false
	if s != nil {
		s.world = sim.NewWorld(cfg, s.playerID, h.publisher, h.counters)
		s.tick = 0
		s.pending = nil
		effective = s.world.Config()
		rebuilt = true
	} else {
		effective = cfg
	}
	h.mu.Unlock()
	return effective, rebuilt
}

// DiagnosticsSnapshot exposes session liveness for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []DiagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]DiagnosticsPlayer, 0, 1)
	if s := h.seat; s != nil {
		players = append(players, DiagnosticsPlayer{
			ID:            s.playerID,
			LastHeartbeat: s.lastHeartbeat.UnixMilli(),
			RTTMillis:     s.lastRTT.Milliseconds(),
			Tick:          s.tick,
		})
	}
	return players
}

// TelemetrySnapshot exposes the step and broadcast counters.
func (h *Hub) TelemetrySnapshot() telemetry.Snapshot {
	return h.counters.Snapshot()
}
