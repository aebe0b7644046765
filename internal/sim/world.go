// Package sim runs the combat world: a fixed-rate step that moves the
// player, drives per-archetype enemy behaviors, advances attack objects,
// and resolves hits. The World is single-owner; the hub goroutine is the
// only caller once the simulation is running.
package sim

import (
	"context"
	"fmt"

	"rush-and-ruin/server/catalog"
	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/internal/telemetry"
	"rush-and-ruin/server/logging"
	combatlog "rush-and-ruin/server/logging/combat"
	lifecyclelog "rush-and-ruin/server/logging/lifecycle"
	"rush-and-ruin/server/stats"
)

// Config selects the optional world toggles. The zero value is normalized
// to the default arena with no obstacles and no wave director, which is
// what most tests want. The struct is part of the join payload, so clients
// see the effective arena dimensions and seed.
type Config struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Obstacles bool    `json:"obstacles"`
	Waves     bool    `json:"waves"`
	Seed      string  `json:"seed"`
}

func (c Config) normalized() Config {
	if c.Width <= 0 {
		c.Width = defaultWorldWidth
	}
	if c.Height <= 0 {
		c.Height = defaultWorldHeight
	}
	if c.Seed == "" {
		c.Seed = "prototype"
	}
	return c
}

// RewardDrop is one enemy kill paid out to the player, drained by the hub
// after each step.
type RewardDrop struct {
	EnemyID   string
	Archetype stats.Archetype
	XPValue   float64
	X         float64
	Y         float64
	Tick      uint64
}

type World struct {
	config Config

	player  *playerState
	enemies *enemyArena
	attacks []*attackState

	pendingIntents []attackIntent
	rewards        []RewardDrop

	obstacles []geom.AABB
	waves     *waveDirector

	catalog *catalog.Resolver
	tunings *tuningSet

	publisher logging.Publisher
	counters  *telemetry.Counters

	enemySeq    uint64
	attackSeq   uint64
	currentTick uint64

	slamRadius  float64
	assetWarned map[AttackKind]bool
}

// NewWorld builds a world for one player. A nil publisher or counters is
// fine; logging and telemetry just go nowhere.
func NewWorld(cfg Config, playerID string, pub logging.Publisher, counters *telemetry.Counters) *World {
	cfg = cfg.normalized()
	w := &World{
		config:      cfg,
		enemies:     newEnemyArena(),
		catalog:     defaultCatalog,
		tunings:     defaultTunings,
		publisher:   pub,
		counters:    counters,
		assetWarned: make(map[AttackKind]bool),
	}
	if entry, ok := w.catalog.Lookup(AttackSlam.CatalogID()); ok {
		w.slamRadius = entry.Radius
	}
	if cfg.Obstacles {
		w.obstacles = w.generateObstacles()
	}
	w.player = newPlayerState(playerID, geom.Vec{X: cfg.Width / 2, Y: cfg.Height / 2})
	w.waves = newWaveDirector(cfg.Waves)
	return w
}

// Config returns the normalized configuration the world was built with.
func (w *World) Config() Config { return w.config }

func (w *World) width() float64  { return w.config.Width }
func (w *World) height() float64 { return w.config.Height }

func (w *World) inBounds(p geom.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= w.width() && p.Y <= w.height()
}

func (w *World) clampToArena(p geom.Vec, radius float64) geom.Vec {
	return geom.Vec{
		X: geom.Clamp(p.X, radius, w.width()-radius),
		Y: geom.Clamp(p.Y, radius, w.height()-radius),
	}
}

// Step advances the world one tick. Commands are applied first, then the
// player moves, then enemies run their behaviors and queue attack intents.
// Attacks that already existed advance before the new intents join the
// list, so a freshly spawned attack is never updated on its spawn tick.
// Hits resolve afterwards, spent attacks and dead enemies are filtered,
// and each death pays out exactly one reward.
func (w *World) Step(ctx context.Context, tick uint64, dt float64, commands []Command) {
	w.currentTick = tick
	if dt <= 0 {
		dt = 1.0 / TickRate
	}

	for i := range commands {
		w.applyCommand(ctx, &commands[i], tick)
	}
	w.movePlayer(dt)
	w.updateEnemies(ctx, tick, dt)

	for _, a := range w.attacks {
		w.updateAttack(a, tick, dt)
	}
	w.insertPendingAttacks(tick)

	w.resolveHits(ctx, tick, w.player.modifiers)
	w.pruneAttacks()
	w.reapDead(ctx, tick)

	w.waves.update(ctx, w, tick)
}

func (w *World) applyCommand(ctx context.Context, cmd *Command, tick uint64) {
	switch cmd.Type {
	case CommandMove:
		w.applyPlayerMove(cmd.Move)
	case CommandFace:
		w.applyPlayerFace(cmd.Face)
	case CommandAction:
		w.applyPlayerAction(ctx, cmd.Action, tick)
	case CommandHeartbeat:
		// nothing to simulate; the hub already refreshed liveness.
	default:
		w.publishSystem(tick, logging.SeverityWarn, "dropped unknown command type "+string(cmd.Type))
	}
}

// insertPendingAttacks turns this step's intents into live attacks. They
// join the list after the update pass and before hit resolution, so an
// instant melee shape can land on its spawn tick but nothing advances it.
func (w *World) insertPendingAttacks(tick uint64) {
	for _, intent := range w.pendingIntents {
		a := w.buildAttack(intent, tick)
		if a == nil {
			continue
		}
		w.attacks = append(w.attacks, a)
		w.counters.AddAttacksSpawned(1)
	}
	w.pendingIntents = w.pendingIntents[:0]
}

// pruneAttacks drops inactive attacks in place, keeping order.
func (w *World) pruneAttacks() {
	kept := w.attacks[:0]
	for _, a := range w.attacks {
		if a.active {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(w.attacks); i++ {
		w.attacks[i] = nil
	}
	w.attacks = kept
}

// reapDead removes dead enemies and pays out their rewards. The dense scan
// collects first and releases after, because releasing mid-iteration would
// swap unvisited enemies under the cursor.
func (w *World) reapDead(ctx context.Context, tick uint64) {
	var dead []*enemyState
	w.enemies.forEach(func(e *enemyState) {
		if e.dead() {
			dead = append(dead, e)
		}
	})
	for _, e := range dead {
		e.alive = false
		combatlog.Defeat(ctx, w.publisher, tick, w.enemyRef(e),
			combatlog.DefeatPayload{Attack: e.killedBy, XPValue: e.def.XPValue})
		lifecyclelog.Reward(ctx, w.publisher, tick, w.enemyRef(e),
			lifecyclelog.RewardPayload{XPValue: e.def.XPValue, X: e.pos.X, Y: e.pos.Y})
		w.rewards = append(w.rewards, RewardDrop{
			EnemyID:   e.id,
			Archetype: e.archetype,
			XPValue:   e.def.XPValue,
			X:         e.pos.X,
			Y:         e.pos.Y,
			Tick:      tick,
		})
		w.player.xp += e.def.XPValue
		w.counters.AddRewardsEmitted(1)
		w.enemies.release(e.handle)
	}
}

// SpawnEnemy places a new enemy of the given archetype. Unknown archetypes
// and definitions without a skin are spawn-time errors, not silent
// defaults.
func (w *World) SpawnEnemy(ctx context.Context, arch stats.Archetype, pos geom.Vec) (Handle, error) {
	def, ok := stats.DefinitionFor(arch)
	if !ok {
		err := fmt.Errorf("spawn: unknown archetype %d", uint8(arch))
		w.publishSystem(w.currentTick, logging.SeverityError, err.Error())
		return Handle{}, err
	}
	if def.SkinKey == "" {
		err := fmt.Errorf("spawn: archetype %q has no skin", arch)
		w.publishSystem(w.currentTick, logging.SeverityError, err.Error())
		return Handle{}, err
	}
	w.enemySeq++
	e := &enemyState{
		id:        fmt.Sprintf("enemy-%s-%d", arch, w.enemySeq),
		archetype: arch,
		def:       def,
		pos:       w.clampToArena(pos, def.BodyRadius),
		health:    def.MaxHealth,
		state:     spawnInitialState(arch),
		cost:      stats.Cost(def),
		threat:    stats.ThreatLevel(def),
		alive:     true,
	}
	h := w.enemies.alloc(e)
	w.counters.AddEnemiesSpawned(1)
	lifecyclelog.Spawn(ctx, w.publisher, w.currentTick, w.enemyRef(e), lifecyclelog.SpawnPayload{
		Archetype: arch.String(),
		Cost:      e.cost,
		Threat:    e.threat,
		X:         e.pos.X,
		Y:         e.pos.Y,
	})
	return h, nil
}

// DestroyEnemy removes an enemy administratively, with no reward. Stale
// handles are a no-op.
func (w *World) DestroyEnemy(ctx context.Context, h Handle, reason string) bool {
	e, ok := w.enemies.get(h)
	if !ok {
		return false
	}
	lifecyclelog.Despawn(ctx, w.publisher, w.currentTick, w.enemyRef(e),
		lifecyclelog.DespawnPayload{Reason: reason})
	return w.enemies.release(h)
}

// DrainRewards returns and clears the rewards accumulated since the last
// drain.
func (w *World) DrainRewards() []RewardDrop {
	if len(w.rewards) == 0 {
		return nil
	}
	out := make([]RewardDrop, len(w.rewards))
	copy(out, w.rewards)
	w.rewards = w.rewards[:0]
	return out
}

func (w *World) publishSystem(tick uint64, severity logging.Severity, msg string) {
	if w.publisher == nil {
		return
	}
	w.publisher.Publish(context.Background(), logging.Event{
		Type:     "system.note",
		Tick:     tick,
		Severity: severity,
		Category: logging.CategorySystem,
		Payload:  msg,
	})
}

// warnDegradedAsset logs the placeholder fallback once per attack kind so a
// missing asset shows up without flooding every spawn.
func (w *World) warnDegradedAsset(tick uint64, kind AttackKind) {
	if w.assetWarned[kind] {
		return
	}
	w.assetWarned[kind] = true
	w.publishSystem(tick, logging.SeverityWarn,
		fmt.Sprintf("attack %q renders with placeholder asset", kind))
}
