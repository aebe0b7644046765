package sim

import (
	"context"
	"sort"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/logging"
	ailog "rush-and-ruin/server/logging/ai"
)

// Modifiers scale the player's combat numbers. They are passed explicitly
// into damage resolution rather than read from globals, so tests and future
// upgrade systems can vary them per call.
type Modifiers struct {
	DamageScale   float64
	IncomingScale float64
	InvulnScale   float64
	SpeedScale    float64
	RadiusScale   float64
}

// DefaultModifiers returns the neutral 1.0 scales.
func DefaultModifiers() Modifiers {
	return Modifiers{
		DamageScale:   1,
		IncomingScale: 1,
		InvulnScale:   1,
		SpeedScale:    1,
		RadiusScale:   1,
	}
}

type playerState struct {
	id     string
	pos    geom.Vec
	facing float64

	health    float64
	maxHealth float64
	damage    float64
	speed     float64
	radius    float64

	xp          float64
	invulnUntil uint64
	modifiers   Modifiers

	moveIntent geom.Vec

	cooldownReadyAt map[AttackKind]uint64

	alive bool
}

func newPlayerState(id string, pos geom.Vec) *playerState {
	return &playerState{
		id:              id,
		pos:             pos,
		health:          playerMaxHealth,
		maxHealth:       playerMaxHealth,
		damage:          playerBaseDamage,
		speed:           playerBaseSpeed,
		radius:          playerBodyRadius,
		modifiers:       DefaultModifiers(),
		cooldownReadyAt: make(map[AttackKind]uint64, 3),
		alive:           true,
	}
}

func (p *playerState) bodyRadius() float64 {
	return p.radius * p.modifiers.RadiusScale
}

func (p *playerState) invulnerable(tick uint64) bool {
	return tick < p.invulnUntil
}

// playerActions maps wire action names to player attack kinds and cooldowns.
var playerActions = map[string]struct {
	kind     AttackKind
	cooldown uint64
}{
	"slash": {AttackSlash, durationToTicks(slashCooldown)},
	"bolt":  {AttackBolt, durationToTicks(boltCooldown)},
	"nova":  {AttackNova, durationToTicks(novaCooldown)},
}

// applyPlayerMove folds a movement command into the player's intent for
// this step. The vector is normalized so diagonal input is not faster.
func (w *World) applyPlayerMove(cmd *MoveCommand) {
	p := w.player
	if p == nil || !p.alive || cmd == nil {
		return
	}
	v := geom.Vec{X: cmd.DX, Y: cmd.DY}
	if v.IsZero() {
		p.moveIntent = geom.Vec{}
		return
	}
	p.moveIntent = v.Normalize()
	p.facing = geom.AngleOf(p.moveIntent)
}

// applyPlayerFace turns the player without touching the movement intent.
func (w *World) applyPlayerFace(cmd *FaceCommand) {
	p := w.player
	if p == nil || !p.alive || cmd == nil || !finite(cmd.Angle) {
		return
	}
	p.facing = cmd.Angle
}

// ValidAction reports whether the name maps to a player attack. The hub
// checks this at intake so bad input is rejected before it is queued.
func ValidAction(name string) bool {
	_, ok := playerActions[name]
	return ok
}

// ActionNames lists the player attacks for the join payload, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(playerActions))
	for name := range playerActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyPlayerAction queues an attack intent for a named action if it exists
// and is off cooldown. Unknown action names are logged and dropped.
func (w *World) applyPlayerAction(ctx context.Context, cmd *ActionCommand, tick uint64) {
	p := w.player
	if p == nil || !p.alive || cmd == nil {
		return
	}
	action, ok := playerActions[cmd.Name]
	if !ok {
		w.publishSystem(tick, logging.SeverityWarn, "unknown player action "+cmd.Name)
		return
	}
	if tick < p.cooldownReadyAt[action.kind] {
		return
	}
	p.cooldownReadyAt[action.kind] = tick + action.cooldown

	aim := geom.Vec{X: cmd.AimX, Y: cmd.AimY}
	facing := p.facing
	if !aim.IsZero() {
		facing = geom.AngleOf(aim.Sub(p.pos))
		p.facing = facing
	}

	intent := attackIntent{
		kind:        action.kind,
		team:        teamPlayer,
		ownerID:     p.id,
		origin:      p.pos,
		target:      aim,
		facing:      facing,
		damage:      p.damage,
		startOffset: p.bodyRadius() + 4,
	}
	w.pendingIntents = append(w.pendingIntents, intent)
	ailog.AttackCommitted(ctx, w.publisher, tick, logging.EntityRef{ID: p.id, Kind: logging.EntityKindPlayer},
		ailog.AttackCommittedPayload{Kind: action.kind.String(), TargetX: aim.X, TargetY: aim.Y})
}

// movePlayer advances the player by their speed, clamped to the arena and
// pushed out of obstacles.
func (w *World) movePlayer(dt float64) {
	p := w.player
	if p == nil || !p.alive || p.moveIntent.IsZero() {
		return
	}
	speed := p.speed * p.modifiers.SpeedScale
	next := p.pos.Add(p.moveIntent.Scale(speed * dt))
	next = w.clampToArena(next, p.bodyRadius())
	for _, box := range w.obstacles {
		if geom.CircleOverlapsAABB(next, p.bodyRadius(), box) {
			next = p.pos
			break
		}
	}
	p.pos = next
}
