package sim

import "rush-and-ruin/server/internal/geom"

// PlayerView is the wire shape of the player for one tick.
type PlayerView struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Facing       float64 `json:"facing"`
	Health       float64 `json:"health"`
	MaxHealth    float64 `json:"maxHealth"`
	XP           float64 `json:"xp"`
	Invulnerable bool    `json:"invulnerable"`
	Alive        bool    `json:"alive"`
}

// EnemyView is the wire shape of one enemy. Charging marks the archer's
// aim lock so clients can draw the indicator without decoding states, and
// ChargeProgress runs 0..1 across the lock for the fill animation.
type EnemyView struct {
	ID             string  `json:"id"`
	Archetype      string  `json:"archetype"`
	SkinKey        string  `json:"skinKey"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Facing         float64 `json:"facing"`
	Health         float64 `json:"health"`
	MaxHealth      float64 `json:"maxHealth"`
	State          string  `json:"state"`
	Threat         int     `json:"threat"`
	Charging       bool    `json:"charging,omitempty"`
	ChargeProgress float64 `json:"chargeProgress,omitempty"`
}

// AttackView is the wire shape of one live attack object. X/Y anchor the
// shape: the center for areas and cones, the tip for projectiles.
type AttackView struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Team      string  `json:"team"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Facing    float64 `json:"facing"`
	Radius    float64 `json:"radius,omitempty"`
	HalfAngle float64 `json:"halfAngle,omitempty"`
	Length    float64 `json:"length,omitempty"`
	HalfWidth float64 `json:"halfWidth,omitempty"`
	Phase     string  `json:"phase"`
	AssetKey  string  `json:"assetKey"`
	Pulse     bool    `json:"pulse,omitempty"`
}

// WaveView summarizes the director for the HUD.
type WaveView struct {
	Number       int    `json:"number"`
	State        string `json:"state"`
	EnemiesAlive int    `json:"enemiesAlive"`
}

// Snapshot is the full per-tick world view the hub broadcasts.
type Snapshot struct {
	Tick    uint64       `json:"tick"`
	Player  PlayerView   `json:"player"`
	Enemies []EnemyView  `json:"enemies"`
	Attacks []AttackView `json:"attacks"`
	Wave    WaveView     `json:"wave"`
}

var waveStateNames = [...]string{
	waveIdle:              "idle",
	waveIntermissionState: "intermission",
	waveActive:            "active",
}

func (s waveState) String() string {
	if int(s) < len(waveStateNames) {
		return waveStateNames[s]
	}
	return "unknown"
}

// Snapshot captures the world as of the last step. Enemies appear in dense
// arena order and attacks in spawn order.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   w.currentTick,
		Player: w.playerView(),
		Wave: WaveView{
			Number:       w.waves.wave,
			State:        w.waves.state.String(),
			EnemiesAlive: w.enemies.len(),
		},
	}
	if n := w.enemies.len(); n > 0 {
		snap.Enemies = make([]EnemyView, 0, n)
		w.enemies.forEach(func(e *enemyState) {
			snap.Enemies = append(snap.Enemies, w.enemyView(e))
		})
	}
	if len(w.attacks) > 0 {
		snap.Attacks = make([]AttackView, 0, len(w.attacks))
		for _, a := range w.attacks {
			if !a.active {
				continue
			}
			head := a.head()
			snap.Attacks = append(snap.Attacks, AttackView{
				ID:        a.wireID,
				Kind:      a.kind.String(),
				Team:      a.team.String(),
				X:         head.X,
				Y:         head.Y,
				Facing:    a.shape.Facing,
				Radius:    a.shape.Radius,
				HalfAngle: a.shape.HalfAngle,
				Length:    a.shape.Length,
				HalfWidth: a.shape.HalfWidth,
				Phase:     a.phase.String(),
				AssetKey:  a.assetKey,
				Pulse:     a.pulse,
			})
		}
	}
	return snap
}

func (w *World) playerView() PlayerView {
	p := w.player
	if p == nil {
		return PlayerView{}
	}
	return PlayerView{
		ID:           p.id,
		X:            p.pos.X,
		Y:            p.pos.Y,
		Facing:       p.facing,
		Health:       p.health,
		MaxHealth:    p.maxHealth,
		XP:           p.xp,
		Invulnerable: p.invulnerable(w.currentTick),
		Alive:        p.alive,
	}
}

// Obstacles returns the static obstacle layout for join payloads.
func (w *World) Obstacles() []geom.AABB {
	out := make([]geom.AABB, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// EnemyCount reports the number of live enemies.
func (w *World) EnemyCount() int { return w.enemies.len() }

// AttackCount reports the number of live attack objects.
func (w *World) AttackCount() int {
	n := 0
	for _, a := range w.attacks {
		if a.active {
			n++
		}
	}
	return n
}

// Enemy returns the view of one enemy by handle.
func (w *World) Enemy(h Handle) (EnemyView, bool) {
	e, ok := w.enemies.get(h)
	if !ok {
		return EnemyView{}, false
	}
	return w.enemyView(e), true
}

func (w *World) enemyView(e *enemyState) EnemyView {
	v := EnemyView{
		ID:        e.id,
		Archetype: e.archetype.String(),
		SkinKey:   e.def.SkinKey,
		X:         e.pos.X,
		Y:         e.pos.Y,
		Facing:    e.facing,
		Health:    e.health,
		MaxHealth: e.def.MaxHealth,
		State:     e.state.String(),
		Threat:    e.threat,
	}
	if e.state == stateCharge {
		v.Charging = true
		if e.bb.lockUntil > e.bb.stateEntered && w.currentTick >= e.bb.stateEntered {
			span := float64(e.bb.lockUntil - e.bb.stateEntered)
			v.ChargeProgress = geom.Clamp(float64(w.currentTick-e.bb.stateEntered)/span, 0, 1)
		}
	}
	return v
}

// PlayerModifiers returns the scales currently applied to the player.
func (w *World) PlayerModifiers() Modifiers { return w.player.modifiers }

// SetPlayerModifiers swaps the player's modifier set, for upgrades.
func (w *World) SetPlayerModifiers(m Modifiers) { w.player.modifiers = m }
