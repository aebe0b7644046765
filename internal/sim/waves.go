package sim

import (
	"context"
	"fmt"
	"math"

	"rush-and-ruin/server/internal/geom"
	"rush-and-ruin/server/logging"
	waveslog "rush-and-ruin/server/logging/waves"
	"rush-and-ruin/server/stats"
)

type waveState uint8

const (
	waveIdle waveState = iota
	waveIntermissionState
	waveActive
)

// archetypeUnlockWave gates when each archetype can appear. Later waves mix
// everything unlocked so far.
var archetypeUnlockWave = [stats.ArchetypeCount]int{
	stats.ArchetypeGnoll:  1,
	stats.ArchetypeArcher: 2,
	stats.ArchetypeViking: 3,
	stats.ArchetypePirate: 4,
	stats.ArchetypeSpirit: 5,
	stats.ArchetypeMage:   6,
	stats.ArchetypeOgre:   7,
}

// waveDirector spends a growing point budget on spawns, priced by the
// scorer, and announces each wave's aggregate threat. It only runs when the
// world config enables waves; tests drive spawns directly instead.
type waveDirector struct {
	enabled    bool
	wave       int
	state      waveState
	nextWaveAt uint64
	startedAt  uint64
	// costs caches the per-archetype spawn price; the scorer is pure so
	// pricing once at construction is the same as pricing per spawn.
	costs [stats.ArchetypeCount]int
}

func newWaveDirector(enabled bool) *waveDirector {
	d := &waveDirector{
		enabled:    enabled,
		state:      waveIdle,
		nextWaveAt: durationToTicks(waveFirstDelay),
	}
	for a := stats.Archetype(0); a < stats.ArchetypeCount; a++ {
		def := stats.MustDefinition(a)
		d.costs[a] = stats.Cost(def)
	}
	return d
}

func (d *waveDirector) update(ctx context.Context, w *World, tick uint64) {
	if d == nil || !d.enabled {
		return
	}
	switch d.state {
	case waveActive:
		if w.enemies.len() == 0 {
			waveslog.Cleared(ctx, w.publisher, tick, waveslog.ClearedPayload{
				Wave:          d.wave,
				DurationTicks: tick - d.startedAt,
			})
			d.state = waveIntermissionState
			d.nextWaveAt = tick + durationToTicks(waveIntermission)
		}
	case waveIdle, waveIntermissionState:
		if tick >= d.nextWaveAt {
			d.spawnWave(ctx, w, tick)
		}
	}
}

func (d *waveDirector) spawnWave(ctx context.Context, w *World, tick uint64) {
	d.wave++
	budget := waveBaseBudget + (d.wave-1)*waveBudgetRamp
	remaining := budget
	rng := w.subsystemRNG(fmt.Sprintf("waves.%d", d.wave))

	unlocked := d.unlockedArchetypes()
	cheapest := math.MaxInt
	for _, a := range unlocked {
		if d.costs[a] < cheapest {
			cheapest = d.costs[a]
		}
	}

	spawned := 0
	maxThreat := 0
	for remaining >= cheapest && spawned < maxWaveEnemies {
		arch, ok := d.pickAffordable(rng, unlocked, remaining)
		if !ok {
			break
		}
		pos := w.spawnRingPosition(rng)
		h, err := w.SpawnEnemy(ctx, arch, pos)
		if err != nil {
			w.publishSystem(tick, logging.SeverityError, "wave spawn failed: "+err.Error())
			break
		}
		if e, live := w.enemies.get(h); live && e.threat > maxThreat {
			maxThreat = e.threat
		}
		remaining -= d.costs[arch]
		spawned++
	}

	d.state = waveActive
	d.startedAt = tick
	waveslog.Started(ctx, w.publisher, tick, waveslog.StartedPayload{
		Wave:    d.wave,
		Budget:  budget,
		Spent:   budget - remaining,
		Enemies: spawned,
		Threat:  maxThreat,
	})
}

func (d *waveDirector) unlockedArchetypes() []stats.Archetype {
	out := make([]stats.Archetype, 0, stats.ArchetypeCount)
	for a := stats.Archetype(0); a < stats.ArchetypeCount; a++ {
		if archetypeUnlockWave[a] > 0 && d.wave >= archetypeUnlockWave[a] {
			out = append(out, a)
		}
	}
	return out
}

func (d *waveDirector) pickAffordable(rng rngSource, unlocked []stats.Archetype, budget int) (stats.Archetype, bool) {
	for attempt := 0; attempt < waveSpawnAttempts; attempt++ {
		arch := unlocked[rng.Intn(len(unlocked))]
		if d.costs[arch] <= budget {
			return arch, true
		}
	}
	return 0, false
}

// rngSource is the slice of *rand.Rand the director needs, pulled out so
// tests can stub the pick order.
type rngSource interface {
	Intn(n int) int
	Float64() float64
}

// spawnRingPosition picks a point on the spawn ring at the arena's edge.
func (w *World) spawnRingPosition(rng rngSource) geom.Vec {
	cx := w.width() / 2
	cy := w.height() / 2
	radius := math.Min(cx, cy) - spawnRingMargin
	angle := rng.Float64() * 2 * math.Pi
	return geom.Vec{
		X: cx + math.Cos(angle)*radius,
		Y: cy + math.Sin(angle)*radius,
	}
}
