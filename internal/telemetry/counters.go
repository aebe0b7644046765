package telemetry

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// Counters aggregates per-step simulation and broadcast totals. All methods
// are safe for concurrent use; the diagnostics endpoint reads snapshots while
// the tick loop writes.
type Counters struct {
	stepsRun       atomic.Uint64
	enemiesSpawned atomic.Uint64
	attacksSpawned atomic.Uint64
	hitsApplied    atomic.Uint64
	rewardsEmitted atomic.Uint64
	bytesSent      atomic.Uint64
	entitiesSent   atomic.Uint64
	lastTickMillis atomic.Int64
	debug          bool
}

// Snapshot is the JSON view served by /diagnostics.
type Snapshot struct {
	StepsRun       uint64 `json:"stepsRun"`
	EnemiesSpawned uint64 `json:"enemiesSpawned"`
	AttacksSpawned uint64 `json:"attacksSpawned"`
	HitsApplied    uint64 `json:"hitsApplied"`
	RewardsEmitted uint64 `json:"rewardsEmitted"`
	BytesSent      uint64 `json:"bytesSent"`
	EntitiesSent   uint64 `json:"entitiesSent"`
	LastTickMillis int64  `json:"lastTickMillis"`
}

func NewCounters() *Counters {
	c := &Counters{}
	if os.Getenv("DEBUG_TELEMETRY") == "1" {
		c.debug = true
	}
	return c
}

func (c *Counters) RecordStep(duration time.Duration) {
	if c == nil {
		return
	}
	c.stepsRun.Add(1)
	millis := duration.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	c.lastTickMillis.Store(millis)
	if c.debug {
		fmt.Printf("[telemetry] step=%d tick=%dms hits=%d rewards=%d\n",
			c.stepsRun.Load(), millis, c.hitsApplied.Load(), c.rewardsEmitted.Load())
	}
}

func (c *Counters) RecordBroadcast(bytes, entities int) {
	if c == nil {
		return
	}
	if bytes < 0 {
		bytes = 0
	}
	if entities < 0 {
		entities = 0
	}
	c.bytesSent.Add(uint64(bytes))
	c.entitiesSent.Add(uint64(entities))
}

func (c *Counters) AddEnemiesSpawned(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.enemiesSpawned.Add(uint64(n))
}

func (c *Counters) AddAttacksSpawned(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.attacksSpawned.Add(uint64(n))
}

func (c *Counters) AddHitsApplied(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.hitsApplied.Add(uint64(n))
}

func (c *Counters) AddRewardsEmitted(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rewardsEmitted.Add(uint64(n))
}

func (c *Counters) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		StepsRun:       c.stepsRun.Load(),
		EnemiesSpawned: c.enemiesSpawned.Load(),
		AttacksSpawned: c.attacksSpawned.Load(),
		HitsApplied:    c.hitsApplied.Load(),
		RewardsEmitted: c.rewardsEmitted.Load(),
		BytesSent:      c.bytesSent.Load(),
		EntitiesSent:   c.entitiesSent.Load(),
		LastTickMillis: c.lastTickMillis.Load(),
	}
}
