package sim

import (
	"math"
	"time"
)

// TickRate is the fixed number of simulation steps per second. Gameplay
// constants below are expressed in wall time and converted to ticks with
// durationToTicks so tuning stays readable.
const TickRate = 15

const (
	defaultWorldWidth  = 2400.0
	defaultWorldHeight = 1600.0

	playerMaxHealth  = 100.0
	playerBaseDamage = 12.0
	playerBaseSpeed  = 220.0
	playerBodyRadius = 16.0
)

// invulnWindow is how long the player ignores follow-up enemy hits after
// taking damage. Scaled per player by Modifiers.InvulnScale.
const invulnWindow = 1 * time.Second

const (
	slashCooldown = 400 * time.Millisecond
	boltCooldown  = 600 * time.Millisecond
	novaCooldown  = 4 * time.Second
)

const (
	stormWarningDuration = 1200 * time.Millisecond
	stormStrikeDuration  = 150 * time.Millisecond

	vortexFadeDuration = 500 * time.Millisecond

	shieldPulseLead = 700 * time.Millisecond
)

// slamArmDelay is the gap between an ogre committing its slam and the
// strike zone opening. The attack object exists for the whole window so
// clients can telegraph it.
const slamArmDelay = 800 * time.Millisecond

const (
	spawnRingMargin    = 60.0
	spawnClearRadius   = 200.0
	waveIntermission   = 4 * time.Second
	waveFirstDelay     = 2 * time.Second
	waveBaseBudget     = 160
	waveBudgetRamp     = 60
	maxWaveEnemies     = 40
	waveSpawnAttempts  = 12
)

func durationToTicks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	ticks := math.Ceil(d.Seconds() * TickRate)
	return uint64(ticks)
}

func msToTicks(ms int) uint64 {
	return durationToTicks(time.Duration(ms) * time.Millisecond)
}
