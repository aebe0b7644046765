package sim

import (
	"context"
	"math"
	"testing"

	waveslog "rush-and-ruin/server/logging/waves"
	"rush-and-ruin/server/stats"
)

// stubRNG feeds the director a scripted pick order.
type stubRNG struct {
	ints   []int
	floats []float64
	i, f   int
}

func (s *stubRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.i%len(s.ints)]
	s.i++
	return v % n
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

func newWaveWorld(t *testing.T) (*World, *eventCollector) {
	t.Helper()
	col := &eventCollector{}
	w := NewWorld(Config{Width: 1200, Height: 900, Waves: true, Seed: "test"}, "player-1", col, nil)
	return w, col
}

func stepIdle(w *World, from, to uint64) {
	ctx := context.Background()
	for tick := from; tick <= to; tick++ {
		w.Step(ctx, tick, testDT, nil)
	}
}

// Wave one unlocks only gnolls, so the spend is pure integer division of the
// base budget by the gnoll price no matter how the director rolls.
func TestFirstWaveSpendsBudgetOnGnolls(t *testing.T) {
	w, col := newWaveWorld(t)

	firstWaveTick := durationToTicks(waveFirstDelay)
	stepIdle(w, 1, firstWaveTick)

	price := stats.Cost(stats.MustDefinition(stats.ArchetypeGnoll))
	wantCount := waveBaseBudget / price
	if got := w.EnemyCount(); got != wantCount {
		t.Fatalf("expected %d gnolls from a %d budget at %d apiece, got %d",
			wantCount, waveBaseBudget, price, got)
	}
	w.enemies.forEach(func(e *enemyState) {
		if e.archetype != stats.ArchetypeGnoll {
			t.Fatalf("wave one fielded a %v", e.archetype)
		}
		if !w.inBounds(e.pos) {
			t.Fatalf("spawned %v outside the arena at %v", e.archetype, e.pos)
		}
	})

	started := col.byType(waveslog.EventStarted)
	if len(started) != 1 {
		t.Fatalf("expected one wave start, got %d", len(started))
	}
	payload, ok := started[0].Payload.(waveslog.StartedPayload)
	if !ok {
		t.Fatalf("unexpected started payload %T", started[0].Payload)
	}
	if payload.Wave != 1 || payload.Budget != waveBaseBudget {
		t.Fatalf("wave %d budget %d, want wave 1 budget %d", payload.Wave, payload.Budget, waveBaseBudget)
	}
	if payload.Enemies != wantCount || payload.Spent != wantCount*price {
		t.Fatalf("spent %d on %d enemies, want %d on %d",
			payload.Spent, payload.Enemies, wantCount*price, wantCount)
	}
}

// Clearing a wave starts the intermission clock and the next wave arrives
// with a ramped budget. Admin removal pays no rewards.
func TestClearedWaveRampsNextBudget(t *testing.T) {
	w, col := newWaveWorld(t)
	ctx := context.Background()

	firstWaveTick := durationToTicks(waveFirstDelay)
	stepIdle(w, 1, firstWaveTick)
	if w.EnemyCount() == 0 {
		t.Fatalf("wave one should have spawned enemies")
	}

	var handles []Handle
	w.enemies.forEach(func(e *enemyState) { handles = append(handles, e.handle) })
	for _, h := range handles {
		if !w.DestroyEnemy(ctx, h, "test teardown") {
			t.Fatalf("destroy failed for %v", h)
		}
	}

	clearTick := firstWaveTick + 1
	stepIdle(w, clearTick, clearTick)
	cleared := col.byType(waveslog.EventCleared)
	if len(cleared) != 1 {
		t.Fatalf("expected one cleared event, got %d", len(cleared))
	}
	if payload := cleared[0].Payload.(waveslog.ClearedPayload); payload.Wave != 1 {
		t.Fatalf("cleared wave %d, want 1", payload.Wave)
	}
	if drops := w.DrainRewards(); len(drops) != 0 {
		t.Fatalf("admin removal should pay nothing, got %d drops", len(drops))
	}

	secondWaveTick := clearTick + durationToTicks(waveIntermission)
	stepIdle(w, clearTick+1, secondWaveTick)
	started := col.byType(waveslog.EventStarted)
	if len(started) != 2 {
		t.Fatalf("expected two wave starts, got %d", len(started))
	}
	payload := started[1].Payload.(waveslog.StartedPayload)
	if payload.Wave != 2 || payload.Budget != waveBaseBudget+waveBudgetRamp {
		t.Fatalf("wave %d budget %d, want wave 2 budget %d",
			payload.Wave, payload.Budget, waveBaseBudget+waveBudgetRamp)
	}
	if w.EnemyCount() == 0 {
		t.Fatalf("wave two should have spawned enemies")
	}
}

func TestUnlockScheduleWidensByWave(t *testing.T) {
	cases := []struct {
		wave int
		want []stats.Archetype
	}{
		{1, []stats.Archetype{stats.ArchetypeGnoll}},
		{2, []stats.Archetype{stats.ArchetypeGnoll, stats.ArchetypeArcher}},
		{4, []stats.Archetype{stats.ArchetypeGnoll, stats.ArchetypeViking, stats.ArchetypeArcher, stats.ArchetypePirate}},
		{7, []stats.Archetype{stats.ArchetypeGnoll, stats.ArchetypeOgre, stats.ArchetypeViking, stats.ArchetypeArcher, stats.ArchetypePirate, stats.ArchetypeMage, stats.ArchetypeSpirit}},
	}
	for _, tc := range cases {
		d := newWaveDirector(true)
		d.wave = tc.wave
		got := d.unlockedArchetypes()
		if len(got) != len(tc.want) {
			t.Fatalf("wave %d unlocked %v, want %v", tc.wave, got, tc.want)
		}
		seen := make(map[stats.Archetype]bool, len(got))
		for _, a := range got {
			seen[a] = true
		}
		for _, a := range tc.want {
			if !seen[a] {
				t.Fatalf("wave %d missing %v in %v", tc.wave, a, got)
			}
		}
	}
}

// A pick that cannot fit the remaining budget retries and eventually gives
// up instead of overspending.
func TestPickAffordableRespectsBudget(t *testing.T) {
	d := newWaveDirector(true)
	unlocked := []stats.Archetype{stats.ArchetypeGnoll, stats.ArchetypeOgre}
	gnollPrice := d.costs[stats.ArchetypeGnoll]
	ogrePrice := d.costs[stats.ArchetypeOgre]
	if ogrePrice <= gnollPrice {
		t.Fatalf("test assumes ogres cost more than gnolls (%d vs %d)", ogrePrice, gnollPrice)
	}

	// Always rolling the ogre with only gnoll money left must come up empty.
	rng := &stubRNG{ints: []int{1}}
	if _, ok := d.pickAffordable(rng, unlocked, gnollPrice); ok {
		t.Fatalf("pick should fail when every roll is unaffordable")
	}

	// Two ogre rolls then a gnoll roll lands on the gnoll.
	rng = &stubRNG{ints: []int{1, 1, 0}}
	arch, ok := d.pickAffordable(rng, unlocked, gnollPrice)
	if !ok || arch != stats.ArchetypeGnoll {
		t.Fatalf("expected a gnoll pick after retries, got %v ok=%v", arch, ok)
	}
}

func TestSpawnRingPositionStaysOnRing(t *testing.T) {
	w, _ := newTestWorld(t)
	cx, cy := w.width()/2, w.height()/2
	wantRadius := math.Min(cx, cy) - spawnRingMargin

	rng := &stubRNG{floats: []float64{0, 0.25, 0.5, 0.75, 0.9}}
	for i := 0; i < 5; i++ {
		pos := w.spawnRingPosition(rng)
		if !w.inBounds(pos) {
			t.Fatalf("ring position %v left the arena", pos)
		}
		dx, dy := pos.X-cx, pos.Y-cy
		dist := math.Hypot(dx, dy)
		if math.Abs(dist-wantRadius) > 1e-9 {
			t.Fatalf("ring position %v sits %v from center, want %v", pos, dist, wantRadius)
		}
	}
}
