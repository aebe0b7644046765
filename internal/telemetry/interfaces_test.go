package telemetry

import (
	"bytes"
	"log"
	"testing"
	"time"
)

func TestWrapLogger(t *testing.T) {
	t.Run("nil logger", func(t *testing.T) {
		logger := WrapLogger(nil)
		logger.Printf("ignored %d", 42)
	})

	t.Run("forwards to logger", func(t *testing.T) {
		var buf bytes.Buffer
		base := log.New(&buf, "", 0)
		logger := WrapLogger(base)
		logger.Printf("hello %s", "world")
		if got := buf.String(); got != "hello world\n" {
			t.Fatalf("unexpected log output: %q", got)
		}
	})
}

func TestCountersSnapshot(t *testing.T) {
	counters := NewCounters()
	counters.AddEnemiesSpawned(3)
	counters.AddAttacksSpawned(2)
	counters.AddHitsApplied(5)
	counters.AddRewardsEmitted(1)
	counters.RecordBroadcast(128, 4)
	counters.RecordStep(7 * time.Millisecond)

	snap := counters.Snapshot()
	if snap.EnemiesSpawned != 3 || snap.AttacksSpawned != 2 || snap.HitsApplied != 5 || snap.RewardsEmitted != 1 {
		t.Fatalf("unexpected counter totals: %+v", snap)
	}
	if snap.BytesSent != 128 || snap.EntitiesSent != 4 {
		t.Fatalf("unexpected broadcast totals: %+v", snap)
	}
	if snap.StepsRun != 1 || snap.LastTickMillis != 7 {
		t.Fatalf("unexpected step stats: %+v", snap)
	}

	// Negative inputs clamp instead of wrapping the unsigned counters.
	counters.RecordBroadcast(-10, -2)
	if got := counters.Snapshot().BytesSent; got != 128 {
		t.Fatalf("expected negative broadcast to clamp, got %d", got)
	}

	var nilCounters *Counters
	nilCounters.AddHitsApplied(1)
	if got := nilCounters.Snapshot(); got != (Snapshot{}) {
		t.Fatalf("expected zero snapshot from nil counters, got %+v", got)
	}
}
