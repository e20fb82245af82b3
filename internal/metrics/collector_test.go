package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpCompletion, 100*time.Millisecond)
	c.RecordTiming(OpCompletion, 300*time.Millisecond)

	snap := c.Snapshot()
	op, ok := snap.Operations[OpCompletion]
	if !ok {
		t.Fatal("completion operation missing from snapshot")
	}
	if op.Count != 2 {
		t.Errorf("count = %d, want 2", op.Count)
	}
	if op.MinTimeMs != 100 || op.MaxTimeMs != 300 {
		t.Errorf("min/max = %d/%d, want 100/300", op.MinTimeMs, op.MaxTimeMs)
	}
	if op.AvgTimeMs != 200 {
		t.Errorf("avg = %f, want 200", op.AvgTimeMs)
	}
}

func TestRecordFailure(t *testing.T) {
	c := NewCollector()

	c.RecordFailure(OpAuditLog)
	c.RecordFailure(OpAuditLog)

	if got := c.Failures(OpAuditLog); got != 2 {
		t.Errorf("Failures = %d, want 2", got)
	}
	if got := c.Failures(OpSynthesis); got != 0 {
		t.Errorf("Failures for untouched op = %d, want 0", got)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	c := NewCollector()

	snap := c.Snapshot()
	if len(snap.Operations) != 0 {
		t.Errorf("expected empty operations, got %d", len(snap.Operations))
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("negative uptime: %f", snap.UptimeSeconds)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.RecordTiming(OpSessionSave, time.Millisecond)
				c.RecordFailure(OpAuditLog)
				_ = c.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.Operations[OpSessionSave].Count != 1000 {
		t.Errorf("count = %d, want 1000", snap.Operations[OpSessionSave].Count)
	}
	if snap.Operations[OpAuditLog].Failures != 1000 {
		t.Errorf("failures = %d, want 1000", snap.Operations[OpAuditLog].Failures)
	}
}
