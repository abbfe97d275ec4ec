package ecs_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/loom/ecs"
)

func TestGroupCoalescesByRate(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	if _, err := sched.RegisterRate("regen", noopRoutine, 10, healthID); err != nil {
		t.Fatalf("register regen: %v", err)
	}
	if _, err := sched.RegisterRate("decay", noopRoutine, 10, healthID); err != nil {
		t.Fatalf("register decay: %v", err)
	}
	if _, err := sched.RegisterRate("spin", noopRoutine, 30, spinID); err != nil {
		t.Fatalf("register spin: %v", err)
	}

	groups := sched.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	ten, ok := sched.Group(10)
	if !ok {
		t.Fatal("missing rate-10 group")
	}
	if len(ten.Systems()) != 2 {
		t.Fatalf("expected 2 systems in rate-10 group, got %d", len(ten.Systems()))
	}
	if ten.Interval() != 100*time.Millisecond {
		t.Errorf("expected 100ms interval for rate 10, got %v", ten.Interval())
	}

	thirty, ok := sched.Group(30)
	if !ok {
		t.Fatal("missing rate-30 group")
	}
	if len(thirty.Systems()) != 1 {
		t.Fatalf("expected 1 system in rate-30 group, got %d", len(thirty.Systems()))
	}
}

func TestGroupRejectsInvalidRate(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	if _, err := sched.RegisterRate("bad", noopRoutine, 0, healthID); err == nil {
		t.Error("rate 0 must be rejected")
	}
	if _, err := sched.RegisterRate("worse", noopRoutine, -5, healthID); err == nil {
		t.Error("negative rate must be rejected")
	}
}

func TestGroupRunsIndependently(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	var ticks atomic.Int64
	_, err := sched.RegisterRate("ticker", func(cols ...*ecs.Column) {
		ticks.Add(1)
	}, 200)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// The group loop runs on its own goroutine; no Advance calls here.
	deadline := time.After(2 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestGroupStopHandshake(t *testing.T) {
	_, _, sched := newCore()

	var ticks atomic.Int64
	_, err := sched.RegisterRate("ticker", func(cols ...*ecs.Column) {
		ticks.Add(1)
	}, 200)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("group never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	sched.Stop()
	after := ticks.Load()

	group, ok := sched.Group(200)
	if !ok {
		t.Fatal("group disappeared")
	}
	if group.Running() {
		t.Error("group must report stopped after Stop returns")
	}

	// Once Stop has returned, no further invocations may happen.
	time.Sleep(3 * group.Interval())
	if got := ticks.Load(); got != after {
		t.Errorf("group executed after Stop: %d ticks became %d", after, got)
	}
}

func TestGroupAddWhileRunning(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	var first, second atomic.Int64
	if _, err := sched.RegisterRate("first", func(cols ...*ecs.Column) {
		first.Add(1)
	}, 100); err != nil {
		t.Fatalf("register first: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for first.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("first system never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Joining an already-running group must not spawn a second loop.
	if _, err := sched.RegisterRate("second", func(cols ...*ecs.Column) {
		second.Add(1)
	}, 100); err != nil {
		t.Fatalf("register second: %v", err)
	}
	if len(sched.Groups()) != 1 {
		t.Fatalf("expected a single group, got %d", len(sched.Groups()))
	}

	for second.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("second system never joined the loop (%d ticks)", second.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Registering at the rate of a stopped group revives its loop; the new
// system must actually run rather than joining a dead group.
func TestGroupRestartsAfterStop(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	var first, second atomic.Int64
	if _, err := sched.RegisterRate("first", func(cols ...*ecs.Column) {
		first.Add(1)
	}, 100); err != nil {
		t.Fatalf("register first: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for first.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("first system never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	sched.Stop()

	if _, err := sched.RegisterRate("second", func(cols ...*ecs.Column) {
		second.Add(1)
	}, 100); err != nil {
		t.Fatalf("register second: %v", err)
	}

	group, ok := sched.Group(100)
	if !ok {
		t.Fatal("missing rate-100 group")
	}
	if !group.Running() {
		t.Fatal("group must be running again after a post-stop registration")
	}

	for second.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("second system never ran after the group restart")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Group loops apply queued structural commands but must never run deferred
// functions, which are reserved for the frame thread.
func TestGroupLeavesDeferredToFrame(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	var ticks, deferred atomic.Int64
	if _, err := sched.RegisterRate("ticker", func(cols ...*ecs.Column) {
		ticks.Add(1)
	}, 200); err != nil {
		t.Fatalf("register: %v", err)
	}

	e := sched.AddEntity()
	sched.Commands().Set(e, positionID, Position{X: 1})
	sched.Commands().Defer(func() { deferred.Add(1) })

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 2 || !e.Has(positionID) {
		select {
		case <-deadline:
			t.Fatalf("structural command never applied by the group loop (%d ticks)", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if deferred.Load() != 0 {
		t.Fatal("deferred function ran on a cadence goroutine")
	}

	sched.Advance()
	if deferred.Load() != 1 {
		t.Fatalf("expected the frame flush to run the deferred function once, got %d", deferred.Load())
	}
}

func TestGroupSeesCurrentMembership(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	var seen atomic.Int64
	if _, err := sched.RegisterRate("counter", func(cols ...*ecs.Column) {
		seen.Store(int64(cols[0].Len()))
	}, 100, healthID); err != nil {
		t.Fatalf("register: %v", err)
	}

	sched.AddEntity().Set(healthID, Health{Current: 50, Max: 100})
	sched.AddEntity().Set(healthID, Health{Current: 80, Max: 100})

	deadline := time.After(2 * time.Second)
	for seen.Load() != 2 {
		select {
		case <-deadline:
			t.Fatalf("expected the grouped system to see 2 entities, saw %d", seen.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
