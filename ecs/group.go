package ecs

import (
	"sync"
	"time"
)

// SystemGroup is a cadence bucket: every member system runs on the group's
// single background goroutine at a fixed rate, independent of the frame loop
// and of every other group. At most one group exists per distinct rate; the
// scheduler coalesces registrations.
type SystemGroup struct {
	rate     int
	interval time.Duration
	sched    *Scheduler

	mu       sync.Mutex
	systems  []*System
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

func newSystemGroup(sched *Scheduler, rate int) *SystemGroup {
	return &SystemGroup{
		rate:     rate,
		interval: time.Second / time.Duration(rate),
		sched:    sched,
	}
}

// Rate returns the group's cadence in calls per second.
func (g *SystemGroup) Rate() int { return g.rate }

// Interval returns the fixed wait between iterations.
func (g *SystemGroup) Interval() time.Duration { return g.interval }

// Systems returns a snapshot of the member systems in membership order.
func (g *SystemGroup) Systems() []*System {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*System(nil), g.systems...)
}

// Running reports whether the group's goroutine is live.
func (g *SystemGroup) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// add appends a member system; it takes effect on the group's next iteration,
// with no immediate invocation.
func (g *SystemGroup) add(sys *System) {
	g.mu.Lock()
	g.systems = append(g.systems, sys)
	g.mu.Unlock()
}

// Start spawns the group's execution goroutine. Each iteration runs every
// member once in membership order, flushes deferred commands, then sleeps the
// nominal interval. The sleep is a fixed wait, not a ticker: an iteration
// that outruns the interval degrades the effective cadence rather than being
// compensated for.
func (g *SystemGroup) Start() {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.stopChan = make(chan struct{})
	g.done = make(chan struct{})
	stop, done := g.stopChan, g.done
	g.mu.Unlock()

	go g.loop(stop, done)
}

func (g *SystemGroup) loop(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		for _, sys := range g.Systems() {
			sys.invoke()
		}
		g.sched.flushGroupCommands()

		select {
		case <-stop:
			return
		case <-time.After(g.interval):
		}
	}
}

// Stop signals the goroutine and waits for it to exit. The signal is observed
// at iteration boundaries, never mid-iteration, so Stop can block for up to
// one interval before the handshake completes.
func (g *SystemGroup) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	stop, done := g.stopChan, g.done
	g.mu.Unlock()

	close(stop)
	<-done
}
