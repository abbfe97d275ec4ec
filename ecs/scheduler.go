package ecs

import (
	"fmt"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	GroupCount      int
	EntityCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
// Rate is the system's cadence in calls per second, 0 for frame cadence.
type SystemStats struct {
	Name           string
	Rate           int
	Components     []string
	Tracked        int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Scheduler owns every system and entity of one core. It routes entity
// mutations to every system for reconciliation, runs the frame-cadence
// systems when the host loop signals a frame, and keeps one SystemGroup per
// distinct rate for systems on independent clocks.
//
// The scheduler mutex serializes all structural mutation: entity creation,
// registration, component attach/detach, reconciliation, and command flushes.
// Invocation takes only the per-system locks, so the frame path and cadence
// groups run concurrently with each other and with external mutation. Lock
// order is always scheduler before system.
type Scheduler struct {
	storage *Storage

	mu       sync.Mutex
	main     []*System
	groups   []*SystemGroup
	entities *intmap.Map[EntityID, *Entity]
	order    []EntityID // creation order

	commands *Commands
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		entities: intmap.New[EntityID, *Entity](256),
		commands: newCommands(),
	}
}

// Storage returns the storage this scheduler's entities live in.
func (s *Scheduler) Storage() *Storage { return s.storage }

// Commands returns the deferred-mutation buffer. Routines queue structural
// changes here; the frame path and every group loop flush it after each pass.
func (s *Scheduler) Commands() *Commands { return s.commands }

// AddEntity allocates a new identity, creates an empty entity bound to this
// scheduler, and registers it, so any later Set or Remove reconciles the
// entity against every system. Returns the entity for chained component
// attachment.
func (s *Scheduler) AddEntity() *Entity {
	e := &Entity{id: nextEntityID(), owner: s}

	s.mu.Lock()
	s.entities.Put(e.id, e)
	s.order = append(s.order, e.id)
	s.mu.Unlock()

	return e
}

// Entity returns the live entity with the given id.
func (s *Scheduler) Entity(id EntityID) (*Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities.Get(id)
}

// Entities returns a snapshot of the live entities in creation order.
func (s *Scheduler) Entities() []*Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.entities.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Register builds a frame-cadence system from fn and its declared component
// types, reconciles it against every live entity so a late registration still
// sees existing matches, and appends it to the frame order. Advance runs
// frame-cadence systems in registration order.
func (s *Scheduler) Register(name string, fn Routine, ids ...ComponentID) (*System, error) {
	sys, err := NewSystem(name, fn, ids...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.backfillLocked(sys)
	s.main = append(s.main, sys)
	s.mu.Unlock()

	return sys, nil
}

// RegisterRate builds a system that runs rate times per second on a
// background goroutine. Systems sharing a rate share one group and one
// goroutine; the first registration at a new rate creates the group and
// starts it immediately, and registering at the rate of a stopped group
// restarts it. Like Register, the new system is reconciled against every
// live entity before it first runs.
func (s *Scheduler) RegisterRate(name string, fn Routine, rate int, ids ...ComponentID) (*System, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("system %s: rate must be positive, got %d", name, rate)
	}

	sys, err := NewSystem(name, fn, ids...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.backfillLocked(sys)

	for _, g := range s.groups {
		if g.rate == rate {
			g.add(sys)
			s.mu.Unlock()
			// No-op for a running group; revives the loop of a stopped one.
			g.Start()
			return sys, nil
		}
	}

	group := newSystemGroup(s, rate)
	group.add(sys)
	s.groups = append(s.groups, group)
	s.mu.Unlock()

	group.Start()
	return sys, nil
}

// backfillLocked reconciles a newly built system against every live entity,
// in creation order. Caller holds s.mu.
func (s *Scheduler) backfillLocked(sys *System) {
	for _, id := range s.order {
		if e, ok := s.entities.Get(id); ok {
			sys.Reconcile(e)
		}
	}
}

// notifyLocked reconciles e against every registered system, main and
// grouped. Caller holds s.mu; entity mutation calls this before returning.
func (s *Scheduler) notifyLocked(e *Entity) {
	for _, sys := range s.main {
		sys.Reconcile(e)
	}
	for _, g := range s.groups {
		for _, sys := range g.Systems() {
			sys.Reconcile(e)
		}
	}
}

// Advance runs every frame-cadence system once, in registration order, then
// flushes deferred commands. This is the single call the external frame
// driver makes, once per rendered frame, synchronously from its own thread.
func (s *Scheduler) Advance() {
	s.mu.Lock()
	main := append([]*System(nil), s.main...)
	s.mu.Unlock()

	for _, sys := range main {
		sys.invoke()
	}
	s.flushCommands()
}

func (s *Scheduler) flushCommands() {
	s.commands.flush(s)
}

// flushGroupCommands applies queued structural commands without running
// deferred functions, which are reserved for the frame path.
func (s *Scheduler) flushGroupCommands() {
	s.commands.flushStructural(s)
}

// Groups returns a snapshot of the cadence groups in creation order.
func (s *Scheduler) Groups() []*SystemGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*SystemGroup(nil), s.groups...)
}

// Group returns the cadence group for the given rate, if one exists.
func (s *Scheduler) Group(rate int) (*SystemGroup, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.rate == rate {
			return g, true
		}
	}
	return nil, false
}

// Stop halts every cadence group and waits for each goroutine to exit.
func (s *Scheduler) Stop() {
	for _, g := range s.Groups() {
		g.Stop()
	}
}

// Stats returns statistics about system execution, covering frame-cadence
// systems and every cadence group's members.
func (s *Scheduler) Stats() *SchedulerStats {
	s.mu.Lock()
	main := append([]*System(nil), s.main...)
	groups := append([]*SystemGroup(nil), s.groups...)
	entityCount := len(s.order)
	s.mu.Unlock()

	stats := &SchedulerStats{
		GroupCount:  len(groups),
		EntityCount: entityCount,
	}

	for _, sys := range main {
		stats.Systems = append(stats.Systems, sys.snapshotStats(0))
	}
	for _, g := range groups {
		for _, sys := range g.Systems() {
			stats.Systems = append(stats.Systems, sys.snapshotStats(g.rate))
		}
	}

	stats.SystemCount = len(stats.Systems)
	for _, st := range stats.Systems {
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
