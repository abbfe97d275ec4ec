package ecs

import (
	"fmt"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

// Routine is the transformation a system applies each time it runs. It
// receives one live column per queried component type, positionally in query
// order.
type Routine func(cols ...*Column)

// System pairs a routine with its query and the live, index-aligned columns
// of matched components. Membership is maintained incrementally: the
// scheduler reconciles every entity mutation against every system, so the
// columns always hold exactly the components of currently-matching entities
// and no full rebuild ever happens.
//
// The system's mutex is held for the duration of both reconciliation and
// invocation; the scheduler lock is never acquired while it is held.
type System struct {
	name  string
	query Query
	fn    Routine

	mu       sync.Mutex
	cols     []*Column
	entities []EntityID
	index    *intmap.Map[EntityID, int] // entity -> row, O(1) removal

	stats systemStats
}

type systemStats struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// NewSystem builds a system from a routine and its declared component types.
// Fails if the same component type is declared twice.
func NewSystem(name string, fn Routine, ids ...ComponentID) (*System, error) {
	query, err := NewQuery(ids...)
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", name, err)
	}

	cols := make([]*Column, query.Len())
	for i, id := range query.ids {
		cols[i] = &Column{id: id}
	}

	return &System{
		name:  name,
		query: query,
		fn:    fn,
		cols:  cols,
		index: intmap.New[EntityID, int](64),
		stats: systemStats{minDuration: time.Duration(1<<63 - 1)},
	}, nil
}

// Name returns the name the system was registered under.
func (s *System) Name() string { return s.name }

// Query returns the system's declared query.
func (s *System) Query() Query { return s.query }

// Len returns the number of currently matched entities.
func (s *System) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// Tracked returns a snapshot of the matched entity ids, in row order.
func (s *System) Tracked() []EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EntityID(nil), s.entities...)
}

// Matches reports whether the entity carries every queried component type.
// Pure predicate, no side effects. The scheduler calls this while holding its
// own lock during reconciliation, so the slot reads here stay unsynchronized;
// external callers must not race it against entity mutation.
func (s *System) Matches(e *Entity) bool {
	for _, id := range s.query.ids {
		if e.slot(id) < 0 {
			return false
		}
	}
	return true
}

// Insert appends the entity's queried components to the parallel columns and
// its id to the entity list; the new entry is the last row of every column.
// The entity must match the query and must not already be tracked.
func (s *System) Insert(e *Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(e)
}

func (s *System) insertLocked(e *Entity) error {
	if _, ok := s.index.Get(e.id); ok {
		return fmt.Errorf("system %s: entity %d: %w", s.name, e.id, ErrAlreadyTracked)
	}
	if !s.Matches(e) {
		return fmt.Errorf("system %s: entity %d: %w", s.name, e.id, ErrNotCompatible)
	}

	for i, id := range s.query.ids {
		s.cols[i].append(e.componentPointer(id))
	}
	s.index.Put(e.id, len(s.entities))
	s.entities = append(s.entities, e.id)
	return nil
}

// Remove drops the entity's row from every column via swap compaction; all
// columns compact identically so cross-column alignment holds. Removing an
// entity the system is not tracking is a contract violation and returns a
// lookup error.
func (s *System) Remove(id EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

func (s *System) removeLocked(id EntityID) error {
	row, ok := s.index.Get(id)
	if !ok {
		return fmt.Errorf("system %s: entity %d: %w", s.name, id, ErrNotTracked)
	}

	for _, col := range s.cols {
		col.removeAt(row)
	}

	last := len(s.entities) - 1
	moved := s.entities[last]
	s.entities[row] = moved
	s.entities = s.entities[:last]

	s.index.Del(id)
	if moved != id {
		s.index.Put(moved, row)
	}
	return nil
}

// Reconcile incrementally re-evaluates one entity against this system:
// inserts it if it now matches, removes it if it no longer does, and
// otherwise leaves the columns untouched. Idempotent; the scheduler calls it
// on every entity mutation, so membership self-heals as components come and
// go over an entity's life.
func (s *System) Reconcile(e *Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, tracked := s.index.Get(e.id)
	matches := s.Matches(e)

	switch {
	case matches && !tracked:
		_ = s.insertLocked(e)
	case !matches && tracked:
		_ = s.removeLocked(e.id)
	}
}

// invoke runs the routine against the current columns, recording timing.
func (s *System) invoke() {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.fn(s.cols...)
	duration := time.Since(start)

	s.stats.executionCount++
	s.stats.lastDuration = duration
	s.stats.totalDuration += duration
	if duration < s.stats.minDuration {
		s.stats.minDuration = duration
	}
	if duration > s.stats.maxDuration {
		s.stats.maxDuration = duration
	}
}

func (s *System) snapshotStats(rate int) SystemStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	avg := time.Duration(0)
	min := time.Duration(0)
	if s.stats.executionCount > 0 {
		avg = s.stats.totalDuration / time.Duration(s.stats.executionCount)
		min = s.stats.minDuration
	}

	components := make([]string, 0, s.query.Len())
	for _, id := range s.query.ids {
		components = append(components, ComponentName(id))
	}

	return SystemStats{
		Name:           s.name,
		Rate:           rate,
		Components:     components,
		Tracked:        len(s.entities),
		ExecutionCount: s.stats.executionCount,
		MinDuration:    min,
		MaxDuration:    s.stats.maxDuration,
		AvgDuration:    avg,
		LastDuration:   s.stats.lastDuration,
		TotalDuration:  s.stats.totalDuration,
	}
}
