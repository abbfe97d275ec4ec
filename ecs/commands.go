package ecs

import "sync"

// Commands buffers structural mutations issued while systems are running.
// Routines execute under their system's lock, so attaching or detaching
// components directly from inside one would deadlock against reconciliation;
// they queue the change here instead. The frame path and every group loop
// flush the structural commands after completing a pass, outside any system
// lock; deferred functions are drained by the frame path alone.
type Commands struct {
	mu      sync.Mutex
	spawns  []func(*Entity)
	sets    []setCommand
	removes []removeCommand
	defers  []func()
}

type setCommand struct {
	entity *Entity
	id     ComponentID
	value  any
}

type removeCommand struct {
	entity *Entity
	id     ComponentID
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues creation of a new entity. The build function runs with the
// fresh entity during the flush and may attach components to it.
func (c *Commands) Spawn(build func(*Entity)) {
	c.mu.Lock()
	c.spawns = append(c.spawns, build)
	c.mu.Unlock()
}

// Set queues attaching value as e's component of type id.
func (c *Commands) Set(e *Entity, id ComponentID, value any) {
	c.mu.Lock()
	c.sets = append(c.sets, setCommand{entity: e, id: id, value: value})
	c.mu.Unlock()
}

// Remove queues detaching e's component of type id. A remove that no longer
// applies at flush time is skipped; the buffer reflects intent at queue time,
// not a contract about the entity's state at flush time.
func (c *Commands) Remove(e *Entity, id ComponentID) {
	c.mu.Lock()
	c.removes = append(c.removes, removeCommand{entity: e, id: id})
	c.mu.Unlock()
}

// Defer queues a function for the next frame flush. Unlike the structural
// commands, deferred functions run only on the frame driver's thread, never
// on a cadence goroutine; work that is thread-bound, such as immediate-mode
// UI rendering, belongs here.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	c.defers = append(c.defers, fn)
	c.mu.Unlock()
}

// flush drains the whole buffer: removes, then sets, then spawns, then
// deferred functions. Only the frame path calls this.
func (c *Commands) flush(s *Scheduler) {
	c.mu.Lock()
	spawns := c.spawns
	sets := c.sets
	removes := c.removes
	defers := c.defers
	c.spawns = nil
	c.sets = nil
	c.removes = nil
	c.defers = nil
	c.mu.Unlock()

	c.apply(s, removes, sets, spawns)
	for _, fn := range defers {
		fn()
	}
}

// flushStructural drains the structural commands only, leaving deferred
// functions queued for the next frame flush. Group loops call this after
// each pass.
func (c *Commands) flushStructural(s *Scheduler) {
	c.mu.Lock()
	spawns := c.spawns
	sets := c.sets
	removes := c.removes
	c.spawns = nil
	c.sets = nil
	c.removes = nil
	c.mu.Unlock()

	c.apply(s, removes, sets, spawns)
}

func (c *Commands) apply(s *Scheduler, removes []removeCommand, sets []setCommand, spawns []func(*Entity)) {
	for _, cmd := range removes {
		_ = cmd.entity.Remove(cmd.id) // component may be gone since queued
	}
	for _, cmd := range sets {
		cmd.entity.Set(cmd.id, cmd.value)
	}
	for _, build := range spawns {
		build(s.AddEntity())
	}
}
