package ecs

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// EntityID is a unique entity identity, assigned from a process-lifetime
// monotonically increasing counter.
type EntityID uint64

var entityIDCounter atomic.Uint64

func nextEntityID() EntityID {
	return EntityID(entityIDCounter.Add(1))
}

// Entity is an identity plus a unique-by-type bundle of components. The
// component data lives in Storage arenas; the entity records the arena slot
// per ComponentID in a sparse index, so lookup, attach, and detach are O(1)
// array operations.
//
// Entities are created by Scheduler.AddEntity, which binds them to their
// scheduler. Set and Remove notify the scheduler before returning, so every
// system re-evaluates the entity against its query on every mutation.
type Entity struct {
	id    EntityID
	slots []int // indexed by ComponentID; -1 = absent
	owner *Scheduler
}

// ID returns the entity's unique identity.
func (e *Entity) ID() EntityID { return e.id }

// Has reports whether the entity currently carries a component of type id.
// Safe to call concurrently with mutation from command flushes.
func (e *Entity) Has(id ComponentID) bool {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	return e.slot(id) >= 0
}

func (e *Entity) slot(id ComponentID) int {
	if id < 0 || int(id) >= len(e.slots) {
		return -1
	}
	return e.slots[id]
}

func (e *Entity) setSlot(id ComponentID, slot int) {
	for int(id) >= len(e.slots) {
		e.slots = append(e.slots, -1)
	}
	e.slots[id] = slot
}

// Set attaches value as the entity's component of type id, replacing any
// existing instance in place, and returns the entity for chaining. Panics if
// the value's concrete type does not match the registered type for id.
func (e *Entity) Set(id ComponentID, value any) *Entity {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	e.setLocked(id, value)
	e.owner.notifyLocked(e)
	return e
}

func (e *Entity) setLocked(id ComponentID, value any) {
	arena := e.owner.storage.arena(id)

	// Replacing overwrites the existing slot so column pointers stay valid.
	if old := e.slot(id); old >= 0 {
		if !arena.Set(old, value) {
			panic("component value does not match registered type " + ComponentName(id))
		}
		return
	}

	slot := arena.Append(value)
	if slot < 0 {
		panic("component value does not match registered type " + ComponentName(id))
	}
	e.setSlot(id, slot)
}

// Remove detaches the entity's component of type id. Removing a component the
// entity does not carry is a contract violation and returns a lookup error
// naming the entity and type.
func (e *Entity) Remove(id ComponentID) error {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	return e.removeLocked(id)
}

func (e *Entity) removeLocked(id ComponentID) error {
	slot := e.slot(id)
	if slot < 0 {
		return fmt.Errorf("entity %d: remove %s: %w", e.id, ComponentName(id), ErrNoComponent)
	}

	// Systems drop their rows before the arena slot is recycled, so no column
	// is left pointing at a reused slot.
	e.slots[id] = -1
	e.owner.notifyLocked(e)
	e.owner.storage.arena(id).Delete(slot)
	return nil
}

// Components returns the ids of the component types the entity currently
// carries, in ascending id order.
func (e *Entity) Components() []ComponentID {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()

	out := make([]ComponentID, 0, len(e.slots))
	for id, slot := range e.slots {
		if slot >= 0 {
			out = append(out, ComponentID(id))
		}
	}
	return out
}

// Value returns the entity's component of type id as an untyped pointer
// value, or nil if absent. Intended for inspection tooling; typed access goes
// through Get.
func (e *Entity) Value(id ComponentID) any {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()

	slot := e.slot(id)
	if slot < 0 {
		return nil
	}
	return e.owner.storage.arena(id).Get(slot)
}

// componentPointer returns the address of the entity's component of type id.
// The entity must carry the component.
func (e *Entity) componentPointer(id ComponentID) unsafe.Pointer {
	v := e.owner.storage.arena(id).Get(e.slot(id))
	if v == nil {
		panic("entity " + fmt.Sprint(e.id) + " has no " + ComponentName(id) + " component")
	}
	return dataPointer(v)
}

// Set attaches value as e's component of its Go type. The type must have been
// registered with the core's ComponentRegistry.
func Set[T any](e *Entity, value T) *Entity {
	return e.Set(ComponentIDOf[T](), value)
}

// Remove detaches e's component of type T.
func Remove[T any](e *Entity) error {
	return e.Remove(ComponentIDOf[T]())
}

// Has reports whether e currently carries a component of type T.
func Has[T any](e *Entity) bool {
	return e.Has(ComponentIDOf[T]())
}

// Get returns a pointer to e's component of type T, or nil if absent. The
// pointer stays valid until the component is removed.
func Get[T any](e *Entity) *T {
	id := ComponentIDOf[T]()

	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()

	slot := e.slot(id)
	if slot < 0 {
		return nil
	}
	v := e.owner.storage.arena(id).Get(slot)
	if v == nil {
		return nil
	}
	return v.(*T)
}
