package ecs

import (
	"reflect"
	"sync"
)

// ComponentID is a stable integer identity for a component type, assigned
// once per process on first use. Queries, entity slot indices, and arenas all
// key off this id; reflection is used only here, to map a Go type to its id
// and record a debug name.
type ComponentID int32

var typeTable = struct {
	mu    sync.Mutex
	ids   map[reflect.Type]ComponentID
	names []string
}{ids: make(map[reflect.Type]ComponentID)}

// ComponentIDOf returns the process-wide ComponentID for T, assigning one on
// first use.
func ComponentIDOf[T any]() ComponentID {
	t := reflect.TypeFor[T]()
	typeTable.mu.Lock()
	defer typeTable.mu.Unlock()
	if id, ok := typeTable.ids[t]; ok {
		return id
	}
	id := ComponentID(len(typeTable.names))
	typeTable.ids[t] = id
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	typeTable.names = append(typeTable.names, name)
	return id
}

// ComponentName returns the debug name recorded for id, or "?" if the id was
// never assigned.
func ComponentName(id ComponentID) string {
	typeTable.mu.Lock()
	defer typeTable.mu.Unlock()
	if id >= 0 && int(id) < len(typeTable.names) {
		return typeTable.names[id]
	}
	return "?"
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS cores to coexist without interference.
type ComponentRegistry struct {
	factories map[ComponentID]func() iArena
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[ComponentID]func() iArena),
	}
}

// RegisterComponent registers T with the given registry and returns its
// ComponentID. This must be called for each component type before it can be
// attached to an entity; the returned id is the token systems declare their
// queries with.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	id := ComponentIDOf[T]()
	r.factories[id] = func() iArena {
		return &genericArena[T]{}
	}
	return id
}

// getFactory returns the arena factory for a given component id.
// Returns nil if the id is not registered.
func (r *ComponentRegistry) getFactory(id ComponentID) func() iArena {
	return r.factories[id]
}
