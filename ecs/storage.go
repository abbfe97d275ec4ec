package ecs

// Storage owns the per-type component arenas and the singleton table for one
// ECS core. Entities record which arena slot holds each of their components;
// Storage is where the component data itself lives.
type Storage struct {
	registry   *ComponentRegistry
	arenas     []iArena // indexed by ComponentID, nil until first use
	singletons map[ComponentID]any
}

// NewStorage creates a new storage backed by the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		singletons: make(map[ComponentID]any),
	}
}

// arena returns the arena for id, creating it on first use.
// Panics if the component type was never registered.
func (s *Storage) arena(id ComponentID) iArena {
	if int(id) < len(s.arenas) && s.arenas[id] != nil {
		return s.arenas[id]
	}

	factory := s.registry.getFactory(id)
	if factory == nil {
		panic("component type " + ComponentName(id) + " not registered")
	}

	for int(id) >= len(s.arenas) {
		s.arenas = append(s.arenas, nil)
	}
	s.arenas[id] = factory()
	return s.arenas[id]
}

// StorageStats is a snapshot of what a storage currently holds.
type StorageStats struct {
	ComponentTypeCount int
	TotalComponents    int
	SingletonCount     int
	Breakdown          []ComponentTypeStats
}

// ComponentTypeStats describes the arena occupancy for one component type.
type ComponentTypeStats struct {
	ID    ComponentID
	Name  string
	Count int
}

// CollectStats gathers per-type arena occupancy for inspection tooling.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		SingletonCount: len(s.singletons),
	}

	for id, arena := range s.arenas {
		if arena == nil {
			continue
		}
		stats.ComponentTypeCount++
		stats.TotalComponents += arena.Len()
		stats.Breakdown = append(stats.Breakdown, ComponentTypeStats{
			ID:    ComponentID(id),
			Name:  ComponentName(ComponentID(id)),
			Count: arena.Len(),
		})
	}

	return stats
}
