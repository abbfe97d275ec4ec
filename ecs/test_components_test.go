package ecs_test

import "github.com/plus3/loom/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type Spin struct {
	Angle float32
}

var (
	positionID = ecs.ComponentIDOf[Position]()
	velocityID = ecs.ComponentIDOf[Velocity]()
	healthID   = ecs.ComponentIDOf[Health]()
	nameID     = ecs.ComponentIDOf[Name]()
	spinID     = ecs.ComponentIDOf[Spin]()
)

// newCore builds a registry with the common component types registered, plus
// a storage and scheduler on top of it.
func newCore() (*ecs.ComponentRegistry, *ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Spin](registry)

	storage := ecs.NewStorage(registry)
	return registry, storage, ecs.NewScheduler(storage)
}

func noopRoutine(cols ...*ecs.Column) {}
