package main

import (
	"math/rand"

	"github.com/plus3/loom/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Acceleration struct {
	AX, AY float32
}

type Health struct {
	Current, Max int
}

type Lifetime struct {
	Remaining float32
}

type Spin struct {
	Angle, Speed float32
}

type Mass struct {
	Value float32
}

type Heat struct {
	Degrees float32
}

type componentSet struct {
	Position     ecs.ComponentID
	Velocity     ecs.ComponentID
	Acceleration ecs.ComponentID
	Health       ecs.ComponentID
	Lifetime     ecs.ComponentID
	Spin         ecs.ComponentID
	Mass         ecs.ComponentID
	Heat         ecs.ComponentID
}

func registerStressComponents(registry *ecs.ComponentRegistry) componentSet {
	return componentSet{
		Position:     ecs.RegisterComponent[Position](registry),
		Velocity:     ecs.RegisterComponent[Velocity](registry),
		Acceleration: ecs.RegisterComponent[Acceleration](registry),
		Health:       ecs.RegisterComponent[Health](registry),
		Lifetime:     ecs.RegisterComponent[Lifetime](registry),
		Spin:         ecs.RegisterComponent[Spin](registry),
		Mass:         ecs.RegisterComponent[Mass](registry),
		Heat:         ecs.RegisterComponent[Heat](registry),
	}
}

// spawnRandomEntity creates an entity with Position plus a random subset of
// the remaining component types.
func spawnRandomEntity(sched *ecs.Scheduler, ids componentSet) {
	e := sched.AddEntity()
	e.Set(ids.Position, Position{X: rand.Float32() * 1000, Y: rand.Float32() * 1000})

	if rand.Intn(2) == 0 {
		e.Set(ids.Velocity, Velocity{DX: rand.Float32()*2 - 1, DY: rand.Float32()*2 - 1})
	}
	if rand.Intn(3) == 0 {
		e.Set(ids.Acceleration, Acceleration{AX: rand.Float32() * 0.1, AY: rand.Float32() * 0.1})
	}
	if rand.Intn(2) == 0 {
		e.Set(ids.Health, Health{Current: 100, Max: 100})
	}
	if rand.Intn(3) == 0 {
		e.Set(ids.Lifetime, Lifetime{Remaining: rand.Float32() * 300})
	}
	if rand.Intn(3) == 0 {
		e.Set(ids.Spin, Spin{Speed: rand.Float32()})
	}
	if rand.Intn(4) == 0 {
		e.Set(ids.Mass, Mass{Value: rand.Float32() * 10})
	}
	if rand.Intn(4) == 0 {
		e.Set(ids.Heat, Heat{Degrees: rand.Float32() * 100})
	}
}

// registerFrameSystems installs the frame-cadence workload.
func registerFrameSystems(sched *ecs.Scheduler, ids componentSet) error {
	if _, err := sched.Register("movement", func(cols ...*ecs.Column) {
		positions, velocities := cols[0], cols[1]
		for i := 0; i < positions.Len(); i++ {
			p := ecs.At[Position](positions, i)
			v := ecs.At[Velocity](velocities, i)
			p.X += v.DX
			p.Y += v.DY
		}
	}, ids.Position, ids.Velocity); err != nil {
		return err
	}

	if _, err := sched.Register("acceleration", func(cols ...*ecs.Column) {
		velocities, accelerations := cols[0], cols[1]
		for i := 0; i < velocities.Len(); i++ {
			v := ecs.At[Velocity](velocities, i)
			a := ecs.At[Acceleration](accelerations, i)
			v.DX += a.AX
			v.DY += a.AY
		}
	}, ids.Velocity, ids.Acceleration); err != nil {
		return err
	}

	if _, err := sched.Register("spin", func(cols ...*ecs.Column) {
		for _, s := range ecs.All[Spin](cols[0]) {
			s.Angle += s.Speed
		}
	}, ids.Spin); err != nil {
		return err
	}

	_, err := sched.Register("lifetime", func(cols ...*ecs.Column) {
		for _, l := range ecs.All[Lifetime](cols[0]) {
			l.Remaining -= 1.0 / 120.0
		}
	}, ids.Lifetime)
	return err
}

// registerRateSystems installs n read-mostly systems at the given cadence.
func registerRateSystems(sched *ecs.Scheduler, ids componentSet, rate, n int) error {
	for i := 0; i < n; i++ {
		name := "cooling"
		routine := func(cols ...*ecs.Column) {
			for _, h := range ecs.All[Heat](cols[0]) {
				h.Degrees *= 0.99
			}
		}
		query := []ecs.ComponentID{ids.Heat}

		if i%2 == 1 {
			name = "regen"
			routine = func(cols ...*ecs.Column) {
				for _, h := range ecs.All[Health](cols[0]) {
					if h.Current < h.Max {
						h.Current++
					}
				}
			}
			query = []ecs.ComponentID{ids.Health}
		}

		if _, err := sched.RegisterRate(name, routine, rate, query...); err != nil {
			return err
		}
	}
	return nil
}
