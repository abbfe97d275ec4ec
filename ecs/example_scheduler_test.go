package ecs_test

import (
	"fmt"

	"github.com/plus3/loom/ecs"
)

func Example() {
	type position struct{ X, Y float32 }
	type velocity struct{ DX, DY float32 }

	registry := ecs.NewComponentRegistry()
	posID := ecs.RegisterComponent[position](registry)
	velID := ecs.RegisterComponent[velocity](registry)

	sched := ecs.NewScheduler(ecs.NewStorage(registry))

	sched.Register("movement", func(cols ...*ecs.Column) {
		for i := 0; i < cols[0].Len(); i++ {
			p := ecs.At[position](cols[0], i)
			v := ecs.At[velocity](cols[1], i)
			p.X += v.DX
			p.Y += v.DY
		}
	}, posID, velID)

	e := sched.AddEntity().
		Set(posID, position{X: 50, Y: 50}).
		Set(velID, velocity{DX: 2, DY: -1})

	sched.Advance()

	p := ecs.Get[position](e)
	fmt.Printf("%g %g\n", p.X, p.Y)
	// Output: 52 49
}
