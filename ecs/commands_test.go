package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/loom/ecs"
)

func TestCommandsDeferredSet(t *testing.T) {
	_, _, sched := newCore()

	sys, err := sched.Register("movement", func(cols ...*ecs.Column) {
		// Routines must not mutate entities directly; queue instead.
	}, positionID, velocityID)
	require.NoError(t, err)

	e := sched.AddEntity().Set(positionID, Position{})
	sched.Commands().Set(e, velocityID, Velocity{DX: 1})

	// Nothing applied until a pass flushes the buffer.
	assert.False(t, e.Has(velocityID))
	assert.Equal(t, 0, sys.Len())

	sched.Advance()

	assert.True(t, e.Has(velocityID))
	assert.Equal(t, 1, sys.Len())
}

func TestCommandsDeferredRemove(t *testing.T) {
	_, _, sched := newCore()

	sys, err := sched.Register("movement", noopRoutine, positionID, velocityID)
	require.NoError(t, err)

	e := sched.AddEntity().
		Set(positionID, Position{}).
		Set(velocityID, Velocity{})
	require.Equal(t, 1, sys.Len())

	sched.Commands().Remove(e, velocityID)
	sched.Advance()

	assert.False(t, e.Has(velocityID))
	assert.Equal(t, 0, sys.Len())

	// Removing a component that is already gone is skipped, not fatal.
	sched.Commands().Remove(e, velocityID)
	sched.Advance()
	assert.Equal(t, 0, sys.Len())
}

func TestCommandsSpawn(t *testing.T) {
	_, _, sched := newCore()

	sys, err := sched.Register("movement", noopRoutine, positionID, velocityID)
	require.NoError(t, err)

	sched.Commands().Spawn(func(e *ecs.Entity) {
		e.Set(positionID, Position{X: 7}).
			Set(velocityID, Velocity{DX: 1})
	})
	assert.Len(t, sched.Entities(), 0)

	sched.Advance()

	entities := sched.Entities()
	require.Len(t, entities, 1)
	assert.Equal(t, float32(7), ecs.Get[Position](entities[0]).X)
	assert.Equal(t, 1, sys.Len(), "spawned entity must be reconciled against systems")
}

func TestCommandsFromInsideRoutine(t *testing.T) {
	_, _, sched := newCore()

	_, err := sched.Register("expiry", func(cols ...*ecs.Column) {
		for _, h := range ecs.All[Health](cols[0]) {
			if h.Current <= 0 {
				// Direct mutation here would deadlock on the system lock.
				target := h
				sched.Commands().Defer(func() {
					for _, e := range sched.Entities() {
						if e.Has(healthID) && ecs.Get[Health](e) == target {
							_ = e.Remove(healthID)
						}
					}
				})
			}
		}
	}, healthID)
	require.NoError(t, err)

	dead := sched.AddEntity().Set(healthID, Health{Current: 0, Max: 100})
	alive := sched.AddEntity().Set(healthID, Health{Current: 60, Max: 100})

	sched.Advance()

	assert.False(t, dead.Has(healthID))
	assert.True(t, alive.Has(healthID))
}

func TestCommandsDeferOrdering(t *testing.T) {
	_, _, sched := newCore()

	var order []string
	sched.Commands().Defer(func() { order = append(order, "a") })
	sched.Commands().Defer(func() { order = append(order, "b") })

	sched.Advance()

	assert.Equal(t, []string{"a", "b"}, order)
}
