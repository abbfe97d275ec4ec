package ecs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/loom/ecs"
)

func TestEntityIdentity(t *testing.T) {
	_, _, sched := newCore()

	first := sched.AddEntity()
	second := sched.AddEntity()

	assert.Greater(t, second.ID(), first.ID())

	got, ok := sched.Entity(first.ID())
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = sched.Entity(ecs.EntityID(1 << 62))
	assert.False(t, ok)
}

func TestEntityComponents(t *testing.T) {
	_, _, sched := newCore()

	e := sched.AddEntity().
		Set(positionID, Position{X: 1, Y: 2}).
		Set(velocityID, Velocity{DX: 3, DY: 4})

	assert.True(t, e.Has(positionID))
	assert.True(t, ecs.Has[Velocity](e))
	assert.False(t, e.Has(healthID))

	pos := ecs.Get[Position](e)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1), pos.X)
	assert.Equal(t, float32(2), pos.Y)

	assert.Equal(t, []ecs.ComponentID{positionID, velocityID}, e.Components())
	assert.Nil(t, ecs.Get[Health](e))
}

func TestEntityReplaceInPlace(t *testing.T) {
	_, _, sched := newCore()

	e := ecs.Set(sched.AddEntity(), Position{X: 1, Y: 1})
	pos := ecs.Get[Position](e)
	require.NotNil(t, pos)

	// Replacing must overwrite the same slot, keeping old pointers live.
	ecs.Set(e, Position{X: 9, Y: 7})
	assert.Equal(t, float32(9), pos.X)
	assert.Equal(t, float32(7), pos.Y)
	assert.Same(t, pos, ecs.Get[Position](e))
}

func TestEntityRemove(t *testing.T) {
	_, _, sched := newCore()

	e := sched.AddEntity().
		Set(positionID, Position{}).
		Set(velocityID, Velocity{})

	require.NoError(t, e.Remove(velocityID))
	assert.False(t, e.Has(velocityID))
	assert.Nil(t, ecs.Get[Velocity](e))

	err := e.Remove(velocityID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrNoComponent)
	assert.Contains(t, err.Error(), "Velocity")

	require.NoError(t, ecs.Remove[Position](e))
	assert.Empty(t, e.Components())
}

// Read accessors must be safe against mutation applied on a cadence
// goroutine's command flush. Toggles Velocity from a rate routine while the
// main goroutine reads; the race detector flags any unlocked access.
func TestEntityConcurrentAccess(t *testing.T) {
	_, _, sched := newCore()
	defer sched.Stop()

	e := sched.AddEntity().Set(positionID, Position{X: 1})

	_, err := sched.RegisterRate("toggler", func(cols ...*ecs.Column) {
		sched.Commands().Remove(e, velocityID)
		sched.Commands().Set(e, velocityID, Velocity{DX: 1})
	}, 200)
	require.NoError(t, err)

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		_ = e.Has(velocityID)
		_ = e.Components()
		_ = e.Value(positionID)
		if p := ecs.Get[Position](e); p != nil {
			assert.Equal(t, float32(1), p.X)
		}
		if got, ok := sched.Entity(e.ID()); ok {
			assert.Same(t, e, got)
		}
	}
}

func TestEntityContractViolations(t *testing.T) {
	type Unregistered struct{ N int }

	_, _, sched := newCore()
	e := sched.AddEntity()

	assert.Panics(t, func() {
		ecs.Set(e, Unregistered{N: 1})
	}, "attaching an unregistered component type must panic")

	assert.Panics(t, func() {
		e.Set(positionID, Velocity{DX: 1})
	}, "attaching a mistyped value must panic")
}
