package ecs

import (
	"iter"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer extracts the data pointer from an interface value.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}

// Column is one of a system's parallel component containers: index-aligned
// pointers to every component of one type belonging to the system's currently
// matched entities. Routines receive their columns positionally in query
// order; index k refers to the same entity in every column. A routine may
// mutate component contents in place but never resizes a column — inserts and
// removals are the owning System's exclusive responsibility.
type Column struct {
	id   ComponentID
	ptrs []unsafe.Pointer
}

// ID returns the component type this column holds.
func (c *Column) ID() ComponentID { return c.id }

// Len returns the number of matched entities.
func (c *Column) Len() int { return len(c.ptrs) }

func (c *Column) append(p unsafe.Pointer) {
	c.ptrs = append(c.ptrs, p)
}

// removeAt swap-compacts index i out of the column. Every column of a system
// compacts identically, so cross-column alignment holds.
func (c *Column) removeAt(i int) {
	last := len(c.ptrs) - 1
	c.ptrs[i] = c.ptrs[last]
	c.ptrs[last] = nil
	c.ptrs = c.ptrs[:last]
}

// At returns the component at index i as *T. The cast is unchecked: the
// caller's query declaration fixes which column position holds which type.
func At[T any](c *Column, i int) *T {
	return (*T)(c.ptrs[i])
}

// All iterates the column as (index, *T) pairs after validating that the
// column actually holds T. Panics on a type mismatch.
func All[T any](c *Column) iter.Seq2[int, *T] {
	if id := ComponentIDOf[T](); id != c.id {
		panic("column holds " + ComponentName(c.id) + ", not " + ComponentName(id))
	}
	return func(yield func(int, *T) bool) {
		for i, p := range c.ptrs {
			if !yield(i, (*T)(p)) {
				return
			}
		}
	}
}
