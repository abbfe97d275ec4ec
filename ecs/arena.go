package ecs

import "iter"

// iArena is an interface for a type-erased per-component-type arena.
type iArena interface {
	Append(item any) int
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

const arenaBlockSize = 64

// genericArena stores components of a specific type T in fixed-size blocks.
// Each block is its own heap allocation, so growing the block list never
// moves component data and a pointer into a slot stays valid until the slot
// is deleted. Deleted slots go on a free list and are recycled.
type genericArena[T any] struct {
	blocks    []*[arenaBlockSize]T
	filled    []*[arenaBlockSize]bool
	freeSlots []int
	nextIndex int
}

func (a *genericArena[T]) concrete(item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	if val, ok := item.(T); ok {
		return val, true
	}
	var zero T
	return zero, false
}

// Append adds a component to the arena and returns its slot index, or -1 if
// the item's type does not match T.
func (a *genericArena[T]) Append(item any) int {
	concreteItem, ok := a.concrete(item)
	if !ok {
		return -1
	}

	if len(a.freeSlots) > 0 {
		index := a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]

		blockIdx := index / arenaBlockSize
		slotIdx := index % arenaBlockSize

		a.blocks[blockIdx][slotIdx] = concreteItem
		a.filled[blockIdx][slotIdx] = true
		return index
	}

	index := a.nextIndex
	a.nextIndex++

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		a.blocks = append(a.blocks, new([arenaBlockSize]T))
		a.filled = append(a.filled, new([arenaBlockSize]bool))
	}

	a.blocks[blockIdx][slotIdx] = concreteItem
	a.filled[blockIdx][slotIdx] = true
	return index
}

// Set overwrites the component at the given slot in place, keeping every
// pointer to the slot valid. Returns false if the slot is empty or the item's
// type does not match T.
func (a *genericArena[T]) Set(index int, item any) bool {
	concreteItem, ok := a.concrete(item)
	if !ok || !a.Has(index) {
		return false
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	a.blocks[blockIdx][slotIdx] = concreteItem
	return true
}

// Get returns a pointer to the component at the given slot.
func (a *genericArena[T]) Get(index int) any {
	if index < 0 {
		return nil
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		return nil
	}

	if !a.filled[blockIdx][slotIdx] {
		return nil
	}

	return &a.blocks[blockIdx][slotIdx]
}

// Delete marks a component slot as empty and queues it for reuse.
func (a *genericArena[T]) Delete(index int) {
	if index < 0 {
		return
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		return
	}

	if a.filled[blockIdx][slotIdx] {
		a.filled[blockIdx][slotIdx] = false
		var zero T
		a.blocks[blockIdx][slotIdx] = zero
		a.freeSlots = append(a.freeSlots, index)
	}
}

// Has checks if a component exists at the given slot.
func (a *genericArena[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if blockIdx >= len(a.blocks) {
		return false
	}

	return a.filled[blockIdx][slotIdx]
}

// Len returns the number of live components in the arena.
func (a *genericArena[T]) Len() int {
	return a.nextIndex - len(a.freeSlots)
}

func (a *genericArena[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < a.nextIndex; i++ {
			blockIdx := i / arenaBlockSize
			slotIdx := i % arenaBlockSize

			if blockIdx >= len(a.filled) {
				continue
			}

			if a.filled[blockIdx][slotIdx] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
