package ecs

import "errors"

var (
	// ErrDuplicateQueryType rejects a query that names the same component type twice.
	ErrDuplicateQueryType = errors.New("duplicate query type")

	// ErrNoComponent reports removal of a component type an entity does not carry.
	ErrNoComponent = errors.New("entity has no such component")

	// ErrNotTracked reports removal of an entity a system is not tracking.
	ErrNotTracked = errors.New("entity not tracked by system")

	// ErrAlreadyTracked reports an insert of an entity a system already tracks.
	ErrAlreadyTracked = errors.New("entity already tracked by system")

	// ErrNotCompatible reports an insert of an entity missing queried components.
	ErrNotCompatible = errors.New("entity does not match system query")
)
