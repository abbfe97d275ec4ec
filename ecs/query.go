package ecs

import "fmt"

// Query is the ordered set of component types a system requires, declared as
// explicit ComponentID tokens at registration time. The order is load-bearing:
// invocation passes the system its columns in exactly this order.
type Query struct {
	ids []ComponentID
}

// NewQuery builds a query from component type tokens in declaration order.
// A type requested twice rejects the whole query; the offending system is
// never registered.
func NewQuery(ids ...ComponentID) (Query, error) {
	for i, id := range ids {
		for _, prev := range ids[:i] {
			if prev == id {
				return Query{}, fmt.Errorf("component %s requested twice: %w",
					ComponentName(id), ErrDuplicateQueryType)
			}
		}
	}
	return Query{ids: append([]ComponentID(nil), ids...)}, nil
}

// IDs returns the queried component types in declaration order.
func (q Query) IDs() []ComponentID {
	return append([]ComponentID(nil), q.ids...)
}

// Len returns the number of queried component types.
func (q Query) Len() int { return len(q.ids) }
