package ecs

// AddSingleton stores a single instance of T that is not associated with any
// entity, replacing any previous instance. Returns a stable pointer to it.
func AddSingleton[T any](s *Storage, value T) *T {
	ptr := &value
	s.singletons[ComponentIDOf[T]()] = ptr
	return ptr
}

// GetSingleton returns the singleton instance of T, or nil if none was added.
func GetSingleton[T any](s *Storage) *T {
	if v, ok := s.singletons[ComponentIDOf[T]()]; ok {
		return v.(*T)
	}
	return nil
}

// Singleton provides cached access to a single component instance that is not
// associated with any entity. Use this for global state shared by systems,
// such as configuration or input capture flags.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton creates a Singleton accessor for the given storage. If
// initializer is provided and the singleton doesn't exist in storage, it is
// created with the initializer value; otherwise a zero value is used. The
// singleton is guaranteed to exist in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	ptr := GetSingleton[T](storage)
	if ptr == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		ptr = AddSingleton(storage, value)
	}
	return &Singleton[T]{
		storage: storage,
		ptr:     ptr,
	}
}

// Get returns a pointer to the singleton instance.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.ptr = GetSingleton[T](s.storage)
	}
	return s.ptr
}
