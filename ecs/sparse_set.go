package ecs

// storage is the type-erased view the world needs to clean up after a
// destroyed entity.
type storage interface {
	drop(e Entity) bool
	size() int
}

// sparseSet stores one component type densely, indexed by entity slot.
// Pointers returned by get stay valid until the next set or drop on the
// same set.
type sparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id == 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return &s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) drop(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet[T]) size() int {
	return len(s.dense)
}

// entities returns a copy of the dense entity list so callers may mutate
// the set while iterating.
func (s *sparseSet[T]) entities() []Entity {
	return append([]Entity(nil), s.dense...)
}
