package ecs

import "math"

// store is a sparse-set keyed by Entity ID: a dense entity/value pair of
// slices plus a sparse index from ID to dense position. Set, Get, and
// Remove are O(1); Remove swap-deletes, so dense order is not stable
// across removals.
type store[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

// sparseIndex maps an entity ID to its sparse slot. IDs whose slot does
// not fit a non-negative int are rejected so a hostile 64-bit ID can
// never index or grow the sparse slice out of range.
func sparseIndex(e Entity) (int, bool) {
	if !e.Valid() || uint64(e) > uint64(math.MaxInt) {
		return 0, false
	}
	return int(e) - 1, true
}

// anyStore is the type-erased surface the World needs to sweep and
// intersect stores without knowing their component type.
type anyStore interface {
	has(e Entity) bool
	removeEntity(e Entity) bool
	entities() []Entity
	size() int
}

func (s *store[T]) has(e Entity) bool {
	if s == nil {
		return false
	}
	i, ok := sparseIndex(e)
	if !ok || i >= len(s.sparse) {
		return false
	}
	idx := s.sparse[i]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// get returns a pointer into dense storage. The pointer stays valid until
// the next set or remove on this store.
func (s *store[T]) get(e Entity) (*T, bool) {
	if !s.has(e) {
		return nil, false
	}
	i, _ := sparseIndex(e)
	return &s.denseValues[s.sparse[i]], true
}

func (s *store[T]) set(e Entity, v T) {
	if s == nil {
		return
	}
	i, ok := sparseIndex(e)
	if !ok {
		return
	}
	if i >= len(s.sparse) {
		grow := i + 1 - len(s.sparse)
		for n := 0; n < grow; n++ {
			s.sparse = append(s.sparse, -1)
		}
	}
	if s.has(e) {
		s.denseValues[s.sparse[i]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[i] = len(s.denseEntities) - 1
}

func (s *store[T]) remove(e Entity) bool {
	if s == nil || !s.has(e) {
		return false
	}
	i, _ := sparseIndex(e)
	idx := s.sparse[i]
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastEntity-1] = idx

	s.denseEntities = s.denseEntities[:last]
	var zero T
	s.denseValues[last] = zero
	s.denseValues = s.denseValues[:last]
	s.sparse[i] = -1
	return true
}

func (s *store[T]) removeEntity(e Entity) bool {
	return s.remove(e)
}

// entities returns the live dense slice. Callers that mutate the store
// while iterating must copy it first; World.Query does.
func (s *store[T]) entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

func (s *store[T]) size() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
