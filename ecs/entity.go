package ecs

import (
	"math"
	"strconv"
)

// Entity is an opaque handle naming one game object. It carries no data of
// its own; components attached through a World give it meaning. The zero
// value is the reserved "no entity" sentinel and is never issued.
type Entity uint64

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// entityStore issues monotonically increasing entity IDs and tracks the
// live set. IDs start at 1 and are never recycled, so a stale handle can
// never silently name a different entity.
type entityStore struct {
	next  Entity
	alive map[Entity]struct{}
}

func (s *entityStore) create() Entity {
	if s.alive == nil {
		s.alive = make(map[Entity]struct{})
	}
	s.next++
	e := s.next
	s.alive[e] = struct{}{}
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if _, ok := s.alive[e]; !ok {
		return false
	}
	delete(s.alive, e)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	_, ok := s.alive[e]
	return ok
}

// restore re-registers a previously issued entity, keeping the ID cursor
// ahead of it. Used by snapshot loaders rebuilding a saved world. IDs the
// sparse stores cannot index are rejected, so untrusted save data can
// never smuggle in an entity the rest of the core chokes on.
func (s *entityStore) restore(e Entity) bool {
	if !e.Valid() || uint64(e) > uint64(math.MaxInt) {
		return false
	}
	if s.alive == nil {
		s.alive = make(map[Entity]struct{})
	}
	if _, ok := s.alive[e]; ok {
		return false
	}
	s.alive[e] = struct{}{}
	if e > s.next {
		s.next = e
	}
	return true
}

// reserve guarantees the next issued ID is at least next.
func (s *entityStore) reserve(next Entity) {
	if next > s.next+1 {
		s.next = next - 1
	}
}

func (s *entityStore) count() int {
	return len(s.alive)
}
