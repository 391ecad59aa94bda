package ecs

import (
	"fmt"

	"github.com/milk9111/doomlite/ecs/component"
)

func storeFor[T any](w *World, k component.Kind[T]) *store[T] {
	if s, ok := w.stores[k.ID()]; ok {
		return s.(*store[T])
	}
	s := &store[T]{}
	w.stores[k.ID()] = s
	return s
}

func lookup[T any](w *World, k component.Kind[T]) (*store[T], bool) {
	s, ok := w.stores[k.ID()]
	if !ok {
		return nil, false
	}
	return s.(*store[T]), true
}

// Add attaches value to e, overwriting any previous value of the same
// kind. Attaching to a dead entity is a logic error and is rejected, so
// removal can never leave orphaned store entries behind.
func Add[T any](w *World, e Entity, k component.Kind[T], value T) error {
	if !k.Valid() {
		return component.ErrInvalidKind
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add %s to entity %s: %w", k.Name(), e, component.ErrEntityNotAlive)
	}
	storeFor(w, k).set(e, value)
	return nil
}

// Get returns a pointer to e's component of kind k, valid until the next
// attach or remove on that kind's store. Unknown entities and missing
// components report ok=false, never an error.
func Get[T any](w *World, e Entity, k component.Kind[T]) (*T, bool) {
	s, ok := lookup(w, k)
	if !ok {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, k component.Kind[T]) bool {
	s, ok := lookup(w, k)
	return ok && s.has(e)
}

// Remove detaches e's component of kind k, reporting whether a value was
// present.
func Remove[T any](w *World, e Entity, k component.Kind[T]) bool {
	s, ok := lookup(w, k)
	if !ok {
		return false
	}
	return s.remove(e)
}

// ForEach calls fn for every entity holding kind k. The entity list is
// snapshotted before iteration, so fn may attach, detach, create, or
// remove entities without corrupting the walk; entities removed mid-walk
// are skipped.
func ForEach[T any](w *World, k component.Kind[T], fn func(Entity, *T)) {
	s, ok := lookup(w, k)
	if !ok {
		return
	}
	for _, e := range snapshot(s.entities()) {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every entity holding both ka and kb, iterating
// the smaller store and filtering against the other.
func ForEach2[A, B any](w *World, ka component.Kind[A], kb component.Kind[B], fn func(Entity, *A, *B)) {
	sa, okA := lookup(w, ka)
	sb, okB := lookup(w, kb)
	if !okA || !okB {
		return
	}
	seed := sa.entities()
	if sb.size() < sa.size() {
		seed = sb.entities()
	}
	for _, e := range snapshot(seed) {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 calls fn for every entity holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.Kind[A], kb component.Kind[B], kc component.Kind[C], fn func(Entity, *A, *B, *C)) {
	sa, okA := lookup(w, ka)
	sb, okB := lookup(w, kb)
	sc, okC := lookup(w, kc)
	if !okA || !okB || !okC {
		return
	}
	seed := sa.entities()
	if sb.size() < len(seed) {
		seed = sb.entities()
	}
	if sc.size() < len(seed) {
		seed = sc.entities()
	}
	for _, e := range snapshot(seed) {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		c, ok := sc.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
