package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrInvalidKind    = errors.New("ecs: invalid component kind")
)

// ID is the process-wide numeric identifier of a component kind. IDs are
// handed out by an atomic counter, so two kinds can never collide the way
// string tags compared case-insensitively could.
type ID uint32

var nextID atomic.Uint32

// Kind is the compile-time-distinct type tag for components of type T.
// The name is a stable lowercase tag used by snapshot codecs and level
// tooling; it plays no part in identity.
type Kind[T any] struct {
	id   ID
	name string
}

func NewKind[T any](name string) Kind[T] {
	return Kind[T]{id: ID(nextID.Add(1)), name: name}
}

func (k Kind[T]) ID() ID {
	return k.id
}

func (k Kind[T]) Name() string {
	return k.name
}

func (k Kind[T]) Valid() bool {
	return k.id != 0
}

// Handle is what packages export for their component types. Hosts mint
// their own with New to plug host-defined components into the same world.
type Handle[T any] struct {
	kind Kind[T]
}

func New[T any](name string) Handle[T] {
	return Handle[T]{kind: NewKind[T](name)}
}

func (h Handle[T]) Kind() Kind[T] {
	return h.kind
}
