package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// Codec encodes and decodes one component kind for one entity. Encode
// reports ok=false when the entity doesn't hold the component.
type Codec interface {
	Name() string
	Encode(w *ecs.World, e ecs.Entity) (json.RawMessage, bool, error)
	Decode(w *ecs.World, e ecs.Entity, data json.RawMessage) error
}

// For builds a JSON codec for any component kind whose value type
// marshals with encoding/json. Hosts use it to register their own kinds.
func For[T any](h component.Handle[T]) Codec {
	return kindCodec[T]{kind: h.Kind()}
}

type kindCodec[T any] struct {
	kind component.Kind[T]
}

func (c kindCodec[T]) Name() string {
	return c.kind.Name()
}

func (c kindCodec[T]) Encode(w *ecs.World, e ecs.Entity) (json.RawMessage, bool, error) {
	v, ok := ecs.Get(w, e, c.kind)
	if !ok {
		return nil, false, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c kindCodec[T]) Decode(w *ecs.World, e ecs.Entity, data json.RawMessage) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return ecs.Add(w, e, c.kind, v)
}

// Registry maps stable component names to codecs. Registration order is
// preserved so saves are deterministic.
type Registry struct {
	codecs map[string]Codec
	order  []string
}

func NewRegistry(codecs ...Codec) (*Registry, error) {
	r := &Registry{codecs: make(map[string]Codec)}
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(c Codec) error {
	name := c.Name()
	if name == "" {
		return fmt.Errorf("snapshot: codec has no name")
	}
	if _, ok := r.codecs[name]; ok {
		return fmt.Errorf("snapshot: duplicate codec %q", name)
	}
	r.codecs[name] = c
	r.order = append(r.order, name)
	return nil
}

// Builtin returns a registry covering every built-in component kind.
func Builtin() *Registry {
	r, err := NewRegistry(
		For(component.PositionComponent),
		For(component.VelocityComponent),
		For(component.SpriteComponent),
		For(component.ShootingComponent),
		For(component.HealthComponent),
		For(component.BodyComponent),
		For(component.LifetimeComponent),
	)
	if err != nil {
		// Built-in names are distinct; a collision is a programming error.
		panic(err)
	}
	return r
}
