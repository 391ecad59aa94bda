package ecs

import (
	"github.com/milk9111/doomlite/ecs/component"
)

// World owns the entity allocator and one component store per kind.
// Stores are created lazily on first attach. A World is single-threaded
// by design: it holds no locks, and one goroutine (normally the tick
// scheduler driving it) must own all access.
type World struct {
	entities entityStore
	stores   map[component.ID]anyStore
}

func NewWorld() *World {
	return &World{
		stores: make(map[component.ID]anyStore),
	}
}

// CreateEntity allocates a fresh entity with no components attached.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// RemoveEntity deletes the entity from the live set and purges it from
// every store, so no orphaned component values remain. Removing an
// entity twice is a no-op.
func (w *World) RemoveEntity(e Entity) {
	if !w.entities.destroy(e) {
		return
	}
	for _, s := range w.stores {
		s.removeEntity(e)
	}
}

// IsAlive reports whether e names a live entity in this world.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns a snapshot of all live entities, in no defined order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.entities.count())
	for e := range w.entities.alive {
		out = append(out, e)
	}
	return out
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return w.entities.count()
}

// Restore re-registers a previously issued entity ID, for snapshot
// loaders rebuilding a saved world. The allocator cursor advances past
// the restored ID so it can never be issued again.
func (w *World) Restore(e Entity) error {
	if !w.entities.restore(e) {
		return component.ErrEntityNotAlive
	}
	return nil
}

// Reserve guarantees the next created entity ID is at least next.
func (w *World) Reserve(next Entity) {
	w.entities.reserve(next)
}

// Cursor returns the highest entity ID issued so far. Snapshot savers
// persist it so a restored world never reissues an ID that was used and
// removed before the save.
func (w *World) Cursor() Entity {
	return w.entities.next
}

// Query returns the entities present in every named store: a set
// intersection seeded from the smallest store and filtered against the
// rest. The result is a fresh slice, safe to hold while systems mutate
// the world, and its order is unspecified. An empty kind list or a kind
// with no store yields an empty result.
func (w *World) Query(kinds ...component.ID) []Entity {
	if len(kinds) == 0 {
		return nil
	}

	seed := -1
	stores := make([]anyStore, len(kinds))
	for i, id := range kinds {
		s, ok := w.stores[id]
		if !ok || s.size() == 0 {
			return nil
		}
		stores[i] = s
		if seed < 0 || s.size() < stores[seed].size() {
			seed = i
		}
	}

	out := make([]Entity, 0, stores[seed].size())
outer:
	for _, e := range stores[seed].entities() {
		for i, s := range stores {
			if i == seed {
				continue
			}
			if !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
