// Package snapshot serializes a world to flat JSON and back. It walks
// entities through the world's public enumeration surface, so it needs no
// access to store internals; component kinds participate by registering a
// codec under their stable name.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/milk9111/doomlite/ecs"
)

// Version is the snapshot envelope version this package reads and writes.
const Version = 1

var ErrCorrupt = errors.New("snapshot: corrupted snapshot")

type envelope struct {
	Version  int                                   `json:"version"`
	NextID   uint64                                `json:"next_id"`
	Entities map[string]map[string]json.RawMessage `json:"entities"`
}

// Save encodes every live entity and each of its registered components.
// Output is deterministic: entities ascend by ID and component names are
// ordered by registration.
func (r *Registry) Save(w *ecs.World) ([]byte, error) {
	ents := w.Entities()
	sort.Slice(ents, func(i, j int) bool { return ents[i] < ents[j] })

	env := envelope{
		Version:  Version,
		NextID:   uint64(w.Cursor()) + 1,
		Entities: make(map[string]map[string]json.RawMessage, len(ents)),
	}

	for _, e := range ents {
		comps := make(map[string]json.RawMessage)
		for _, name := range r.order {
			raw, ok, err := r.codecs[name].Encode(w, e)
			if err != nil {
				return nil, fmt.Errorf("snapshot: encode %s on entity %s: %w", name, e, err)
			}
			if ok {
				comps[name] = raw
			}
		}
		env.Entities[e.String()] = comps
	}

	return json.MarshalIndent(env, "", "  ")
}

// Load rebuilds a world from a snapshot. The world is built fresh and
// only returned on success, so a corrupted payload can never leave a
// half-restored world behind.
func (r *Registry) Load(data []byte) (*ecs.World, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, env.Version)
	}
	if env.Entities == nil {
		return nil, fmt.Errorf("%w: missing entities", ErrCorrupt)
	}
	if env.NextID == 0 || env.NextID > math.MaxInt {
		return nil, fmt.Errorf("%w: next_id %d", ErrCorrupt, env.NextID)
	}

	w := ecs.NewWorld()
	for idStr, comps := range env.Entities {
		id, err := strconv.ParseUint(idStr, 10, 64)
		// every saved id predates the saved cursor, so anything at or
		// past next_id is forged
		if err != nil || id == 0 || id >= env.NextID {
			return nil, fmt.Errorf("%w: entity id %q", ErrCorrupt, idStr)
		}
		e := ecs.Entity(id)
		if err := w.Restore(e); err != nil {
			return nil, fmt.Errorf("%w: duplicate entity %s", ErrCorrupt, e)
		}
		for name, raw := range comps {
			codec, ok := r.codecs[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown component %q", ErrCorrupt, name)
			}
			if err := codec.Decode(w, e, raw); err != nil {
				return nil, fmt.Errorf("%w: decode %s on entity %s: %v", ErrCorrupt, name, e, err)
			}
		}
	}

	w.Reserve(ecs.Entity(env.NextID))
	return w, nil
}
