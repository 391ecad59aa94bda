package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
	"github.com/milk9111/doomlite/prefabs"
)

// ErrInvalidLevel reports a malformed level payload. A level that fails
// validation creates zero entities; there is no partial population.
var ErrInvalidLevel = errors.New("level: invalid level")

// Level is the flat JSON tile map the engine consumes. Tiles, when
// present, is a row-major grid of length Width*Height; zero is empty.
type Level struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Tiles    []int       `json:"tiles,omitempty"`
	Entities []Placement `json:"entities,omitempty"`
}

// Placement positions one entity of a named archetype type on the grid.
type Placement struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Decode parses and validates a level payload.
func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Load reads and decodes a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if l.Tiles != nil && len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("%w: %d tiles for %dx%d grid", ErrInvalidLevel, len(l.Tiles), l.Width, l.Height)
	}
	for i, p := range l.Entities {
		if p.Type == "" {
			return fmt.Errorf("%w: entity %d has no type", ErrInvalidLevel, i)
		}
		if p.X < 0 || p.Y < 0 || p.X >= float64(l.Width) || p.Y >= float64(l.Height) {
			return fmt.Errorf("%w: entity %d (%s) at %g,%g outside %dx%d grid",
				ErrInvalidLevel, i, p.Type, p.X, p.Y, l.Width, l.Height)
		}
	}
	return nil
}

// Floor is the clamp line for gravity integration: the last tile row.
func (l *Level) Floor() float64 {
	return float64(l.Height - 1)
}

// Tile returns the tile value at x,y, or 0 outside the grid.
func (l *Level) Tile(x, y int) int {
	if l.Tiles == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	return l.Tiles[y*l.Width+x]
}

// Populate creates one entity per placement, applying the matching
// archetype spec. Every placement type is resolved and validated before
// the first entity is created, so a bad placement leaves the world
// untouched.
func (l *Level) Populate(w *ecs.World, specs map[string]prefabs.EntitySpec) error {
	resolved := make([]prefabs.EntitySpec, len(l.Entities))
	for i, p := range l.Entities {
		spec, ok := specs[p.Type]
		if !ok {
			return fmt.Errorf("%w: unknown entity type %q", ErrInvalidLevel, p.Type)
		}
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%w: entity type %q: %v", ErrInvalidLevel, p.Type, err)
		}
		resolved[i] = spec
	}

	for i, p := range l.Entities {
		e := w.CreateEntity()
		if err := resolved[i].Apply(w, e, component.Position{X: p.X, Y: p.Y}); err != nil {
			return fmt.Errorf("level: apply %q: %w", p.Type, err)
		}
	}
	return nil
}
