package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// EntitySpec is the YAML archetype for one level entity type: the bundle
// of components a placement of that type receives. Optional sections are
// pointers; nil means the component is not attached.
type EntitySpec struct {
	Name     string        `yaml:"name"`
	Sprite   string        `yaml:"sprite"`
	Health   int           `yaml:"health"`
	Body     *BodySpec     `yaml:"body"`
	Velocity *VelocitySpec `yaml:"velocity"`
	Shooting *ShootingSpec `yaml:"shooting"`
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type VelocitySpec struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

type ShootingSpec struct {
	Rate        float64 `yaml:"rate"`
	BulletSpeed float64 `yaml:"bullet_speed"`
}

// LoadSpec decodes one embedded (or disk-overridden) YAML spec file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DefaultSpecs loads the built-in entity archetypes, keyed by name.
func DefaultSpecs() (map[string]EntitySpec, error) {
	specs := make(map[string]EntitySpec)
	for _, file := range []string{"player.yaml", "imp.yaml", "turret.yaml"} {
		spec, err := LoadSpec[EntitySpec](file)
		if err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("prefabs: %s: missing name", file)
		}
		specs[spec.Name] = spec
	}
	return specs, nil
}

// Validate rejects specs the systems can't run, such as a shooting rate
// that would divide by zero.
func (s EntitySpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("prefabs: spec missing name")
	}
	if s.Shooting != nil && s.Shooting.Rate <= 0 {
		return fmt.Errorf("prefabs: %s: shooting rate %g: %w", s.Name, s.Shooting.Rate, ecs.ErrInvalidRate)
	}
	return nil
}

// Apply attaches the spec's component bundle to e at the given position.
func (s EntitySpec) Apply(w *ecs.World, e ecs.Entity, at component.Position) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), at); err != nil {
		return err
	}
	if s.Sprite != "" {
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), component.Sprite{Key: s.Sprite}); err != nil {
			return err
		}
	}
	if s.Health > 0 {
		if err := ecs.Add(w, e, component.HealthComponent.Kind(), component.Health{Current: s.Health, Max: s.Health}); err != nil {
			return err
		}
	}
	if s.Body != nil {
		if err := ecs.Add(w, e, component.BodyComponent.Kind(), component.Body{Width: s.Body.Width, Height: s.Body.Height}); err != nil {
			return err
		}
	}
	if s.Velocity != nil {
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), component.Velocity{DX: s.Velocity.DX, DY: s.Velocity.DY}); err != nil {
			return err
		}
	}
	if s.Shooting != nil {
		sh := component.Shooting{Rate: s.Shooting.Rate, BulletSpeed: s.Shooting.BulletSpeed}
		if err := ecs.Add(w, e, component.ShootingComponent.Kind(), sh); err != nil {
			return err
		}
	}
	return nil
}
