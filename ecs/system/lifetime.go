package system

import (
	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// LifetimeSystem counts down Lifetime components and removes entities
// whose time has run out.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World, dt float64) error {
	ecs.ForEach(w, component.LifetimeComponent.Kind(), func(e ecs.Entity, lt *component.Lifetime) {
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			w.RemoveEntity(e)
		}
	})
	return nil
}
