package system

import (
	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// HealthSystem culls entities whose hit points have reached zero.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Update(w *ecs.World, dt float64) error {
	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.Current <= 0 {
			w.RemoveEntity(e)
		}
	})
	return nil
}
