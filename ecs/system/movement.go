package system

import (
	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// MovementSystem integrates Position from Velocity for every entity that
// has both. Use it for worlds without gravity; GravitySystem does its own
// integration and the two should not both drive the same entities.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World, dt float64) error {
	if dt == 0 {
		return nil
	}

	ecs.ForEach2(w, component.PositionComponent.Kind(), component.VelocityComponent.Kind(),
		func(_ ecs.Entity, pos *component.Position, vel *component.Velocity) {
			pos.X += vel.DX * dt
			pos.Y += vel.DY * dt
		})
	return nil
}
