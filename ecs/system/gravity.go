package system

import (
	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// GravitySystem accelerates Velocity.DY by a constant, integrates
// Position from Velocity, then clamps Position.Y to the floor. The clamp
// runs after integration, never before, so an entity can't sink below the
// floor within a tick; vertical velocity zeroes on contact.
type GravitySystem struct {
	Accel float64
	Floor float64
}

func NewGravitySystem(accel, floor float64) *GravitySystem {
	return &GravitySystem{Accel: accel, Floor: floor}
}

func (s *GravitySystem) Update(w *ecs.World, dt float64) error {
	if dt == 0 {
		return nil
	}

	ecs.ForEach2(w, component.PositionComponent.Kind(), component.VelocityComponent.Kind(),
		func(_ ecs.Entity, pos *component.Position, vel *component.Velocity) {
			vel.DY += s.Accel * dt
			pos.X += vel.DX * dt
			pos.Y += vel.DY * dt
			if pos.Y > s.Floor {
				pos.Y = s.Floor
				vel.DY = 0
			}
		})
	return nil
}
