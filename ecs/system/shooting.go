package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/doomlite/ecs"
	"github.com/milk9111/doomlite/ecs/component"
)

// ShootingSystem counts down every Shooting cooldown and spawns a
// projectile when it reaches zero. The projectile copies the shooter's
// Position, takes its Velocity from BulletSpeed, and carries a Lifetime
// so spent shots expire. After each shot the cooldown resets to 1/Rate.
//
// Entities with a non-positive Rate are skipped and reported; the
// division by Rate is otherwise unguarded. Shooters without a Position
// still cool down but have nowhere to spawn from, so no projectile
// appears.
type ShootingSystem struct {
	ProjectileLifetime float64
	ProjectileSprite   string
}

func NewShootingSystem(projectileLifetime float64) *ShootingSystem {
	return &ShootingSystem{
		ProjectileLifetime: projectileLifetime,
		ProjectileSprite:   "bullet",
	}
}

func (s *ShootingSystem) Update(w *ecs.World, dt float64) error {
	var errs []error

	ecs.ForEach(w, component.ShootingComponent.Kind(), func(e ecs.Entity, sh *component.Shooting) {
		if sh.Rate <= 0 {
			errs = append(errs, fmt.Errorf("entity %s: rate %g: %w", e, sh.Rate, ecs.ErrInvalidRate))
			return
		}

		sh.Cooldown -= dt
		if sh.Cooldown > 0 {
			return
		}

		if pos, ok := ecs.Get(w, e, component.PositionComponent.Kind()); ok {
			if err := s.spawnProjectile(w, *pos, sh.BulletSpeed); err != nil {
				errs = append(errs, fmt.Errorf("entity %s: %w", e, err))
			}
		}
		sh.Cooldown = 1 / sh.Rate
	})

	return errors.Join(errs...)
}

func (s *ShootingSystem) spawnProjectile(w *ecs.World, at component.Position, speed float64) error {
	p := w.CreateEntity()
	if err := ecs.Add(w, p, component.PositionComponent.Kind(), at); err != nil {
		return err
	}
	if err := ecs.Add(w, p, component.VelocityComponent.Kind(), component.Velocity{DX: speed}); err != nil {
		return err
	}
	if s.ProjectileSprite != "" {
		if err := ecs.Add(w, p, component.SpriteComponent.Kind(), component.Sprite{Key: s.ProjectileSprite}); err != nil {
			return err
		}
	}
	if s.ProjectileLifetime > 0 {
		if err := ecs.Add(w, p, component.LifetimeComponent.Kind(), component.Lifetime{Remaining: s.ProjectileLifetime}); err != nil {
			return err
		}
	}
	return nil
}
