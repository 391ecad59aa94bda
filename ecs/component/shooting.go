package component

// Shooting makes an entity fire projectiles. Rate is shots per second and
// must be positive; Cooldown counts down in seconds and resets to 1/Rate
// after each shot; BulletSpeed is the spawned projectile's speed in tile
// units per second.
type Shooting struct {
	Rate        float64 `json:"rate"`
	Cooldown    float64 `json:"cooldown"`
	BulletSpeed float64 `json:"bulletSpeed"`
}

var ShootingComponent = New[Shooting]("shooting")
