package component

// Lifetime expires an entity after Remaining seconds. Projectiles carry
// one so missed shots don't pile up in the world forever.
type Lifetime struct {
	Remaining float64 `json:"remaining"`
}

var LifetimeComponent = New[Lifetime]("lifetime")
