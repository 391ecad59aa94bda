package component

// Health tracks hit points. Entities at or below zero are culled by the
// health system.
type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

var HealthComponent = New[Health]("health")
