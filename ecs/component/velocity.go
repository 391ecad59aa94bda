package component

// Velocity is an entity's rate of change of Position, per second.
type Velocity struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

var VelocityComponent = New[Velocity]("velocity")
