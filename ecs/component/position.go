package component

// Position is an entity's location in level space, in tile units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var PositionComponent = New[Position]("position")
