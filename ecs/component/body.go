package component

// Body is an entity's collision footprint in tile units. The core only
// carries it; host collision layers interpret it.
type Body struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var BodyComponent = New[Body]("body")
