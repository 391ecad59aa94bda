package component

// Sprite names the image a renderer would draw for an entity. The core
// never draws; the key just rides along for host render layers and
// snapshots.
type Sprite struct {
	Key string `json:"key"`
}

var SpriteComponent = New[Sprite]("sprite")
