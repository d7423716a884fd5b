package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// PathLine is the remaining route of an agent, drawn as a polyline from
// the agent through its waypoints.
type PathLine struct {
	Points []cp.Vector
	Width  float32
	Color  color.Color
}

var PathLineComponent = NewComponent[PathLine]()
