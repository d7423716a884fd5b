package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/nav"
)

// Door is an entry point on a building's edge. Outward is the unit normal
// of the edge it sits on.
type Door struct {
	Name     string
	Position cp.Vector
	Outward  cp.Vector
}

// Spawn returns the point offset units outside the door.
func (d Door) Spawn(offset float64) cp.Vector {
	return d.Position.Add(d.Outward.Mult(offset))
}

type Building struct {
	Name   string
	Bounds nav.AABB
	Doors  []Door
	Color  color.Color
}

var BuildingComponent = NewComponent[Building]()

// Road is a decorative polyline drawn under everything else.
type Road struct {
	Points []cp.Vector
	Loop   bool
	Width  float64
}

var RoadComponent = NewComponent[Road]()
