package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/nav"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body, Shape and ID are filled in by the physics system.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	ID     nav.BodyID
	Width  float64
	Height float64
	Mass   float64
	Static bool
}

func (b *PhysicsBody) Velocity() cp.Vector {
	if b == nil || b.Body == nil {
		return cp.Vector{}
	}
	return b.Body.Velocity()
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
