package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/common"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// MovementSystem pushes bodies. Walking agents get an impulse of
// WalkImpulse along their heading; standing agents brake with an impulse of
// -BrakeFactor times their velocity.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PersonComponent, component.PhysicsBodyComponent, func(e ecs.Entity, person *component.Person, body *component.PhysicsBody) {
		if body.Body == nil || body.Static {
			return
		}
		vel := body.Body.Velocity()

		var impulse cp.Vector
		switch person.State.Mode {
		case nav.Walking:
			heading := person.State.Direction
			if steer, ok := ecs.Get(w, e, component.SteeringComponent); ok && !ecs.Has(w, e, component.PlayerTagComponent) {
				heading = steer.Heading
			} else {
				heading = turnHeading(heading, vel)
			}
			impulse = heading.Mult(person.WalkImpulse)
		default:
			impulse = vel.Mult(-person.BrakeFactor)
		}
		if common.IsZero(impulse) {
			return
		}
		body.Body.ApplyImpulseAtWorldPoint(impulse, body.Body.Position())
	})
}

// turnHeading leans past dir away from the current direction of travel so
// hand-steered bodies turn quickly.
func turnHeading(dir, vel cp.Vector) cp.Vector {
	current := common.NormalizeOrZero(vel)
	if common.IsZero(current) {
		return dir
	}
	return common.NormalizeOrZero(dir.Mult(2).Sub(current))
}
