package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// SteeringSystem combines each walking agent's planned direction with
// collision avoidance and personal space. The player steers by hand and is
// skipped.
type SteeringSystem struct {
	tuning *Tuning
}

func NewSteeringSystem(tuning *Tuning) *SteeringSystem {
	return &SteeringSystem{tuning: tuning}
}

func (s *SteeringSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	steerer := nav.NewSteerer(pw, liveBodies{w: w, pw: pw}, s.tuning.Params())

	ecs.ForEach2(w, component.PersonComponent, component.PhysicsBodyComponent, func(e ecs.Entity, person *component.Person, body *component.PhysicsBody) {
		if ecs.Has(w, e, component.PlayerTagComponent) {
			return
		}
		pos, ok := positionOf(w, e)
		if !ok {
			return
		}

		var intended cp.Vector
		if person.State.Mode == nav.Walking {
			intended = person.State.Direction
		}
		out := steerer.Steer(nav.SteerInput{
			Self:     body.ID,
			Position: pos,
			Velocity: body.Velocity(),
			Intended: intended,
		})
		mustAdd(w, e, component.SteeringComponent, &component.Steering{Steering: out}, "steering: store result")
	})
}

// liveBodies reports motion only for bodies whose owner is still alive, so
// a body destroyed earlier in the tick reads as no obstruction.
type liveBodies struct {
	w  *ecs.World
	pw *ecs.PhysicsWorld
}

func (l liveBodies) Motion(id nav.BodyID) (cp.Vector, cp.Vector, bool) {
	owner, ok := l.pw.Owner(id)
	if !ok || !l.w.IsAlive(owner) {
		return cp.Vector{}, cp.Vector{}, false
	}
	return l.pw.Motion(id)
}
