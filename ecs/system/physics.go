package system

import (
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/ecs/entity"
	"github.com/milk9111/pedestrians/nav"
)

const defaultTimeStep = 1.0 / 60.0

// PhysicsSystem keeps the Chipmunk space in step with the entities: it
// creates missing bodies, drops bodies of destroyed entities, steps the
// space and copies body positions back into transforms.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{dt: defaultTimeStep}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, body *component.PhysicsBody) {
		if body.ID != nav.NoBody {
			return
		}
		if err := entity.AttachBody(w, e); err != nil {
			panic("system: physics: " + err.Error())
		}
	})

	for _, e := range pw.Prune(w.IsAlive) {
		debugf("PhysicsSystem: removed body of %s", e)
	}

	pw.Step(s.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(_ ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Static || body.Body == nil {
			return
		}
		t.SetPosition(body.Body.Position())
	})
}
