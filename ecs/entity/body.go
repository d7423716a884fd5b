package entity

import (
	"fmt"

	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// AttachBody creates the Chipmunk body described by e's PhysicsBody
// component, centered on its Transform. It does nothing when the world has
// no physics or the body already exists.
func AttachBody(w *ecs.World, e ecs.Entity) error {
	pw := w.PhysicsWorld()
	if pw == nil {
		return nil
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok {
		return fmt.Errorf("attach body: entity %s has no physics_body", e)
	}
	if body.ID != nav.NoBody {
		return nil
	}

	center := transformOf(w, e).Position()
	half := nav.Box{HalfW: body.Width / 2, HalfH: body.Height / 2}

	if body.Static {
		body.ID = pw.AddStatic(e, nav.BoxAt(center, half))
		return nil
	}
	body.ID, body.Body, body.Shape = pw.AddDynamic(e, center, half, body.Mass)
	if body.ID == nav.NoBody {
		return fmt.Errorf("attach body: entity %s: physics world rejected body", e)
	}
	return nil
}

func transformOf(w *ecs.World, e ecs.Entity) component.Transform {
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		return *t
	}
	return component.Transform{}
}
