package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

func positionOf(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position(), true
}

func setStanding(w *ecs.World, e ecs.Entity) {
	if person, ok := ecs.Get(w, e, component.PersonComponent); ok {
		person.State = nav.StandingState()
	}
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, handle component.ComponentHandle[T], value *T, what string) {
	if err := ecs.Add(w, e, handle, value); err != nil {
		panic("system: " + what + ": " + err.Error())
	}
}
