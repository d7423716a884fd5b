package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/common"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// PlayerControlSystem maps the player's movement input to a navigation
// state. The player never has a plan.
type PlayerControlSystem struct{}

func NewPlayerControlSystem() *PlayerControlSystem {
	return &PlayerControlSystem{}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), component.PersonComponent.Kind()) {
		input, _ := ecs.Get(w, e, component.InputComponent)
		person, _ := ecs.Get(w, e, component.PersonComponent)

		dir := common.NormalizeOrZero(cp.Vector{X: input.MoveX, Y: input.MoveY})
		if common.IsZero(dir) {
			person.State = nav.StandingState()
			continue
		}
		person.State = nav.WalkingState(dir)
	}
}
