package system

import (
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// PlanExecutionSystem writes each planned agent's navigation state and
// destroys agents whose plan reached Despawn. Agents waiting for a replan
// stand still instead of following the blocked leg.
type PlanExecutionSystem struct {
	tuning *Tuning
}

func NewPlanExecutionSystem(tuning *Tuning) *PlanExecutionSystem {
	return &PlanExecutionSystem{tuning: tuning}
}

func (s *PlanExecutionSystem) Update(w *ecs.World) {
	ex := nav.NewExecutor(w.PhysicsWorld(), s.tuning.Params())

	ecs.ForEach3(w, component.ActionPlanComponent, component.PersonComponent, component.TransformComponent, func(e ecs.Entity, ap *component.ActionPlan, person *component.Person, t *component.Transform) {
		if ecs.Has(w, e, component.ReplanComponent) {
			person.State = nav.StandingState()
			return
		}
		effect := ex.Execute(ap.Plan, t.Position())
		person.State = effect.State
		if !effect.Destroy {
			return
		}
		debugf("PlanExecutionSystem: entity %s despawned at (%.1f, %.1f)", e, t.X, t.Y)
		w.Events().Push(ecs.Event{Type: ecs.EventDespawned, Entity: e, Data: t.Position()})
		w.DestroyEntity(e)
	})
}
