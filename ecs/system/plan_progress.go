package system

import (
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// PlanProgressSystem advances plans whose current leg is done and marks
// agents whose leg is blocked for a replan. Both checks read the same
// position.
type PlanProgressSystem struct {
	tuning *Tuning
}

func NewPlanProgressSystem(tuning *Tuning) *PlanProgressSystem {
	return &PlanProgressSystem{tuning: tuning}
}

func (s *PlanProgressSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	ex := nav.NewExecutor(pw, s.tuning.Params())

	ecs.ForEach2(w, component.ActionPlanComponent, component.TransformComponent, func(e ecs.Entity, ap *component.ActionPlan, t *component.Transform) {
		progress := ex.Progress(ap.Plan, t.Position())
		if progress.Advanced {
			debugf("PlanProgressSystem: entity %s advanced to %d/%d", e, ap.Plan.Cursor(), ap.Plan.Len())
		}
		if progress.Rebuild && !ecs.Has(w, e, component.ReplanComponent) {
			mustAdd(w, e, component.ReplanComponent, &component.Replan{}, "plan progress: mark replan")
			w.Events().Push(ecs.Event{Type: ecs.EventReplanRequested, Entity: e})
		}
	})
}
