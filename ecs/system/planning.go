package system

import (
	"errors"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
)

// PlanningSystem turns Target requests and Replan markers into action plans.
type PlanningSystem struct {
	tuning *Tuning
}

func NewPlanningSystem(tuning *Tuning) *PlanningSystem {
	return &PlanningSystem{tuning: tuning}
}

func (s *PlanningSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	ex := nav.NewExecutor(pw, s.tuning.Params())

	for _, e := range w.Query(component.TargetComponent.Kind(), component.TransformComponent.Kind()) {
		target, _ := ecs.Get(w, e, component.TargetComponent)
		pos, _ := positionOf(w, e)
		goal := target.Goal
		ecs.Remove(w, e, component.TargetComponent)
		ecs.Remove(w, e, component.ReplanComponent)
		s.plan(w, ex, e, pos, goal, 0)
	}

	for _, e := range w.Query(component.ReplanComponent.Kind(), component.ActionPlanComponent.Kind(), component.TransformComponent.Kind()) {
		current, _ := ecs.Get(w, e, component.ActionPlanComponent)
		pos, _ := positionOf(w, e)
		ecs.Remove(w, e, component.ReplanComponent)
		s.plan(w, ex, e, pos, current.Goal, current.Rebuilds+1)
	}
}

func (s *PlanningSystem) plan(w *ecs.World, ex *nav.Executor, e ecs.Entity, from, goal cp.Vector, rebuilds int) {
	plan, err := ex.Build(from, goal)
	if err != nil {
		if !errors.Is(err, nav.ErrNoRoute) {
			panic("system: planning: " + err.Error())
		}
		log.Printf("PlanningSystem: entity %s no route from (%.1f, %.1f) to (%.1f, %.1f)", e, from.X, from.Y, goal.X, goal.Y)
		ecs.Remove(w, e, component.ActionPlanComponent)
		setStanding(w, e)
		w.Events().Push(ecs.Event{Type: ecs.EventNoRoute, Entity: e, Data: goal})
		return
	}

	mustAdd(w, e, component.ActionPlanComponent, &component.ActionPlan{
		Plan:     plan,
		Goal:     goal,
		Rebuilds: rebuilds,
	}, "planning: add plan")
	debugf("PlanningSystem: entity %s rebuild=%d %s", e, rebuilds, plan)
	w.Events().Push(ecs.Event{Type: ecs.EventPlanBuilt, Entity: e, Data: plan.Len()})
}
