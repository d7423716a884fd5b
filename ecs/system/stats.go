package system

import (
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
)

// StatsSystem drains the tick's events into the NavStats component. It runs
// last so it sees every event pushed during the tick.
type StatsSystem struct{}

func NewStatsSystem() *StatsSystem {
	return &StatsSystem{}
}

func (s *StatsSystem) Update(w *ecs.World) {
	events := w.Events().Drain()

	e, ok := w.First(component.NavStatsComponent.Kind())
	if !ok {
		return
	}
	stats, _ := ecs.Get(w, e, component.NavStatsComponent)

	for _, evt := range events {
		switch evt.Type {
		case ecs.EventSpawned:
			stats.Spawned++
		case ecs.EventPlanBuilt:
			stats.PlansBuilt++
		case ecs.EventReplanRequested:
			stats.Replans++
		case ecs.EventNoRoute:
			stats.NoRoutes++
		case ecs.EventDespawned:
			stats.Despawned++
		}
	}
	stats.Contacts = w.PhysicsWorld().Contacts()
}
