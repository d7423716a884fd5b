package system

import "github.com/milk9111/pedestrians/ecs"

// SimulationSystems returns the simulation in tick order: spawning,
// planning, plan progress and execution, steering, movement, physics, then
// bookkeeping. Stats stays last so it sees every event of the tick.
func SimulationSystems(tuning *Tuning, spawn *SpawnSystem) []ecs.System {
	if spawn == nil {
		spawn = NewSpawnSystem()
	}
	return []ecs.System{
		spawn,
		NewPlanningSystem(tuning),
		NewPlanProgressSystem(tuning),
		NewPlanExecutionSystem(tuning),
		NewPlayerControlSystem(),
		NewSteeringSystem(tuning),
		NewMovementSystem(),
		NewPhysicsSystem(),
		NewPathDebugSystem(),
		NewStatsSystem(),
	}
}
