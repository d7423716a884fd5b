package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/ecs/entity"
	"github.com/milk9111/pedestrians/nav"
	"github.com/milk9111/pedestrians/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

func newTown(t *testing.T, town prefabs.TownSpec) (*ecs.World, entity.Town) {
	t.Helper()
	w := ecs.NewWorld()
	built, err := entity.BuildTown(w, town, false)
	require.NoError(t, err)
	return w, built
}

func navScheduler(tuning *Tuning) *ecs.Scheduler {
	return ecs.NewScheduler(SimulationSystems(tuning, nil)...)
}

func statsOf(t *testing.T, w *ecs.World) *component.NavStats {
	t.Helper()
	e, ok := w.First(component.NavStatsComponent.Kind())
	require.True(t, ok)
	stats, ok := ecs.Get(w, e, component.NavStatsComponent)
	require.True(t, ok)
	return stats
}

func TestPlanningRoutesAroundObstacle(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		Buildings: []prefabs.BuildingSpec{{Name: "box", X: 2.5, Y: 0.5, Width: 1, Height: 1}},
		People:    []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 5, Y: 0}}},
	})
	require.Len(t, town.People, 1)
	person := town.People[0]

	NewPlanningSystem(NewTuning(nav.DefaultParams())).Update(w)

	assert.False(t, ecs.Has(w, person, component.TargetComponent))
	ap, ok := ecs.Get(w, person, component.ActionPlanComponent)
	require.True(t, ok)
	assert.Equal(t, []cp.Vector{vec(0, 0), vec(2, -1), vec(5, -1), vec(5, 0)}, ap.Plan.Waypoints())
	assert.Equal(t, vec(5, 0), ap.Goal)

	last, ok := ap.Plan.Goal()
	require.True(t, ok)
	assert.Equal(t, vec(5, 0), last)

	steps := ap.Plan.Remaining()
	require.Len(t, steps, 5)
	assert.Equal(t, nav.ActionDespawn, steps[4].Kind)

	pw := w.PhysicsWorld()
	footprint := nav.DefaultParams().Footprint
	wps := ap.Plan.Waypoints()
	for i := 1; i < len(wps); i++ {
		a, b := wps[i-1], wps[i]
		assert.Truef(t, nav.LineOfSight(pw, a, b), "leg %v -> %v", a, b)
		_, hit := pw.CastShape(a, footprint, b.Sub(a).Normalize(), b.Distance(a), nav.StaticOnly())
		assert.Falsef(t, hit, "leg %v -> %v does not fit the footprint", a, b)
	}
}

func TestPersonWalksToGoalAndDespawns(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 10, Y: 0}}},
	})
	person := town.People[0]
	sched := navScheduler(NewTuning(nav.DefaultParams()))

	for i := 0; i < 600 && w.IsAlive(person); i++ {
		sched.Update(w)
	}
	require.False(t, w.IsAlive(person), "person never arrived")

	stats := statsOf(t, w)
	assert.Equal(t, 1, stats.Spawned)
	assert.Equal(t, 1, stats.PlansBuilt)
	assert.Equal(t, 1, stats.Despawned)
	assert.Equal(t, 0, stats.NoRoutes)

	sched.Update(w)
	assert.Equal(t, 0, w.PhysicsWorld().Len())
}

// runUntilGone steps the pipeline until e is destroyed or limit ticks pass
// and returns the number of ticks it took.
func runUntilGone(w *ecs.World, sched *ecs.Scheduler, e ecs.Entity, limit int) int {
	ticks := 0
	for ; ticks < limit && w.IsAlive(e); ticks++ {
		sched.Update(w)
	}
	return ticks
}

func TestPersonWalksAroundBuilding(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		Buildings: []prefabs.BuildingSpec{{Name: "box", X: 2.5, Y: 0.5, Width: 1, Height: 1}},
		People:    []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 5, Y: 0}}},
	})
	person := town.People[0]
	sched := navScheduler(NewTuning(nav.DefaultParams()))

	ticks := runUntilGone(w, sched, person, 600)
	require.False(t, w.IsAlive(person), "person stuck after %d ticks", ticks)

	stats := statsOf(t, w)
	assert.Equal(t, 1, stats.Despawned)
	assert.LessOrEqual(t, stats.Replans, 2)
	assert.LessOrEqual(t, stats.PlansBuilt, 3)
	assert.Equal(t, 0, stats.NoRoutes)
}

func TestPersonWalksAroundNewCrate(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 20, Y: 0}}},
	})
	person := town.People[0]
	sched := navScheduler(NewTuning(nav.DefaultParams()))

	sched.Update(w)
	_, err := entity.NewBuilding(w, prefabs.BuildingSpec{Name: "crate", X: 5.5, Y: 0, Width: 1, Height: 6})
	require.NoError(t, err)

	ticks := runUntilGone(w, sched, person, 900)
	require.False(t, w.IsAlive(person), "person stuck after %d ticks", ticks)

	stats := statsOf(t, w)
	assert.Equal(t, 1, stats.Despawned)
	assert.GreaterOrEqual(t, stats.Replans, 1)
	assert.LessOrEqual(t, stats.Replans, 3)
}

func TestReplanningPersonStands(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 20, Y: 0}}},
	})
	person := town.People[0]
	tuning := NewTuning(nav.DefaultParams())
	sched := navScheduler(tuning)

	sched.Update(w)
	ap, ok := ecs.Get(w, person, component.ActionPlanComponent)
	require.True(t, ok)
	cursor := ap.Plan.Cursor()

	_, err := entity.NewBuilding(w, prefabs.BuildingSpec{Name: "crate", X: 5.5, Y: 0, Width: 1, Height: 6})
	require.NoError(t, err)

	NewPlanProgressSystem(tuning).Update(w)
	require.True(t, ecs.Has(w, person, component.ReplanComponent))
	assert.Equal(t, cursor, ap.Plan.Cursor())

	NewPlanExecutionSystem(tuning).Update(w)
	p, ok := ecs.Get(w, person, component.PersonComponent)
	require.True(t, ok)
	assert.Equal(t, nav.Standing, p.State.Mode)
}

func TestNoRouteLeavesPersonStanding(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		Buildings: []prefabs.BuildingSpec{
			{Name: "west", X: -2.5, Y: 0, Width: 1, Height: 6},
			{Name: "east", X: 2.5, Y: 0, Width: 1, Height: 6},
			{Name: "south", X: 0, Y: -2.5, Width: 4, Height: 1},
			{Name: "north", X: 0, Y: 2.5, Width: 4, Height: 1},
		},
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 10, Y: 0}}},
	})
	person := town.People[0]
	sched := navScheduler(NewTuning(nav.DefaultParams()))

	sched.Update(w)

	assert.True(t, w.IsAlive(person))
	assert.False(t, ecs.Has(w, person, component.TargetComponent))
	assert.False(t, ecs.Has(w, person, component.ActionPlanComponent))
	p, ok := ecs.Get(w, person, component.PersonComponent)
	require.True(t, ok)
	assert.Equal(t, nav.Standing, p.State.Mode)

	stats := statsOf(t, w)
	assert.Equal(t, 1, stats.NoRoutes)
	assert.Equal(t, 0, stats.PlansBuilt)

	// nothing retries on its own
	for i := 0; i < 10; i++ {
		sched.Update(w)
	}
	assert.Equal(t, 1, statsOf(t, w).NoRoutes)
}

func TestReplanWhenLegBlocked(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 20, Y: 0}}},
	})
	person := town.People[0]
	sched := navScheduler(NewTuning(nav.DefaultParams()))

	sched.Update(w)
	ap, ok := ecs.Get(w, person, component.ActionPlanComponent)
	require.True(t, ok)
	assert.Equal(t, []cp.Vector{vec(20, 0)}, ap.Plan.Waypoints())

	_, err := entity.NewBuilding(w, prefabs.BuildingSpec{Name: "crate", X: 5.5, Y: 0, Width: 1, Height: 6})
	require.NoError(t, err)

	sched.Update(w)
	assert.True(t, ecs.Has(w, person, component.ReplanComponent))
	assert.Equal(t, 1, statsOf(t, w).Replans)

	sched.Update(w)
	ap, ok = ecs.Get(w, person, component.ActionPlanComponent)
	require.True(t, ok)
	assert.Equal(t, 1, ap.Rebuilds)
	assert.Equal(t, vec(20, 0), ap.Goal)
	assert.Equal(t, 2, statsOf(t, w).PlansBuilt)

	pw := w.PhysicsWorld()
	wps := ap.Plan.Waypoints()
	require.NotEmpty(t, wps)
	assert.LessOrEqual(t, wps[len(wps)-1].Distance(vec(20, 0)), nav.DefaultParams().GoalTolerance)
	for i := 1; i < len(wps); i++ {
		assert.Truef(t, nav.LineOfSight(pw, wps[i-1], wps[i]), "leg %v -> %v", wps[i-1], wps[i])
	}
}

func TestLiveBodiesHidesDestroyedOwners(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 3, Y: 0}},
	})
	person := town.People[0]
	pw := w.PhysicsWorld()
	id, ok := pw.BodyOf(person)
	require.True(t, ok)

	lookup := liveBodies{w: w, pw: pw}
	pos, _, ok := lookup.Motion(id)
	require.True(t, ok)
	assert.Equal(t, vec(3, 0), pos)

	w.DestroyEntity(person)
	_, _, ok = pw.Motion(id)
	assert.True(t, ok, "body lingers until the physics system prunes it")
	_, _, ok = lookup.Motion(id)
	assert.False(t, ok)

	NewPhysicsSystem().Update(w)
	_, _, ok = pw.Motion(id)
	assert.False(t, ok)
}

func TestSteeringSkipsPlayerAndStanding(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		Player: &prefabs.PointSpec{X: 0, Y: 0},
		People: []prefabs.PersonPlaceSpec{{X: 5, Y: 5}},
	})
	require.True(t, town.HasPlayer)
	walker := town.People[0]
	p, _ := ecs.Get(w, walker, component.PersonComponent)
	p.State = nav.WalkingState(vec(1, 0))

	NewSteeringSystem(NewTuning(nav.DefaultParams())).Update(w)

	assert.False(t, ecs.Has(w, town.Player, component.SteeringComponent))
	steer, ok := ecs.Get(w, walker, component.SteeringComponent)
	require.True(t, ok)
	assert.Equal(t, vec(1, 0), steer.Target)
	assert.InDelta(t, 1.0, steer.Heading.Length(), 1e-9)

	p.State = nav.StandingState()
	NewSteeringSystem(NewTuning(nav.DefaultParams())).Update(w)
	steer, _ = ecs.Get(w, walker, component.SteeringComponent)
	assert.Equal(t, nav.Steering{}, steer.Steering)
}

func TestPlayerMovesWithInputAndBrakes(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{Player: &prefabs.PointSpec{X: 0, Y: 0}})
	player := town.Player
	sched := ecs.NewScheduler(NewPlayerControlSystem(), NewMovementSystem(), NewPhysicsSystem())

	input, ok := ecs.Get(w, player, component.InputComponent)
	require.True(t, ok)
	input.MoveX = 1
	for i := 0; i < 30; i++ {
		sched.Update(w)
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent)
	moving := body.Velocity()
	assert.Greater(t, moving.X, 0.0)
	assert.InDelta(t, 0, moving.Y, 1e-9)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	assert.Greater(t, tr.X, 0.0)

	input.MoveX = 0
	for i := 0; i < 30; i++ {
		sched.Update(w)
	}
	p, _ := ecs.Get(w, player, component.PersonComponent)
	assert.Equal(t, nav.Standing, p.State.Mode)
	assert.Less(t, body.Velocity().Length(), moving.Length()*0.01)
}

func TestSpawnSystemUsesScript(t *testing.T) {
	w, _ := newTown(t, prefabs.TownSpec{
		Buildings: []prefabs.BuildingSpec{
			{Name: "a", X: -20, Y: 0, Width: 10, Height: 10, Doors: []prefabs.DoorSpec{{Side: "right"}}},
			{Name: "b", X: 20, Y: 0, Width: 10, Height: 10, Doors: []prefabs.DoorSpec{{Side: "left"}}},
		},
		Spawner: prefabs.SpawnerSpec{Enabled: true, IntervalFrames: 1, DoorOffset: 2, Script: "spawn.tengo", Seed: 7},
	})

	spawn := NewSpawnSystem()
	spawn.Update(w)

	people := w.Query(component.PersonComponent.Kind(), component.TargetComponent.Kind())
	require.Len(t, people, 1)
	pos, _ := positionOf(w, people[0])
	target, _ := ecs.Get(w, people[0], component.TargetComponent)

	west, east := vec(-13, 0), vec(13, 0)
	assert.Contains(t, []cp.Vector{west, east}, pos)
	assert.Contains(t, []cp.Vector{west, east}, target.Goal)
	assert.NotEqual(t, pos, target.Goal, "script sends people to another building")
	assert.False(t, spawn.scriptErr)

	sp, _ := ecs.Get(w, w.Query(component.SpawnerComponent.Kind())[0], component.SpawnerComponent)
	assert.Equal(t, 1, sp.Spawned)
	assert.Equal(t, 1, sp.Timer)
}

func TestSpawnSystemWaitsForInterval(t *testing.T) {
	w, _ := newTown(t, prefabs.TownSpec{
		Buildings: []prefabs.BuildingSpec{
			{Name: "a", X: 0, Y: 0, Width: 10, Height: 10, Doors: []prefabs.DoorSpec{{Side: "top"}}},
		},
		Spawner: prefabs.SpawnerSpec{Enabled: true, IntervalFrames: 3, Seed: 1},
	})
	spawn := NewSpawnSystem()

	counts := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		spawn.Update(w)
		counts = append(counts, len(w.Query(component.PersonComponent.Kind())))
	}
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2}, counts)
}

func TestSpawnScriptChoose(t *testing.T) {
	script, err := loadSpawnScript("spawn.tengo")
	require.NoError(t, err)

	doors := []spawnDoor{
		{Name: "a/left0", Building: "a"},
		{Name: "a/right1", Building: "a"},
		{Name: "b/top0", Building: "b"},
	}

	tests := []struct {
		name  string
		rolls [2]int
		want  spawnChoice
	}{
		{"different_buildings", [2]int{0, 2}, spawnChoice{From: 0, To: 2}},
		{"same_building_moves_on", [2]int{0, 1}, spawnChoice{From: 0, To: 2}},
		{"wraps", [2]int{5, 2}, spawnChoice{From: 2, To: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := script.choose(doors, tt.rolls, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := script.choose(nil, [2]int{0, 0}, 0)
	require.NoError(t, err)
	assert.True(t, got.Skip)

	_, err = loadSpawnScript("missing.tengo")
	assert.Error(t, err)
}

func TestStatsSystemCountsEvents(t *testing.T) {
	w, _ := newTown(t, prefabs.TownSpec{})
	events := w.Events()
	events.Push(ecs.Event{Type: ecs.EventSpawned})
	events.Push(ecs.Event{Type: ecs.EventSpawned})
	events.Push(ecs.Event{Type: ecs.EventPlanBuilt})
	events.Push(ecs.Event{Type: ecs.EventReplanRequested})
	events.Push(ecs.Event{Type: ecs.EventNoRoute})
	events.Push(ecs.Event{Type: ecs.EventDespawned})

	NewStatsSystem().Update(w)

	assert.Equal(t, component.NavStats{Spawned: 2, PlansBuilt: 1, Replans: 1, NoRoutes: 1, Despawned: 1}, *statsOf(t, w))
	assert.Equal(t, 0, events.Len())
}

func TestPathDebugFollowsPlan(t *testing.T) {
	w, town := newTown(t, prefabs.TownSpec{
		People: []prefabs.PersonPlaceSpec{{X: 0, Y: 0, Goal: &prefabs.PointSpec{X: 8, Y: 0}}},
	})
	person := town.People[0]
	tuning := NewTuning(nav.DefaultParams())

	NewPlanningSystem(tuning).Update(w)
	NewPathDebugSystem().Update(w)

	line, ok := ecs.Get(w, person, component.PathLineComponent)
	require.True(t, ok)
	assert.Equal(t, []cp.Vector{vec(0, 0), vec(0, 0), vec(8, 0)}, line.Points)

	ecs.Remove(w, person, component.ActionPlanComponent)
	NewPathDebugSystem().Update(w)
	assert.Empty(t, line.Points)
}

func TestCameraZoomAndFollow(t *testing.T) {
	w := ecs.NewWorld()
	town, err := entity.BuildTown(w, prefabs.TownSpec{Player: &prefabs.PointSpec{X: 10, Y: 0}}, true)
	require.NoError(t, err)

	cam, ok := ecs.Get(w, town.Camera, component.CameraComponent)
	require.True(t, ok)
	assert.Equal(t, 1.0, cam.Zoom)

	input, _ := ecs.Get(w, town.Player, component.InputComponent)
	cs := NewCameraSystem()

	input.ZoomIn = true
	cs.Update(w)
	assert.InDelta(t, 1.2, cam.Zoom, 1e-9)
	for i := 0; i < 10; i++ {
		cs.Update(w)
	}
	assert.InDelta(t, 2.0, cam.Zoom, 1e-9)

	input.ZoomIn, input.ZoomOut = false, true
	for i := 0; i < 20; i++ {
		cs.Update(w)
	}
	assert.InDelta(t, 0.2, cam.Zoom, 1e-9)

	input.ZoomOut = false
	tr, _ := ecs.Get(w, town.Player, component.TransformComponent)
	tr.X = 20
	before := cam.X
	cs.Update(w)
	assert.Greater(t, cam.X, before)
	assert.Less(t, cam.X, 20.0)
	camT, _ := ecs.Get(w, town.Camera, component.TransformComponent)
	assert.Equal(t, cam.X, camT.X)
}
