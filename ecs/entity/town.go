package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/prefabs"
)

var defaultBuildingColor = color.NRGBA{R: 0x5a, G: 0x6e, B: 0x8c, A: 0xff}

const roadWidth = 6.0

// Town lists the entities BuildTown created.
type Town struct {
	Buildings []ecs.Entity
	People    []ecs.Entity
	Player    ecs.Entity
	HasPlayer bool
	Camera    ecs.Entity
	Control   ecs.Entity
}

// BuildTown creates the physics world, when the ecs world has none, and every
// entity the town describes. withCamera adds a camera following the player.
func BuildTown(w *ecs.World, town prefabs.TownSpec, withCamera bool) (Town, error) {
	town = town.WithDefaults()
	if w.PhysicsWorld() == nil {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.PhysicsConfig{Damping: town.Physics.Damping}))
	}

	var out Town
	for i, spec := range town.Buildings {
		e, err := NewBuilding(w, spec)
		if err != nil {
			return out, fmt.Errorf("town: building %d: %w", i, err)
		}
		out.Buildings = append(out.Buildings, e)
	}

	for _, road := range town.Roads {
		points := make([]cp.Vector, 0, len(road.Points))
		for _, p := range road.Points {
			points = append(points, p.Vector())
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.RoadComponent, &component.Road{Points: points, Loop: road.Loop, Width: roadWidth}); err != nil {
			return out, fmt.Errorf("town: road: %w", err)
		}
	}

	opts := PersonOptions{
		Mass:        town.Physics.Mass,
		WalkImpulse: town.Physics.WalkImpulse,
		BrakeFactor: town.Physics.BrakeFactor,
	}

	if town.Player != nil {
		player, err := NewPlayerAt(w, town.Player.X, town.Player.Y, opts)
		if err != nil {
			return out, fmt.Errorf("town: %w", err)
		}
		out.Player, out.HasPlayer = player, true
	}

	for i, p := range town.People {
		pos := cp.Vector{X: p.X, Y: p.Y}
		var (
			e   ecs.Entity
			err error
		)
		if p.Goal != nil {
			e, err = NewPerson(w, pos, p.Goal.Vector(), opts)
		} else {
			e, err = NewStandingPerson(w, pos, opts)
		}
		if err != nil {
			return out, fmt.Errorf("town: person %d: %w", i, err)
		}
		out.People = append(out.People, e)
	}

	out.Control = ecs.CreateEntity(w)
	if err := ecs.Add(w, out.Control, component.NavStatsComponent, &component.NavStats{}); err != nil {
		return out, fmt.Errorf("town: stats: %w", err)
	}
	if town.Spawner.Enabled {
		if err := ecs.Add(w, out.Control, component.SpawnerComponent, &component.Spawner{
			Interval:   town.Spawner.IntervalFrames,
			Timer:      town.Spawner.IntervalFrames,
			DoorOffset: town.Spawner.DoorOffset,
			Script:     town.Spawner.Script,
			Seed:       town.Spawner.Seed,
			Options: component.SpawnOptions{
				Mass:        opts.Mass,
				WalkImpulse: opts.WalkImpulse,
				BrakeFactor: opts.BrakeFactor,
			},
		}); err != nil {
			return out, fmt.Errorf("town: spawner: %w", err)
		}
	}

	if withCamera {
		x, y := 0.0, 0.0
		if town.Player != nil {
			x, y = town.Player.X, town.Player.Y
		}
		camera, err := NewCameraAt(w, x, y)
		if err != nil {
			return out, fmt.Errorf("town: %w", err)
		}
		out.Camera = camera
	}

	return out, nil
}

// NewBuilding adds a building with its doors and a static collider.
func NewBuilding(w *ecs.World, spec prefabs.BuildingSpec) (ecs.Entity, error) {
	bounds := spec.Bounds()
	doors := make([]component.Door, 0, len(spec.Doors))
	for k, d := range spec.Doors {
		pos, outward, err := d.Place(spec)
		if err != nil {
			return 0, fmt.Errorf("door %d: %w", k, err)
		}
		doors = append(doors, component.Door{
			Name:     fmt.Sprintf("%s/%s%d", spec.Name, d.Side, k),
			Position: pos,
			Outward:  outward,
		})
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.BuildingComponent, &component.Building{
		Name:   spec.Name,
		Bounds: bounds,
		Doors:  doors,
		Color:  spec.Color.Or(defaultBuildingColor),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
		Static: true,
	}); err != nil {
		return 0, err
	}
	if err := AttachBody(w, e); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
