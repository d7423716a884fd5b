package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
)

// PersonOptions overrides the prefab's tuning. Zero fields keep the prefab
// values.
type PersonOptions struct {
	Mass        float64
	WalkImpulse float64
	BrakeFactor float64
}

// NewPerson places a person at pos with a request to walk to goal.
func NewPerson(w *ecs.World, pos, goal cp.Vector, opts PersonOptions) (ecs.Entity, error) {
	e, err := newWalker(w, "person.yaml", pos, opts)
	if err != nil {
		return 0, fmt.Errorf("person: %w", err)
	}
	if err := ecs.Add(w, e, component.TargetComponent, &component.Target{Goal: goal}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("person: add target: %w", err)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Data: goal})
	return e, nil
}

// NewStandingPerson places a person with nowhere to go.
func NewStandingPerson(w *ecs.World, pos cp.Vector, opts PersonOptions) (ecs.Entity, error) {
	e, err := newWalker(w, "person.yaml", pos, opts)
	if err != nil {
		return 0, fmt.Errorf("person: %w", err)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e})
	return e, nil
}

func NewPlayerAt(w *ecs.World, x, y float64, opts PersonOptions) (ecs.Entity, error) {
	e, err := newWalker(w, "player.yaml", cp.Vector{X: x, Y: y}, opts)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

func newWalker(w *ecs.World, prefab string, pos cp.Vector, opts PersonOptions) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if person, ok := ecs.Get(w, e, component.PersonComponent); ok {
		if opts.WalkImpulse > 0 {
			person.WalkImpulse = opts.WalkImpulse
		}
		if opts.BrakeFactor > 0 {
			person.BrakeFactor = opts.BrakeFactor
		}
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		if opts.Mass > 0 {
			body.Mass = opts.Mass
			if body.Body != nil {
				body.Body.SetMass(opts.Mass)
			}
		}
	}
	if err := SetEntityTransform(w, e, pos.X, pos.Y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("override transform: %w", err)
	}
	return e, nil
}
