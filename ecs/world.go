package ecs

import (
	"github.com/milk9111/pedestrians/ecs/component"
)

// World owns entities, their components, the event queue and the attached
// physics world.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	physics  *PhysicsWorld
	tick     uint64
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and frees its slot. Physics
// bodies are released by the physics system on its next update.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists the live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physics = pw
	pw.SetLiveness(w.IsAlive)
}

func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}

// Tick is the number of completed scheduler updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	set, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}
