package ecs

import (
	"sort"

	"github.com/milk9111/pedestrians/ecs/component"
)

// Query returns the live entities that hold every listed kind, in slot
// order so systems visit agents deterministically.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.store(k.ID(), false)
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	out := IntersectEntities(sets...)
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-slot entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	found := w.Query(kind)
	if len(found) == 0 {
		return 0, false
	}
	return found[0], true
}

// IntersectEntities returns the entities present in every set.
func IntersectEntities(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	// iterate the smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
	for _, e := range sets[smallest].Entities() {
		inAll := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, e)
		}
	}
	return out
}
