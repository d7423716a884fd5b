package ecs

import "github.com/milk9111/pedestrians/ecs/component"

// Add stores value as e's component of the handle's kind, replacing any
// previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if w == nil || !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	kind := handle.Kind()
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	value, ok := w.store(handle.Kind().ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(handle.Kind().ID(), false).Has(e)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	return w.store(handle.Kind().ID(), false).Remove(e)
}

// ForEach visits every live entity holding A. fn may add, remove or destroy
// freely; entities destroyed mid-iteration are skipped.
func ForEach[A any](w *World, ha component.ComponentHandle[A], fn func(Entity, *A)) {
	if w == nil {
		return
	}
	for _, e := range w.store(ha.Kind().ID(), false).Entities() {
		a, ok := Get(w, e, ha)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind(), hc.Kind()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		c, okC := Get(w, e, hc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
