package ecs

import (
	"testing"

	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type label struct{ Name string }
type marker struct{}

var (
	positionComponent = component.NewComponent[position]()
	labelComponent    = component.NewComponent[label]()
	markerComponent   = component.NewComponent[marker]()
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)

			if c.destroyIndex >= 0 {
				assert.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "second destroy")
				assert.Len(t, Entities(w), c.create-1)
			}
		})
	}
}

func TestWorldReusesSlotsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	require.NoError(t, Add(w, old, labelComponent, &label{Name: "old"}))
	require.True(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, w.IsAlive(old))
	assert.True(t, w.IsAlive(fresh))

	_, ok := Get(w, fresh, labelComponent)
	assert.False(t, ok, "components must not leak into a reused slot")
	_, ok = Get(w, old, labelComponent)
	assert.False(t, ok)
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	cases := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_position",
			setup: func() error { return Add(w, e1, positionComponent, &position{X: 1, Y: 2}) },
			check: func(t *testing.T) {
				p, ok := Get(w, e1, positionComponent)
				require.True(t, ok)
				assert.Equal(t, position{X: 1, Y: 2}, *p)
				assert.False(t, Has(w, e2, positionComponent))
			},
		},
		{
			name:  "replace_position",
			setup: func() error { return Add(w, e1, positionComponent, &position{X: 5}) },
			check: func(t *testing.T) {
				p, _ := Get(w, e1, positionComponent)
				assert.Equal(t, 5.0, p.X)
			},
		},
		{
			name:  "pointer_is_shared",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				p, _ := Get(w, e1, positionComponent)
				p.Y = 9
				again, _ := Get(w, e1, positionComponent)
				assert.Equal(t, 9.0, again.Y)
			},
		},
		{
			name:  "remove",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				assert.True(t, Remove(w, e1, positionComponent))
				assert.False(t, Remove(w, e1, positionComponent))
				assert.False(t, Has(w, e1, positionComponent))
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, c.setup())
			c.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	assert.ErrorIs(t, Add(w, e, labelComponent, nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e, component.ComponentHandle[label]{}, &label{}), component.ErrInvalidComponentKind)

	w.DestroyEntity(e)
	assert.ErrorIs(t, Add(w, e, labelComponent, &label{}), component.ErrEntityNotAlive)
}

func TestQuery(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	require.NoError(t, Add(w, a, positionComponent, &position{}))
	require.NoError(t, Add(w, b, positionComponent, &position{}))
	require.NoError(t, Add(w, c, positionComponent, &position{}))
	require.NoError(t, Add(w, c, markerComponent, &marker{}))
	require.NoError(t, Add(w, a, markerComponent, &marker{}))

	assert.Equal(t, []Entity{a, b, c}, w.Query(positionComponent.Kind()))
	assert.Equal(t, []Entity{a, c}, w.Query(positionComponent.Kind(), markerComponent.Kind()))
	assert.Empty(t, w.Query(labelComponent.Kind()))

	first, ok := w.First(markerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, a, first)

	w.DestroyEntity(a)
	assert.Equal(t, []Entity{c}, w.Query(positionComponent.Kind(), markerComponent.Kind()))
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	var ents []Entity
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		ents = append(ents, e)
		require.NoError(t, Add(w, e, positionComponent, &position{X: float64(i)}))
	}

	// destroying later entities mid-iteration must skip them
	seen := 0
	ForEach(w, positionComponent, func(e Entity, p *position) {
		seen++
		if e == ents[0] {
			w.DestroyEntity(ents[3])
		}
	})
	assert.Equal(t, 3, seen)
}

func TestForEach2And3(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	require.NoError(t, Add(w, a, positionComponent, &position{X: 1}))
	require.NoError(t, Add(w, a, labelComponent, &label{Name: "a"}))
	require.NoError(t, Add(w, a, markerComponent, &marker{}))
	require.NoError(t, Add(w, b, positionComponent, &position{X: 2}))
	require.NoError(t, Add(w, b, labelComponent, &label{Name: "b"}))

	var names []string
	ForEach2(w, positionComponent, labelComponent, func(e Entity, p *position, l *label) {
		names = append(names, l.Name)
	})
	assert.Equal(t, []string{"a", "b"}, names)

	count := 0
	ForEach3(w, positionComponent, labelComponent, markerComponent, func(e Entity, p *position, l *label, _ *marker) {
		count++
		assert.Equal(t, a, e)
	})
	assert.Equal(t, 1, count)
}

type countingSystem struct {
	updates int
	events  []Event
}

func (s *countingSystem) Update(w *World) {
	s.updates++
	s.events = append(s.events, w.Events().Drain()...)
}

type pushingSystem struct{}

func (pushingSystem) Update(w *World) {
	w.Events().Push(Event{Type: EventSpawned})
}

func TestSchedulerOrderAndEvents(t *testing.T) {
	w := NewWorld()
	tail := &countingSystem{}
	s := NewScheduler(pushingSystem{}, nil, tail)
	assert.Len(t, s.Systems(), 2)

	s.Update(w)
	s.Update(w)
	assert.Equal(t, 2, tail.updates)
	assert.Len(t, tail.events, 2)
	assert.Equal(t, uint64(2), w.Tick())

	// events nobody drains are dropped at the end of the tick
	w.Events().Push(Event{Type: EventDespawned})
	NewScheduler().Update(w)
	assert.Equal(t, 0, w.Events().Len())
}
