package ecs

// EventType names what happened to an entity during a tick.
type EventType string

const (
	EventSpawned         EventType = "spawned"
	EventPlanBuilt       EventType = "plan_built"
	EventNoRoute         EventType = "no_route"
	EventReplanRequested EventType = "replan_requested"
	EventDespawned       EventType = "despawned"
)

// Event is pushed by systems and drained later in the same tick.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
