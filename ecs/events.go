package ecs

// EventType names what happened.
type EventType string

const (
	// EventStatus carries a one-line HUD message as Data (string).
	EventStatus EventType = "status"
	// EventTeleport carries the committed rig as Data.
	EventTeleport EventType = "teleport"
	// EventSnapTurn carries the rotated rig as Data.
	EventSnapTurn EventType = "snap_turn"
	// EventPrefabReloaded carries the changed prefab file name as Data.
	EventPrefabReloaded EventType = "prefab_reloaded"
)

// Event is a payload posted by one system for later systems in the same
// frame.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue, cleared at the end of each frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns this frame's events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
