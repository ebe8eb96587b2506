package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventPanelPicked    = "panel_picked"
	EventPickMissed     = "pick_missed"
	EventFlightStarted  = "flight_started"
	EventFlightFinished = "flight_finished"
)

// PickEvent is the payload of EventPanelPicked.
type PickEvent struct {
	Panel    Entity
	Distance float64
}

// FlightEvent is the payload of the flight events. Target is zero for
// flights that do not end at a panel.
type FlightEvent struct {
	Camera Entity
	Target Entity
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
