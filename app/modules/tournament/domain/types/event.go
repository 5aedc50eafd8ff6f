package tournamenttypes

import "fmt"

// EventSlot identifies one of the five fixed tournament events.
type EventSlot int

const (
	EventBobsled   EventSlot = 1
	EventIceHockey EventSlot = 2
	EventCurling   EventSlot = 3
	EventBiathlon  EventSlot = 4
	EventSkijump   EventSlot = 5
)

// EventKind says how an event is scored.
type EventKind string

const (
	EventKindBracket EventKind = "bracket"
	EventKindTimed   EventKind = "timed"
)

// AllEventSlots lists every slot in display order.
var AllEventSlots = []EventSlot{EventBobsled, EventIceHockey, EventCurling, EventBiathlon, EventSkijump}

// BracketEventSlots lists the head-to-head events.
var BracketEventSlots = []EventSlot{EventBobsled, EventIceHockey, EventCurling, EventSkijump}

// TimedEventSlot is the single timed event.
const TimedEventSlot = EventBiathlon

var eventNames = map[EventSlot]string{
	EventBobsled:   "Bobsled",
	EventIceHockey: "Ice hockey",
	EventCurling:   "Curling",
	EventBiathlon:  "Biathlon",
	EventSkijump:   "Skijump",
}

// Valid reports whether s is one of the five known slots.
func (s EventSlot) Valid() bool {
	_, ok := eventNames[s]
	return ok
}

// Kind returns the scoring kind of the slot.
func (s EventSlot) Kind() EventKind {
	if s == TimedEventSlot {
		return EventKindTimed
	}
	return EventKindBracket
}

// Name returns the display name of the event.
func (s EventSlot) Name() string {
	if n, ok := eventNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Event %d", int(s))
}

func (s EventSlot) String() string {
	return fmt.Sprintf("Event %d: %s", int(s), s.Name())
}

// Event holds either the matches of a bracket event or the times of the timed event.
type Event struct {
	Slot    EventSlot
	Matches []Match
	Times   map[TeamID]float64
}

// NewEvent returns an empty event shaped for its slot.
func NewEvent(slot EventSlot) *Event {
	e := &Event{Slot: slot}
	if slot.Kind() == EventKindTimed {
		e.Times = make(map[TeamID]float64)
	} else {
		e.Matches = []Match{}
	}
	return e
}

// Kind returns the event's scoring kind.
func (e *Event) Kind() EventKind {
	return e.Slot.Kind()
}

func (e *Event) clone() *Event {
	out := &Event{Slot: e.Slot}
	if e.Matches != nil {
		out.Matches = make([]Match, len(e.Matches))
		copy(out.Matches, e.Matches)
	}
	if e.Times != nil {
		out.Times = make(map[TeamID]float64, len(e.Times))
		for k, v := range e.Times {
			out.Times[k] = v
		}
	}
	return out
}
