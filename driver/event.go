// Package driver implements the stack-based shift-reduce parser: a pure
// interpreter over a table.Table and a token.Stream that emits an ordered
// Shift/Reduce/Accept event stream to a consumer-supplied sink. The driver
// is oblivious to semantic actions; those are layered on top of the reduce
// events by the caller.
package driver

import "github.com/google/uuid"

// EventType distinguishes the three kinds of parser event.
type EventType int

const (
	EventShift EventType = iota
	EventReduce
	EventAccept
)

func (t EventType) String() string {
	switch t {
	case EventShift:
		return "shift"
	case EventReduce:
		return "reduce"
	case EventAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// Event is one entry in the driver's observable output stream. State is
// populated for EventShift (the state shifted to), Production for
// EventReduce (the production index reduced by); TraceID correlates every
// event emitted by one Run call, so a REPL replaying several sentences can
// tell which sentence a given event belongs to.
type Event struct {
	Type       EventType
	State      int
	Production int
	TraceID    uuid.UUID
}

// EventSink receives the driver's event stream. Each Event is passed by
// value, so a sink may keep it after the call returns.
type EventSink func(Event)
