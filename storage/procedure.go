package storage

import "github.com/aluo96078/hookwire/event"

// Procedure is user code registered against an event type. Required
// procedures are invoked with every matching event; Optional procedures
// take a pointer to the event and are the kind run by view lifecycle hooks
// (CallOptional), which pass along the event inherited by the flag
// transition.
type Procedure[E any] struct {
	required func(E)
	optional func(*E)
}

// NewRequiredProcedure wraps f as a Procedure always called with an event.
func NewRequiredProcedure[E any](f func(E)) *Procedure[E] {
	return &Procedure[E]{required: f}
}

// NewOptionalProcedure wraps f as a Procedure that tolerates a missing
// event.
func NewOptionalProcedure[E any](f func(*E)) *Procedure[E] {
	return &Procedure[E]{optional: f}
}

// Call invokes the procedure with event. Valid for both required and
// optional procedures.
func (p *Procedure[E]) Call(ev E) {
	if p.required != nil {
		p.required(ev)
		return
	}
	p.optional(&ev)
}

// CallOptional invokes the procedure with an event that may be absent.
// Panics if p is a required procedure — matches the programming-error
// semantics of calling a required hook from a lifecycle path that has no
// originating event.
func (p *Procedure[E]) CallOptional(ev *E) {
	if p.required != nil {
		panic("storage: required procedure invoked without an event")
	}
	p.optional(ev)
}

// ProcedureHook pairs a Procedure with the suggested native-op to report
// when it runs.
type ProcedureHook[E any] struct {
	Procedure *Procedure[E]
	Native    event.NativeOp
}
