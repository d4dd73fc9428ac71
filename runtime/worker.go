package runtime

import (
	"log"

	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/storage"
)

// message is the unit of work handed to a worker goroutine. Exactly one
// of its fields is non-nil. Workers only ever run user
// procedures: HookActions always run synchronously on the dispatcher
// goroutine, since each one may chain further flag events that must be
// applied before the next native event is considered.
type message struct {
	runButton   *buttonProcMsg
	runOptional *optionalButtonProcMsg
	runCursor   *cursorProcMsg
	runWheel    *wheelProcMsg
}

type buttonProcMsg struct {
	event      event.ButtonEvent
	procedures []*storage.Procedure[event.ButtonEvent]
}

type optionalButtonProcMsg struct {
	event      *event.ButtonEvent
	procedures []*storage.Procedure[event.ButtonEvent]
}

type cursorProcMsg struct {
	event      event.CursorEvent
	procedures []*storage.Procedure[event.CursorEvent]
}

type wheelProcMsg struct {
	event      event.WheelEvent
	procedures []*storage.Procedure[event.WheelEvent]
}

func (m *buttonProcMsg) run() {
	for _, p := range m.procedures {
		p.Call(m.event)
	}
}

func (m *optionalButtonProcMsg) run() {
	for _, p := range m.procedures {
		p.CallOptional(m.event)
	}
}

func (m *cursorProcMsg) run() {
	for _, p := range m.procedures {
		p.Call(m.event)
	}
}

func (m *wheelProcMsg) run() {
	for _, p := range m.procedures {
		p.Call(m.event)
	}
}

// worker drains msgs on its own goroutine until the channel closes. A
// panicking procedure is logged and does not take down the worker or any
// other in-flight hotkey.
func worker(id int, msgs <-chan message, done chan<- struct{}) {
	defer close(done)
	for m := range msgs {
		runMessage(id, m)
	}
}

func runMessage(id int, m message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("runtime: worker %d: procedure panicked: %v", id, r)
		}
	}()
	switch {
	case m.runButton != nil:
		m.runButton.run()
	case m.runOptional != nil:
		m.runOptional.run()
	case m.runCursor != nil:
		m.runCursor.run()
	case m.runWheel != nil:
		m.runWheel.run()
	}
}
