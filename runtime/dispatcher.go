// Package runtime owns the mutable flag state and drives it to
// quiescence for every native event: matching remaps and procedures
// against the current snapshot, replying Block/Dispatch to the hook
// bridge, running matched actions synchronously, and fanning out
// procedures to a bounded worker pool.
package runtime

import (
	"log"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/compile"
	"github.com/aluo96078/hookwire/condition"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/storage"
)

// Dispatcher is the single owner of the canonical flag.State. It must be
// driven by exactly one goroutine (Run's caller); concurrent callers to
// Subscribe are safe, but Run itself is not re-entrant.
type Dispatcher struct {
	state *flag.State
	hooks *storage.InputHookStorage
	views *storage.ViewHookStorage
	emu   storage.Emulator

	broker broker

	workers []chan message
	done    []chan struct{}
	next    int

	flagTx chan storage.FlagEvent
}

// New builds a Dispatcher for a compiled Program, running numWorkers
// worker goroutines (minimum 1). emu is used to synthesize recursive
// input for remap actions.
func New(prog *compile.Program, emu storage.Emulator, numWorkers int) *Dispatcher {
	if numWorkers < 1 {
		numWorkers = 1
	}
	d := &Dispatcher{
		state:  flag.New(prog.NumFlags),
		hooks:  prog.Hooks,
		views:  prog.ViewHooks,
		emu:    emu,
		flagTx: make(chan storage.FlagEvent, 64),
	}
	d.workers = make([]chan message, numWorkers)
	d.done = make([]chan struct{}, numWorkers)
	for i := range d.workers {
		ch := make(chan message, 32)
		doneCh := make(chan struct{})
		d.workers[i] = ch
		d.done[i] = doneCh
		go worker(i, ch, doneCh)
	}
	return d
}

// Subscribe registers a one-shot interception of the next button event
// matching filter, consulted before ordinary hotkey processing. If op is
// Block, a match consumes the native event exclusively, bypassing remaps
// and procedures entirely for that event.
func (d *Dispatcher) Subscribe(filter Filter, op event.NativeOp) *Subscription {
	return &Subscription{ch: d.broker.subscribe(filter, op)}
}

// IsFlagSet reports the current value of a compiled flag. Intended for
// diagnostics; hotkey matching never needs to call this directly.
func (d *Dispatcher) IsFlagSet(i flag.Index) bool { return d.state.Get(i) }

func (d *Dispatcher) queue(m message) {
	d.workers[d.next] <- m
	d.next = (d.next + 1) % len(d.workers)
}

// Run consumes deliveries from recv until it closes or returns false,
// replying to each with the decided native-op and dispatching matched
// hotkeys. It blocks and should be run on its own goroutine.
func (d *Dispatcher) Run(recv event.Receiver) {
	for {
		delivery, ok := recv.Recv()
		if !ok {
			return
		}
		d.handle(delivery)
	}
}

func (d *Dispatcher) handle(delivery event.Delivery) {
	switch delivery.Event.Kind {
	case event.ButtonKind:
		d.handleButton(delivery.Event.Button, delivery.Handler)
	case event.CursorKind:
		d.handleCursor(delivery.Event.Cursor, delivery.Handler)
	case event.WheelKind:
		d.handleWheel(delivery.Event.Wheel, delivery.Handler)
	}
}

func (d *Dispatcher) handleButton(ev event.ButtonEvent, handler *event.Handler) {
	if op := d.broker.publish(ev); op == event.Block {
		handler.Block()
		return
	}

	snapshot := d.state.Clone()

	remapButtons := &d.hooks.RemapOnPress
	procButtons := &d.hooks.OnPress
	if ev.Action != button.Press {
		remapButtons = &d.hooks.RemapOnRelease
		procButtons = &d.hooks.OnRelease
	}

	remapAction, hasRemap, _, remapNative := remapButtons.Find(snapshot, ev.Target)

	// A matched remap is exclusive: it suppresses ordinary on_press /
	// on_release action and procedure consideration for this event, since
	// the remap already fully determines the native-op and the
	// synthesized input.
	var actions []storage.HookAction
	var procedures []*storage.Procedure[event.ButtonEvent]
	native := remapNative
	if !hasRemap {
		var procNative event.NativeOp
		actions, procedures, procNative = procButtons.Filter(snapshot, ev.Target)
		native = native.Or(procNative)
	}

	handler.Handle(native)

	if hasRemap {
		d.runActionsNow([]storage.HookAction{remapAction}, &ev)
	} else if len(actions) > 0 {
		d.runActionsNow(actions, &ev)
	}
	if len(procedures) > 0 {
		d.queue(message{runButton: &buttonProcMsg{event: ev, procedures: procedures}})
	}
}

func (d *Dispatcher) handleCursor(ev event.CursorEvent, handler *event.Handler) {
	snapshot := d.state.Clone()
	_, procedures, native := d.hooks.MouseCursor.Filter(snapshot, 0, false)
	handler.Handle(native)
	if len(procedures) > 0 {
		d.queue(message{runCursor: &cursorProcMsg{event: ev, procedures: procedures}})
	}
}

func (d *Dispatcher) handleWheel(ev event.WheelEvent, handler *event.Handler) {
	snapshot := d.state.Clone()
	_, procedures, native := d.hooks.MouseWheel.Filter(snapshot, 0, false)
	handler.Handle(native)
	if len(procedures) > 0 {
		d.queue(message{runWheel: &wheelProcMsg{event: ev, procedures: procedures}})
	}
}

// runActionsNow executes actions synchronously against the canonical
// state on the dispatcher's own goroutine (remaps and the occasional
// direct enable/disable action are cheap and must happen before the next
// native event is considered), then cascades any resulting flag events to
// quiescence before returning.
func (d *Dispatcher) runActionsNow(actions []storage.HookAction, inherited *event.ButtonEvent) {
	var ev event.ButtonEvent
	if inherited != nil {
		ev = *inherited
	}
	for _, a := range actions {
		a.Run(ev, d.state, d.flagTx, d.emu)
	}
	d.drainFlagEvents()
}

// drainFlagEvents applies every pending flag transition to the canonical
// state and fires the view-lifecycle hooks it triggers, recursively,
// until no further transitions are pending — the "run to quiescence
// before the next input event" step.
func (d *Dispatcher) drainFlagEvents() {
	for {
		select {
		case fe := <-d.flagTx:
			d.applyFlagEvent(fe)
		default:
			return
		}
	}
}

func (d *Dispatcher) applyFlagEvent(fe storage.FlagEvent) {
	actions, procedures := d.views.Fetch(d.state, fe.Flag, fe.Change)

	switch fe.Change {
	case condition.FlagEnabled:
		d.state.Enable(fe.Flag)
	case condition.FlagDisabled:
		d.state.Disable(fe.Flag)
	}

	if len(actions) > 0 {
		for _, a := range actions {
			var ev event.ButtonEvent
			if fe.Inherited != nil {
				ev = *fe.Inherited
			}
			a.Run(ev, d.state, d.flagTx, d.emu)
		}
	}
	if len(procedures) > 0 {
		d.queue(message{runOptional: &optionalButtonProcMsg{event: fe.Inherited, procedures: procedures}})
	}
}

// Close stops every worker goroutine once its queue drains. Run must have
// already returned.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	for _, done := range d.done {
		<-done
	}
	log.Println("runtime: dispatcher stopped")
}
