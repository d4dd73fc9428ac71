// Package hookwire ties the native hook bridge, a compiled hotkey
// program, and the runtime dispatcher together into a single Engine: the
// library's whole external surface for embedding a hotkey/hook decision
// engine into a host application.
package hookwire

import (
	"sync/atomic"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/compile"
	"github.com/aluo96078/hookwire/emulate"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/hook"
	"github.com/aluo96078/hookwire/runtime"
)

// Engine drives one compiled Program against one installed native hook
// chain. hook.Install already enforces that at most one hook chain exists
// per process; Engine additionally guards against double-Uninstall on the
// same value, which would otherwise close an already-closed worker pool.
type Engine struct {
	dispatcher  *runtime.Dispatcher
	emu         *emulate.Emulator
	stopped     chan struct{}
	uninstalled atomic.Bool
}

// Install runs the compiled prog: it installs the native hook chain,
// starts the dispatcher's run loop on its own goroutine, and spins up
// numWorkers procedure workers (minimum 1). Panics if a hook chain is
// already installed anywhere in this process.
func Install(prog *compile.Program, numWorkers int) (*Engine, error) {
	recv, err := hook.Install()
	if err != nil {
		return nil, err
	}

	emu := emulate.New()
	d := runtime.New(prog, emu, numWorkers)

	e := &Engine{dispatcher: d, emu: emu, stopped: make(chan struct{})}
	go func() {
		d.Run(recv)
		close(e.stopped)
	}()
	return e, nil
}

// Uninstall removes the native hook chain, waits for the dispatcher's run
// loop to observe the closed receiver, and stops its worker pool. Panics
// if this Engine was already uninstalled.
func (e *Engine) Uninstall() error {
	if !e.uninstalled.CompareAndSwap(false, true) {
		panic("hookwire: engine already uninstalled")
	}
	err := hook.Uninstall()
	<-e.stopped
	e.dispatcher.Close()
	return err
}

// Subscribe registers a one-shot interception of the next button event
// matching filter, consulted before ordinary hotkey processing. See
// runtime.Dispatcher.Subscribe.
func (e *Engine) Subscribe(filter runtime.Filter, op event.NativeOp) *runtime.Subscription {
	return e.dispatcher.Subscribe(filter, op)
}

// IsFlagSet reports the current value of a compiled flag. Mainly useful
// for diagnostics and debug tooling.
func (e *Engine) IsFlagSet(i flag.Index) bool { return e.dispatcher.IsFlagSet(i) }

// Emulator returns the input synthesizer backing this Engine's remaps, for
// callers that also want to trigger synthetic input directly (e.g. a
// settings UI invoking an action the same way a hotkey would).
func (e *Engine) Emulator() *emulate.Emulator { return e.emu }

// IsPressed reports the last-known physical state of b, independent of
// any hotkey matching. See hook.IsPressed.
func IsPressed(b button.Button) bool { return hook.IsPressed(b) }
