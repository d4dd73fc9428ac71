package storage

import (
	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
)

// InputHooks is a bucket of action hooks and procedure hooks for one event
// source (a specific button target, the "any button" bucket, or the
// cursor/wheel streams). E is the event type procedures in this bucket
// receive.
type InputHooks[E any] struct {
	actions    []Hook[HookAction]
	procedures []Hook[ProcedureHook[E]]
}

func (h *InputHooks[E]) AddAction(v Hook[HookAction]) {
	h.actions = append(h.actions, v)
}

func (h *InputHooks[E]) AddProcedure(v Hook[ProcedureHook[E]]) {
	h.procedures = append(h.procedures, v)
}

func runnableIgnoring[T any](hooks []Hook[T], state *flag.State, target button.Button, hasTarget bool) []Hook[T] {
	var out []Hook[T]
	for _, h := range hooks {
		if hasTarget && h.ignores(target) {
			continue
		}
		if h.IsRunnable(state) {
			out = append(out, h)
		}
	}
	return out
}

// Filter returns every matching action and procedure (fetch_many
// semantics): used by on_press/on_release, where multiple independent
// hooks may legitimately fire for the same event. The reported native-op
// is Block if any matching action or procedure requests Block, else
// Dispatch.
func (h *InputHooks[E]) Filter(state *flag.State, target button.Button, hasTarget bool) (actions []HookAction, procedures []*Procedure[E], native event.NativeOp) {
	native = event.Dispatch
	for _, hk := range runnableIgnoring(h.actions, state, target, hasTarget) {
		actions = append(actions, hk.Action)
		native = native.Or(hk.Action.Native())
	}
	for _, hk := range runnableIgnoring(h.procedures, state, target, hasTarget) {
		procedures = append(procedures, hk.Action.Procedure)
		native = native.Or(hk.Action.Native)
	}
	return
}

// Find returns at most one matching action and procedure (fetch_one
// semantics): used by the remap tables, where only the first match wins.
func (h *InputHooks[E]) Find(state *flag.State, target button.Button, hasTarget bool) (action HookAction, hasAction bool, procedure *Procedure[E], native event.NativeOp) {
	native = event.Dispatch
	for _, hk := range h.actions {
		if hasTarget && hk.ignores(target) {
			continue
		}
		if hk.IsRunnable(state) {
			action, hasAction = hk.Action, true
			native = hk.Action.Native()
			break
		}
	}
	for _, hk := range h.procedures {
		if hasTarget && hk.ignores(target) {
			continue
		}
		if hk.IsRunnable(state) {
			procedure = hk.Action.Procedure
			native = native.Or(hk.Action.Native)
			break
		}
	}
	return
}

// ButtonHooks is a per-target-button table of InputHooks, plus an
// "any button" bucket: Find consults it only when the target-specific
// bucket has no match, Filter always combines both.
type ButtonHooks struct {
	byTarget map[button.Button]*InputHooks[event.ButtonEvent]
	any      InputHooks[event.ButtonEvent]
}

// Target returns (creating if needed) the bucket for a specific button.
func (b *ButtonHooks) Target(target button.Button) *InputHooks[event.ButtonEvent] {
	if b.byTarget == nil {
		b.byTarget = make(map[button.Button]*InputHooks[event.ButtonEvent])
	}
	h, ok := b.byTarget[target]
	if !ok {
		h = &InputHooks[event.ButtonEvent]{}
		b.byTarget[target] = h
	}
	return h
}

// Any returns the "any button" bucket.
func (b *ButtonHooks) Any() *InputHooks[event.ButtonEvent] { return &b.any }

// Find implements fetch_one across target-specific then any buckets: the
// first match wins, and a target-specific remap takes exclusive priority
// over the any-bucket.
func (b *ButtonHooks) Find(state *flag.State, target button.Button) (action HookAction, hasAction bool, procedure *Procedure[event.ButtonEvent], native event.NativeOp) {
	if h, ok := b.byTarget[target]; ok {
		if action, hasAction, procedure, native = h.Find(state, target, false); hasAction || procedure != nil {
			return
		}
	}
	return b.any.Find(state, target, true)
}

// Filter implements fetch_many across target-specific then any buckets,
// combining every matching action and procedure from both.
func (b *ButtonHooks) Filter(state *flag.State, target button.Button) (actions []HookAction, procedures []*Procedure[event.ButtonEvent], native event.NativeOp) {
	native = event.Dispatch
	if h, ok := b.byTarget[target]; ok {
		a, p, n := h.Filter(state, target, false)
		actions = append(actions, a...)
		procedures = append(procedures, p...)
		native = native.Or(n)
	}
	a, p, n := b.any.Filter(state, target, true)
	actions = append(actions, a...)
	procedures = append(procedures, p...)
	native = native.Or(n)
	return
}

// InputHookStorage is the compiled, immutable set of tables the
// dispatcher queries for every native event.
type InputHookStorage struct {
	RemapOnPress   ButtonHooks
	RemapOnRelease ButtonHooks
	OnPress        ButtonHooks
	OnRelease      ButtonHooks
	MouseCursor    InputHooks[event.CursorEvent]
	MouseWheel     InputHooks[event.WheelEvent]
}
