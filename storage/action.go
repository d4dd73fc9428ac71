package storage

import (
	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/condition"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
)

// Emulator is the subset of the input emulator an action needs to
// synthesize recursive input. Declared here (rather than imported from
// package emulate) so storage has no dependency on platform code; the
// concrete *emulate.Emulator satisfies it structurally.
type Emulator interface {
	PressRecursive(b button.Button)
	ReleaseRecursive(b button.Button)
}

// FlagEvent is the internal message produced whenever a flag mutates.
// Snapshot is the post-transition state. The dispatcher does not pass it
// to the change detector; it consults the detector with its own canonical
// state before applying Change.
type FlagEvent struct {
	Flag      flag.Index
	Change    condition.FlagChange
	Snapshot  *flag.State
	Inherited *event.ButtonEvent
}

// HookAction is a declarative effect on flag state or the native-op
// decision. Actions run synchronously on the dispatcher, never on a
// worker, because they may chain further flag events.
type HookAction interface {
	// Native is the suggested Block/Dispatch contribution of this action.
	Native() event.NativeOp
	// Run executes the action against the current cycle's state,
	// publishing any resulting FlagEvent to tx.
	Run(ev event.ButtonEvent, state *flag.State, tx chan<- FlagEvent, emu Emulator)
}

func sendFlagEvent(tx chan<- FlagEvent, idx flag.Index, change condition.FlagChange, state *flag.State, inherited event.ButtonEvent) {
	snapshot := state.Clone()
	snapshot.Set(idx, change == condition.FlagEnabled)
	tx <- FlagEvent{
		Flag:      idx,
		Change:    change,
		Snapshot:  snapshot,
		Inherited: &inherited,
	}
}

// RemapPress synthesizes a recursive press of Button and raises Latch so
// the paired RemapRelease can find its way back to the same target
// regardless of modifier changes in between.
type RemapPress struct {
	Button button.Button
	Latch  flag.Index
}

func (RemapPress) Native() event.NativeOp { return event.Block }

func (a RemapPress) Run(ev event.ButtonEvent, state *flag.State, tx chan<- FlagEvent, emu Emulator) {
	sendFlagEvent(tx, a.Latch, condition.FlagEnabled, state, ev)
	emu.PressRecursive(a.Button)
}

// RemapRelease is RemapPress's release-side counterpart.
type RemapRelease struct {
	Button button.Button
	Latch  flag.Index
}

func (RemapRelease) Native() event.NativeOp { return event.Block }

func (a RemapRelease) Run(ev event.ButtonEvent, state *flag.State, tx chan<- FlagEvent, emu Emulator) {
	sendFlagEvent(tx, a.Latch, condition.FlagDisabled, state, ev)
	emu.ReleaseRecursive(a.Button)
}

// EnableFlagAction sets a flag and reports the resulting transition.
type EnableFlagAction struct {
	Flag flag.Index
}

func (EnableFlagAction) Native() event.NativeOp { return event.Dispatch }

func (a EnableFlagAction) Run(ev event.ButtonEvent, state *flag.State, tx chan<- FlagEvent, _ Emulator) {
	state.Enable(a.Flag)
	sendFlagEvent(tx, a.Flag, condition.FlagEnabled, state, ev)
}

// DisableFlagAction clears a flag and reports the resulting transition.
type DisableFlagAction struct {
	Flag flag.Index
}

func (DisableFlagAction) Native() event.NativeOp { return event.Dispatch }

func (a DisableFlagAction) Run(ev event.ButtonEvent, state *flag.State, tx chan<- FlagEvent, _ Emulator) {
	state.Disable(a.Flag)
	sendFlagEvent(tx, a.Flag, condition.FlagDisabled, state, ev)
}

// BlockAction suppresses the native event and does nothing else.
type BlockAction struct{}

func (BlockAction) Native() event.NativeOp { return event.Block }

func (BlockAction) Run(event.ButtonEvent, *flag.State, chan<- FlagEvent, Emulator) {}
