// Package condition implements the change detector: given a single flag
// transition, it enumerates the views whose enabled-status changed as a
// direct result of that transition, evaluated against the pre-transition
// snapshot so an inactivation fires exactly once per transition.
package condition

import (
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

// FlagChange is the direction a single flag just transitioned.
type FlagChange int

const (
	FlagEnabled FlagChange = iota
	FlagDisabled
)

// ViewChange is the outcome to report for a view whose activation status
// changed.
type ViewChange int

const (
	ViewEnabled ViewChange = iota
	ViewDisabled
)

type observer struct {
	view             *view.View
	viewChange       ViewChange
	flagBeforeChange *bool
}

// detect reports whether this observer's view changed as claimed, given
// that changedFlag is about to transition and state still reflects the
// pre-transition value. If flagBeforeChange is set, it first verifies the
// flag held that value before the transition (guards against re-entrant or
// out-of-order calls), then checks activation against the flipped-forward
// snapshot.
func (o *observer) detect(changedFlag flag.Index, state *flag.State) bool {
	if o.flagBeforeChange == nil {
		return o.view.IsEnabled(state)
	}
	before := *o.flagBeforeChange
	previous := state.Get(changedFlag)
	if previous != before {
		return false
	}
	state.Set(changedFlag, !before)
	detected := o.view.IsEnabled(state)
	state.Set(changedFlag, previous)
	return detected
}

// DetectedView is one view whose activation status changed.
type DetectedView struct {
	View   *view.View
	Change ViewChange
}

// Detector indexes views by the flags they reference, so a single flag
// transition can cheaply find every view that might have changed status.
type Detector struct {
	onEnable   [][]observer
	onDisabled [][]observer
}

func (d *Detector) resize(f flag.Index) {
	if len(d.onEnable) <= int(f) {
		grown := make([][]observer, int(f)+1)
		copy(grown, d.onEnable)
		d.onEnable = grown
	}
	if len(d.onDisabled) <= int(f) {
		grown := make([][]observer, int(f)+1)
		copy(grown, d.onDisabled)
		d.onDisabled = grown
	}
}

func boolPtr(b bool) *bool { return &b }

// Observe registers v so its activation transitions are found by future
// Detect calls. Safe to call more than once for the same view (registers
// it again); callers that want "once per unique view" semantics (storage's
// view-hook tables) must dedupe before calling.
func (d *Detector) Observe(v *view.View) {
	for _, f := range v.Enabled.Indices() {
		d.resize(f)
		d.onEnable[f] = append(d.onEnable[f], observer{
			view:             v,
			viewChange:       ViewEnabled,
			flagBeforeChange: boolPtr(false),
		})
		d.onDisabled[f] = append(d.onDisabled[f], observer{
			view:             v,
			viewChange:       ViewDisabled,
			flagBeforeChange: nil,
		})
	}
	for _, f := range v.Disabled.Indices() {
		d.resize(f)
		d.onEnable[f] = append(d.onEnable[f], observer{
			view:             v,
			viewChange:       ViewDisabled,
			flagBeforeChange: nil,
		})
		d.onDisabled[f] = append(d.onDisabled[f], observer{
			view:             v,
			viewChange:       ViewEnabled,
			flagBeforeChange: boolPtr(true),
		})
	}
}

// Detect returns every view whose activation changed as a direct result of
// changedFlag transitioning in the direction flagChange. state must still
// reflect the pre-transition value of changedFlag; it is temporarily
// mutated and restored during evaluation.
func (d *Detector) Detect(state *flag.State, changedFlag flag.Index, flagChange FlagChange) []DetectedView {
	table := d.onEnable
	if flagChange == FlagDisabled {
		table = d.onDisabled
	}
	if int(changedFlag) >= len(table) {
		return nil
	}
	var out []DetectedView
	for _, o := range table[changedFlag] {
		if o.detect(changedFlag, state) {
			out = append(out, DetectedView{View: o.view, Change: o.viewChange})
		}
	}
	return out
}
