// Package view implements the View predicate over flag.State: a
// conjunction of required-enabled and required-disabled flags.
package view

import "github.com/aluo96078/hookwire/flag"

// View is a predicate: {enabled: set of flags that must be set, disabled:
// set of flags that must be clear}. An empty View is always active.
type View struct {
	Enabled  flag.BitSet
	Disabled flag.BitSet
}

// IsEnabled reports whether v is active in state: word-wise, for every
// word, (state & enabled) == enabled and (state & disabled) == 0. Empty
// mask words trivially pass.
func (v *View) IsEnabled(state *flag.State) bool {
	n := v.Enabled.NumWords()
	if v.Disabled.NumWords() > n {
		n = v.Disabled.NumWords()
	}
	for i := 0; i < n; i++ {
		sw := state.Word(i)
		if sw&v.Enabled.Word(i) != v.Enabled.Word(i) {
			return false
		}
		if sw&v.Disabled.Word(i) != 0 {
			return false
		}
	}
	return true
}

// Builder assembles a View from individual flag requirements.
type Builder struct {
	v View
}

func NewBuilder() *Builder { return &Builder{} }

// Enabled requires flag i to be set.
func (bld *Builder) Enabled(i flag.Index) *Builder {
	bld.v.Enabled.Set(i)
	return bld
}

// Disabled requires flag i to be clear.
func (bld *Builder) Disabled(i flag.Index) *Builder {
	bld.v.Disabled.Set(i)
	return bld
}

// Merge folds another view's requirements into this builder.
func (bld *Builder) Merge(o *View) *Builder {
	bld.v.Enabled.Merge(&o.Enabled)
	bld.v.Disabled.Merge(&o.Disabled)
	return bld
}

// Build returns the assembled View.
func (bld *Builder) Build() *View {
	return &View{Enabled: bld.v.Enabled, Disabled: bld.v.Disabled}
}
