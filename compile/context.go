package compile

import (
	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

// Context is the lexical state threaded through a declarative hotkey
// program: which modifiers must be held (or released) and the implicit
// native-op attribute (block vs dispatch) in effect. It is an explicit
// value passed by copy into each compiler call — no chained builder
// objects, no hidden mutable state.
type Context struct {
	requireEnabled  []button.Button
	requireDisabled []button.Button
	native          event.NativeOp
}

// NewContext returns the root context: no modifiers required, native-op
// Dispatch.
func NewContext() Context {
	return Context{native: event.Dispatch}
}

// Modifier returns a copy of c additionally requiring every button in
// pressed to be held. A logical modifier (Ctrl, Shift, Alt, Super) is
// satisfied by either physical side.
func (c Context) Modifier(pressed ...button.Button) Context {
	c.requireEnabled = append(append([]button.Button(nil), c.requireEnabled...), pressed...)
	return c
}

// WithoutModifier returns a copy of c additionally requiring every button
// in released to be up. For a logical modifier this requires both sides
// up.
func (c Context) WithoutModifier(released ...button.Button) Context {
	c.requireDisabled = append(append([]button.Button(nil), c.requireDisabled...), released...)
	return c
}

// Block returns a copy of c with the native-op attribute set to Block.
func (c Context) Block() Context {
	c.native = event.Block
	return c
}

// Dispatch returns a copy of c with the native-op attribute set to
// Dispatch (the default).
func (c Context) Dispatch() Context {
	c.native = event.Dispatch
	return c
}

type branch struct {
	enabled  []flag.Index
	disabled []flag.Index
}

func appended(s []flag.Index, f flag.Index) []flag.Index {
	out := make([]flag.Index, len(s), len(s)+1)
	copy(out, s)
	return append(out, f)
}

// views expands c into the set of concrete Views that together match
// "every required-enabled modifier is held (on some side, for logical
// modifiers) and every required-disabled modifier is up (on both sides,
// for logical modifiers)". Views is a pure conjunction, so OR-matching a
// logical modifier's two physical sides is expressed as one alternative
// View per side; a hook registered under every view in the result fires
// under exactly the same conditions a single OR'd predicate would.
func (c Context) views(flags *flagTable) []*view.View {
	branches := []branch{{}}

	for _, b := range c.requireDisabled {
		if left, right, ok := b.Physical(); ok {
			lf, rf := flags.modifierFlag(left), flags.modifierFlag(right)
			for i := range branches {
				branches[i].disabled = appended(branches[i].disabled, lf)
				branches[i].disabled = appended(branches[i].disabled, rf)
			}
			continue
		}
		f := flags.modifierFlag(b)
		for i := range branches {
			branches[i].disabled = appended(branches[i].disabled, f)
		}
	}

	for _, b := range c.requireEnabled {
		if left, right, ok := b.Physical(); ok {
			lf, rf := flags.modifierFlag(left), flags.modifierFlag(right)
			var next []branch
			for _, br := range branches {
				next = append(next, branch{enabled: appended(br.enabled, lf), disabled: br.disabled})
				next = append(next, branch{enabled: appended(br.enabled, rf), disabled: br.disabled})
			}
			branches = next
			continue
		}
		f := flags.modifierFlag(b)
		for i := range branches {
			branches[i].enabled = appended(branches[i].enabled, f)
		}
	}

	views := make([]*view.View, 0, len(branches))
	for _, br := range branches {
		bld := view.NewBuilder()
		for _, f := range br.enabled {
			bld.Enabled(f)
		}
		for _, f := range br.disabled {
			bld.Disabled(f)
		}
		views = append(views, bld.Build())
	}
	return views
}
