// Package compile turns a declarative hotkey program — remaps,
// press/release procedures, disables, mouse hooks, all expressed under a
// Context of required modifiers — into the compiled storage tables the
// runtime dispatcher queries. It is the only place flag.Index values are
// allocated.
package compile

import (
	"errors"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/storage"
	"github.com/aluo96078/hookwire/view"
)

// ErrEmptyTargets is returned when a remap, on_press, on_release, or
// disable entry names no target buttons.
var ErrEmptyTargets = errors.New("compile: entry has no target buttons")

// flagTable allocates flag indices and lazily caches the flags that mirror
// physical modifier-button state. Which buttons already have their
// EnableFlag/DisableFlag mirror hooks installed is recorded separately, in
// Compiler.modifierMirrored.
type flagTable struct {
	next     flag.Index
	byButton map[button.Button]flag.Index
}

func (t *flagTable) alloc() flag.Index {
	i := t.next
	t.next++
	return i
}

func (t *flagTable) modifierFlag(b button.Button) flag.Index {
	if t.byButton == nil {
		t.byButton = make(map[button.Button]flag.Index)
	}
	if i, ok := t.byButton[b]; ok {
		return i
	}
	i := t.alloc()
	t.byButton[b] = i
	return i
}

// Program is the compiled result: the flag count to size a flag.State
// with, and the two storage tables the dispatcher reads from.
type Program struct {
	NumFlags  int
	Hooks     *storage.InputHookStorage
	ViewHooks *storage.ViewHookStorage
}

// Compiler accumulates hook registrations and lowers them into a Program.
// The zero value is not usable; construct with New.
type Compiler struct {
	flags     flagTable
	hooks     storage.InputHookStorage
	viewHooks storage.ViewHookStorage

	modifierMirrored map[button.Button]bool
}

func New() *Compiler {
	return &Compiler{modifierMirrored: make(map[button.Button]bool)}
}

// AllocFlag reserves a fresh internal flag for use outside the modifier
// system (e.g. a user-visible toggle driven by custom actions).
func (c *Compiler) AllocFlag() flag.Index {
	return c.flags.alloc()
}

// ensureModifierMirrors installs, at most once per physical button
// referenced anywhere in the program, a pair of always-active hooks that
// keep that button's flag in lockstep with its physical press state.
func (c *Compiler) ensureModifierMirrors(ctx Context) {
	for _, b := range append(append([]button.Button(nil), ctx.requireEnabled...), ctx.requireDisabled...) {
		sides := []button.Button{b}
		if left, right, ok := b.Physical(); ok {
			sides = []button.Button{left, right}
		}
		for _, side := range sides {
			if c.modifierMirrored[side] {
				continue
			}
			c.modifierMirrored[side] = true
			f := c.flags.modifierFlag(side)
			empty := view.NewBuilder().Build()
			c.hooks.OnPress.Target(side).AddAction(storage.NewHook[storage.HookAction](empty, storage.EnableFlagAction{Flag: f}))
			c.hooks.OnRelease.Target(side).AddAction(storage.NewHook[storage.HookAction](empty, storage.DisableFlagAction{Flag: f}))
		}
	}
}

// Remap registers a remap of every button in targets to dst while ctx's
// view is active: press synthesizes a recursive press of dst and raises a
// fresh latch flag; release (guarded by the latch, so it tracks the
// remap's own activation rather than the current modifier state) releases
// dst and clears the latch.
func (c *Compiler) Remap(ctx Context, targets []button.Button, dst button.Button) error {
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	c.ensureModifierMirrors(ctx)

	for _, t := range targets {
		latch := c.flags.alloc()
		for _, v := range ctx.views(&c.flags) {
			c.hooks.RemapOnPress.Target(t).AddAction(
				storage.NewHook[storage.HookAction](v, storage.RemapPress{Button: dst, Latch: latch}))

			// Gated on the latch alone, not on v: the release must clear the
			// latch even if the originating view's modifiers let go before
			// the remapped button itself comes back up.
			released := view.NewBuilder().Enabled(latch).Build()
			c.hooks.RemapOnRelease.Target(t).AddAction(
				storage.NewHook[storage.HookAction](released, storage.RemapRelease{Button: dst, Latch: latch}))
		}
	}
	return nil
}

// OnPress registers proc to run on every press of a target in targets
// while ctx's view is active.
func (c *Compiler) OnPress(ctx Context, targets []button.Button, proc func(event.ButtonEvent)) error {
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	c.ensureModifierMirrors(ctx)
	p := storage.NewRequiredProcedure(proc)
	for _, t := range targets {
		for _, v := range ctx.views(&c.flags) {
			c.hooks.OnPress.Target(t).AddProcedure(
				storage.NewHook[storage.ProcedureHook[event.ButtonEvent]](v, storage.ProcedureHook[event.ButtonEvent]{Procedure: p, Native: ctx.native}))
		}
	}
	return nil
}

// OnRelease registers proc to run on the release of a target in targets
// that was pressed while ctx's view was active, even if the view becomes
// inactive (a modifier is released) before the button itself comes up: a
// private latch flag records "press was seen under this view" and the
// procedure is wired to the latch's own on_disabled transition rather than
// to the physical release event directly.
func (c *Compiler) OnRelease(ctx Context, targets []button.Button, proc func(*event.ButtonEvent)) error {
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	c.ensureModifierMirrors(ctx)
	p := storage.NewOptionalProcedure(proc)

	for _, t := range targets {
		latch := c.flags.alloc()
		for _, v := range ctx.views(&c.flags) {
			c.hooks.OnPress.Target(t).AddAction(
				storage.NewHook[storage.HookAction](v, storage.EnableFlagAction{Flag: latch}))

			released := view.NewBuilder().Enabled(latch).Build()
			c.hooks.OnRelease.Target(t).AddAction(
				storage.NewHook[storage.HookAction](released, storage.DisableFlagAction{Flag: latch}))

			c.viewHooks.AddProcedureOnDisabled(released, p)
		}
	}
	return nil
}

// Disable registers a hard block on every target in targets, for both
// press and release, while ctx's view is active.
func (c *Compiler) Disable(ctx Context, targets []button.Button) error {
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	c.ensureModifierMirrors(ctx)
	for _, t := range targets {
		for _, v := range ctx.views(&c.flags) {
			c.hooks.OnPress.Target(t).AddAction(storage.NewHook[storage.HookAction](v, storage.BlockAction{}))
			c.hooks.OnRelease.Target(t).AddAction(storage.NewHook[storage.HookAction](v, storage.BlockAction{}))
		}
	}
	return nil
}

// OnAnyPress registers proc for presses of any button not in ignore,
// while ctx's view is active.
func (c *Compiler) OnAnyPress(ctx Context, ignore []button.Button, proc func(event.ButtonEvent)) error {
	c.ensureModifierMirrors(ctx)
	p := storage.NewRequiredProcedure(proc)
	for _, v := range ctx.views(&c.flags) {
		c.hooks.OnPress.Any().AddProcedure(
			storage.NewIgnoreHook[storage.ProcedureHook[event.ButtonEvent]](
				v, storage.ProcedureHook[event.ButtonEvent]{Procedure: p, Native: ctx.native}, ignore))
	}
	return nil
}

// MouseCursor registers proc to run on every cursor-move event while
// ctx's view is active.
func (c *Compiler) MouseCursor(ctx Context, proc func(event.CursorEvent)) error {
	c.ensureModifierMirrors(ctx)
	p := storage.NewRequiredProcedure(proc)
	for _, v := range ctx.views(&c.flags) {
		c.hooks.MouseCursor.AddProcedure(
			storage.NewHook[storage.ProcedureHook[event.CursorEvent]](v, storage.ProcedureHook[event.CursorEvent]{Procedure: p, Native: ctx.native}))
	}
	return nil
}

// MouseWheel registers proc to run on every wheel event while ctx's view
// is active.
func (c *Compiler) MouseWheel(ctx Context, proc func(event.WheelEvent)) error {
	c.ensureModifierMirrors(ctx)
	p := storage.NewRequiredProcedure(proc)
	for _, v := range ctx.views(&c.flags) {
		c.hooks.MouseWheel.AddProcedure(
			storage.NewHook[storage.ProcedureHook[event.WheelEvent]](v, storage.ProcedureHook[event.WheelEvent]{Procedure: p, Native: ctx.native}))
	}
	return nil
}

// Build finalizes the program. The Compiler must not be used afterward.
func (c *Compiler) Build() *Program {
	return &Program{
		NumFlags:  int(c.flags.next),
		Hooks:     &c.hooks,
		ViewHooks: &c.viewHooks,
	}
}
