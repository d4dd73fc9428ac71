package compile

import (
	"testing"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/storage"
)

func TestContextModifierExpandsToBothPhysicalSides(t *testing.T) {
	ctx := NewContext().Modifier(button.Ctrl)
	var ft flagTable
	views := ctx.views(&ft)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2 (LCtrl, RCtrl)", len(views))
	}

	lctrl, rctrl := ft.modifierFlag(button.LCtrl), ft.modifierFlag(button.RCtrl)

	leftHeld := flag.New(2)
	leftHeld.Enable(lctrl)
	if !(views[0].IsEnabled(leftHeld) || views[1].IsEnabled(leftHeld)) {
		t.Fatal("LCtrl-only state should satisfy one of the expanded views")
	}

	rightHeld := flag.New(2)
	rightHeld.Enable(rctrl)
	if !(views[0].IsEnabled(rightHeld) || views[1].IsEnabled(rightHeld)) {
		t.Fatal("RCtrl-only state should satisfy one of the expanded views")
	}

	neither := flag.New(2)
	if views[0].IsEnabled(neither) || views[1].IsEnabled(neither) {
		t.Fatal("neither side pressed must satisfy neither expanded view")
	}
}

func TestContextWithoutModifierRequiresBothSidesUp(t *testing.T) {
	ctx := NewContext().WithoutModifier(button.Shift)
	var ft flagTable
	views := ctx.views(&ft)
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1 (single AND-of-negations view)", len(views))
	}

	lshift := ft.modifierFlag(button.LShift)

	neither := flag.New(2)
	if !views[0].IsEnabled(neither) {
		t.Fatal("neither shift pressed should satisfy WithoutModifier(Shift)")
	}

	held := flag.New(2)
	held.Enable(lshift)
	if views[0].IsEnabled(held) {
		t.Fatal("LShift held must violate WithoutModifier(Shift)")
	}
}

func TestRemapRegistersBlockingPressAndLatchedRelease(t *testing.T) {
	c := New()
	if err := c.Remap(NewContext(), []button.Button{button.CapsLock}, button.Esc); err != nil {
		t.Fatalf("Remap: %v", err)
	}
	prog := c.Build()

	state := flag.New(prog.NumFlags)
	action, hasAction, _, native := prog.Hooks.RemapOnPress.Find(state, button.CapsLock)
	if !hasAction {
		t.Fatal("expected a remap-on-press action for CapsLock")
	}
	if native != event.Block {
		t.Fatalf("remap press native = %v, want Block", native)
	}
	rp, ok := action.(storage.RemapPress)
	if !ok {
		t.Fatalf("action is %T, want storage.RemapPress", action)
	}
	if rp.Button != button.Esc {
		t.Fatalf("remap press targets %v, want Escape", rp.Button)
	}

	// Before the latch is set, the release side must not match.
	_, hasRelease, _, _ := prog.Hooks.RemapOnRelease.Find(state, button.CapsLock)
	if hasRelease {
		t.Fatal("release action must not match before the latch is enabled")
	}

	state.Enable(rp.Latch)
	relAction, hasRelAction, _, relNative := prog.Hooks.RemapOnRelease.Find(state, button.CapsLock)
	if !hasRelAction {
		t.Fatal("release action must match once the latch is enabled")
	}
	if relNative != event.Block {
		t.Fatalf("remap release native = %v, want Block", relNative)
	}
	if rr, ok := relAction.(storage.RemapRelease); !ok || rr.Button != button.Esc {
		t.Fatalf("release action = %#v, want RemapRelease{Escape}", relAction)
	}
}

func TestRemapEmptyTargetsRejected(t *testing.T) {
	if err := New().Remap(NewContext(), nil, button.Esc); err != ErrEmptyTargets {
		t.Fatalf("got %v, want ErrEmptyTargets", err)
	}
}

func TestOnReleaseLatchSurvivesModifierRelease(t *testing.T) {
	c := New()
	ctx := NewContext().Modifier(button.LCtrl)
	if err := c.OnRelease(ctx, []button.Button{button.A}, func(*event.ButtonEvent) {}); err != nil {
		t.Fatalf("OnRelease: %v", err)
	}
	prog := c.Build()

	state := flag.New(prog.NumFlags)
	lctrlAction, hasLctrlAction, _, _ := prog.Hooks.OnPress.Find(state, button.LCtrl)
	if !hasLctrlAction {
		t.Fatal("expected the always-on LCtrl mirror action on press")
	}
	tx := make(chan storage.FlagEvent, 4)
	lctrlAction.Run(event.ButtonEvent{Target: button.LCtrl, Action: button.Press}, state, tx, nil)
	drain(tx)

	// Press A while LCtrl held: the on_press bucket must enable a private
	// latch flag (distinct from the LCtrl mirror flag).
	aAction, hasAAction, _, _ := prog.Hooks.OnPress.Find(state, button.A)
	if !hasAAction {
		t.Fatal("expected a latch-enable action for A under LCtrl")
	}
	aAction.Run(event.ButtonEvent{Target: button.A, Action: button.Press}, state, tx, nil)
	drain(tx)

	// Release LCtrl: the view (LCtrl-enabled) used to gate A's release is
	// now inactive, but the latch itself must still carry the pending
	// release independent of ctx's modifier.
	lctrlRelease, hasLctrlRelease, _, _ := prog.Hooks.OnRelease.Find(state, button.LCtrl)
	if !hasLctrlRelease {
		t.Fatal("expected the always-on LCtrl mirror action on release")
	}
	lctrlRelease.Run(event.ButtonEvent{Target: button.LCtrl, Action: button.Release}, state, tx, nil)
	drain(tx)

	releaseAction, hasReleaseAction, _, _ := prog.Hooks.OnRelease.Find(state, button.A)
	if !hasReleaseAction {
		t.Fatal("release of A must still match on the latch alone after LCtrl was released")
	}
	if _, ok := releaseAction.(storage.DisableFlagAction); !ok {
		t.Fatalf("release action = %#v, want DisableFlagAction", releaseAction)
	}
}

func drain(tx chan storage.FlagEvent) {
	for {
		select {
		case <-tx:
		default:
			return
		}
	}
}
