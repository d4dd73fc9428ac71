package storage

import (
	"testing"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

func emptyView() *view.View { return view.NewBuilder().Build() }

func TestButtonHooksFindPrefersTargetOverAny(t *testing.T) {
	var bh ButtonHooks
	state := flag.New(0)

	bh.Any().AddAction(NewHook[HookAction](emptyView(), BlockAction{}))
	bh.Target(button.A).AddAction(NewHook[HookAction](emptyView(), EnableFlagAction{Flag: 0}))

	action, has, _, _ := bh.Find(state, button.A)
	if !has {
		t.Fatal("expected a match")
	}
	if _, ok := action.(EnableFlagAction); !ok {
		t.Fatalf("expected the target-specific action to win, got %#v", action)
	}
}

func TestButtonHooksFindIgnoreSet(t *testing.T) {
	var bh ButtonHooks
	state := flag.New(0)

	bh.Any().AddAction(NewIgnoreHook[HookAction](emptyView(), BlockAction{}, []button.Button{button.LShift, button.LCtrl}))

	if _, has, _, _ := bh.Find(state, button.LShift); has {
		t.Fatal("ignored target must not match the any-bucket hook")
	}
	if _, has, _, _ := bh.Find(state, button.A); !has {
		t.Fatal("non-ignored target must match the any-bucket hook")
	}
}

func TestInputHooksFilterNativeOpPriority(t *testing.T) {
	h := &InputHooks[event.ButtonEvent]{}
	h.AddProcedure(NewHook[ProcedureHook[event.ButtonEvent]](emptyView(), ProcedureHook[event.ButtonEvent]{
		Procedure: NewRequiredProcedure(func(event.ButtonEvent) {}),
		Native:    event.Dispatch,
	}))
	h.AddAction(NewHook[HookAction](emptyView(), BlockAction{}))

	_, _, native := h.Filter(flag.New(0), button.A, false)
	if native != event.Block {
		t.Fatalf("expected Block to win over Dispatch, got %v", native)
	}
}

func TestInputHooksFindActionOnlyReportsActionNative(t *testing.T) {
	h := &InputHooks[event.ButtonEvent]{}
	h.AddAction(NewHook[HookAction](emptyView(), EnableFlagAction{Flag: 0}))

	_, hasAction, proc, native := h.Find(flag.New(1), button.A, false)
	if !hasAction || proc != nil {
		t.Fatal("expected only the action to match")
	}
	if native != event.Dispatch {
		t.Fatalf("EnableFlagAction reports Dispatch, got %v", native)
	}
}
