package condition

import (
	"testing"

	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

func detectSingle(t *testing.T, v *view.View, detected []DetectedView) *ViewChange {
	t.Helper()
	if len(detected) > 1 {
		t.Fatalf("expected at most one detected view, got %d", len(detected))
	}
	if len(detected) == 0 {
		return nil
	}
	if detected[0].View != v {
		t.Fatal("detected view is not the registered view")
	}
	c := detected[0].Change
	return &c
}

func TestEnabledFlag(t *testing.T) {
	cases := []struct {
		flagState  bool
		flagChange FlagChange
		want       *ViewChange
	}{
		{true, FlagEnabled, nil},
		{true, FlagDisabled, vcPtr(ViewDisabled)},
		{false, FlagEnabled, vcPtr(ViewEnabled)},
		{false, FlagDisabled, nil},
	}
	for _, c := range cases {
		state := flag.New(1)
		state.Set(0, c.flagState)
		var d Detector
		v := view.NewBuilder().Enabled(0).Build()
		d.Observe(v)

		got := detectSingle(t, v, d.Detect(state, 0, c.flagChange))
		if !eqViewChange(got, c.want) {
			t.Fatalf("got %v, want %v", got, c.want)
		}
	}
}

func TestDisabledFlag(t *testing.T) {
	cases := []struct {
		flagState  bool
		flagChange FlagChange
		want       *ViewChange
	}{
		{true, FlagEnabled, nil},
		{true, FlagDisabled, vcPtr(ViewEnabled)},
		{false, FlagEnabled, vcPtr(ViewDisabled)},
		{false, FlagDisabled, nil},
	}
	for _, c := range cases {
		state := flag.New(1)
		state.Set(0, c.flagState)
		var d Detector
		v := view.NewBuilder().Disabled(0).Build()
		d.Observe(v)

		got := detectSingle(t, v, d.Detect(state, 0, c.flagChange))
		if !eqViewChange(got, c.want) {
			t.Fatalf("got %v, want %v", got, c.want)
		}
	}
}

func vcPtr(c ViewChange) *ViewChange { return &c }

func eqViewChange(a, b *ViewChange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type registerFn func(*view.Builder, flag.Index) *view.Builder

func regEnabled(b *view.Builder, f flag.Index) *view.Builder  { return b.Enabled(f) }
func regDisabled(b *view.Builder, f flag.Index) *view.Builder { return b.Disabled(f) }

func TestTwoFlags(t *testing.T) {
	type tc struct {
		f1         bool
		f1Register registerFn
		f2         bool
		f2Register registerFn
		f1Change   FlagChange
		want       *ViewChange
	}
	cases := []tc{
		{true, regEnabled, true, regEnabled, FlagEnabled, nil},
		{true, regEnabled, true, regEnabled, FlagDisabled, vcPtr(ViewDisabled)},
		{true, regEnabled, true, regDisabled, FlagEnabled, nil},
		{true, regEnabled, true, regDisabled, FlagDisabled, nil},
		{true, regEnabled, false, regEnabled, FlagEnabled, nil},
		{true, regEnabled, false, regEnabled, FlagDisabled, nil},
		{true, regEnabled, false, regDisabled, FlagEnabled, nil},
		{true, regEnabled, false, regDisabled, FlagDisabled, vcPtr(ViewDisabled)},
		{true, regDisabled, true, regEnabled, FlagEnabled, nil},
		{true, regDisabled, true, regEnabled, FlagDisabled, vcPtr(ViewEnabled)},
		{true, regDisabled, true, regDisabled, FlagEnabled, nil},
		{true, regDisabled, true, regDisabled, FlagDisabled, nil},
		{true, regDisabled, false, regEnabled, FlagEnabled, nil},
		{true, regDisabled, false, regEnabled, FlagDisabled, nil},
		{true, regDisabled, false, regDisabled, FlagEnabled, nil},
		{true, regDisabled, false, regDisabled, FlagDisabled, vcPtr(ViewEnabled)},
		{false, regEnabled, true, regEnabled, FlagEnabled, vcPtr(ViewEnabled)},
		{false, regEnabled, true, regEnabled, FlagDisabled, nil},
		{false, regEnabled, true, regDisabled, FlagEnabled, nil},
		{false, regEnabled, true, regDisabled, FlagDisabled, nil},
		{false, regEnabled, false, regEnabled, FlagEnabled, nil},
		{false, regEnabled, false, regEnabled, FlagDisabled, nil},
		{false, regEnabled, false, regDisabled, FlagEnabled, vcPtr(ViewEnabled)},
		{false, regEnabled, false, regDisabled, FlagDisabled, nil},
		{false, regDisabled, true, regEnabled, FlagEnabled, vcPtr(ViewDisabled)},
		{false, regDisabled, true, regEnabled, FlagDisabled, nil},
		{false, regDisabled, true, regDisabled, FlagEnabled, nil},
		{false, regDisabled, true, regDisabled, FlagDisabled, nil},
		{false, regDisabled, false, regEnabled, FlagEnabled, nil},
		{false, regDisabled, false, regEnabled, FlagDisabled, nil},
		{false, regDisabled, false, regDisabled, FlagEnabled, vcPtr(ViewDisabled)},
		{false, regDisabled, false, regDisabled, FlagDisabled, nil},
	}

	for i, c := range cases {
		state := flag.New(2)
		state.Set(0, c.f1)
		state.Set(1, c.f2)

		var d Detector
		b := view.NewBuilder()
		b = c.f1Register(b, 0)
		b = c.f2Register(b, 1)
		v := b.Build()
		d.Observe(v)

		detected := d.Detect(state, 0, c.f1Change)
		if len(detected) > 1 {
			t.Fatalf("case %d: expected at most one detected view, got %d", i, len(detected))
		}
		var got *ViewChange
		if len(detected) == 1 {
			if detected[0].View != v {
				t.Fatalf("case %d: detected view is not the registered view", i)
			}
			got = &detected[0].Change
		}
		if !eqViewChange(got, c.want) {
			t.Fatalf("case %d: got %v, want %v", i, got, c.want)
		}
	}
}
