package flag

import "testing"

func TestStateEnableDisableGet(t *testing.T) {
	s := New(4)
	if s.Get(2) {
		t.Fatal("flag 2 should start clear")
	}
	s.Enable(2)
	if !s.Get(2) {
		t.Fatal("flag 2 should be set after Enable")
	}
	s.Disable(2)
	if s.Get(2) {
		t.Fatal("flag 2 should be clear after Disable")
	}
}

func TestStateGrowsPastInitialSize(t *testing.T) {
	s := New(1)
	s.Enable(200)
	if !s.Get(200) {
		t.Fatal("Set/Enable must grow backing storage past the initial word count")
	}
	if s.Get(199) {
		t.Fatal("growing must not spuriously set neighboring flags")
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := New(4)
	s.Enable(1)
	c := s.Clone()
	c.Enable(2)
	if s.Get(2) {
		t.Fatal("mutating a clone must not affect the original")
	}
	if !c.Get(1) {
		t.Fatal("clone must carry the original's flags")
	}
}

func TestStateEqualIgnoresTrailingZeroWords(t *testing.T) {
	a := New(1)
	b := New(200)
	a.Enable(3)
	b.Enable(3)
	if !a.Equal(b) {
		t.Fatal("states with the same set bits but different capacity should be equal")
	}
	b.Enable(150)
	if a.Equal(b) {
		t.Fatal("states must not be equal once b has an extra bit set beyond a's capacity")
	}
}

func TestBitSetSetHasIndicesMerge(t *testing.T) {
	var a, b BitSet
	a.Set(1)
	a.Set(65)
	if !a.Has(1) || !a.Has(65) {
		t.Fatal("Has must report members set across word boundaries")
	}
	if a.Has(2) {
		t.Fatal("Has must not report non-members")
	}

	b.Set(2)
	a.Merge(&b)
	if !a.Has(2) {
		t.Fatal("Merge must add the other set's members")
	}

	got := a.Indices()
	if len(got) != 3 {
		t.Fatalf("Indices returned %d entries, want 3", len(got))
	}
}
