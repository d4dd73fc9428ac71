package button

import "testing"

func TestParseRoundTripsWithString(t *testing.T) {
	cases := []Button{A, Space, CapsLock, Esc, LCtrl, RCtrl, Ctrl, LeftButton}
	for _, b := range cases {
		name := b.String()
		got, ok := Parse(name)
		if !ok {
			t.Fatalf("Parse(%q) failed to find a button", name)
		}
		if got != b {
			t.Fatalf("Parse(%q) = %v, want %v", name, got, b)
		}
	}
}

func TestParseUnknownNameFails(t *testing.T) {
	if _, ok := Parse("NotAButton"); ok {
		t.Fatal("Parse should fail for a name not in the table")
	}
}

func TestPhysicalFanOut(t *testing.T) {
	left, right, ok := Ctrl.Physical()
	if !ok || left != LCtrl || right != RCtrl {
		t.Fatalf("Ctrl.Physical() = (%v, %v, %v), want (LCtrl, RCtrl, true)", left, right, ok)
	}
	if _, _, ok := A.Physical(); ok {
		t.Fatal("a non-logical button must not report a physical fan-out")
	}
}

func TestIsLogicalModifier(t *testing.T) {
	for _, b := range []Button{Shift, Ctrl, Alt, Super} {
		if !b.IsLogicalModifier() {
			t.Fatalf("%v should be a logical modifier", b)
		}
	}
	if A.IsLogicalModifier() {
		t.Fatal("A must not be a logical modifier")
	}
}

func TestKindClassifiesMouseVsKey(t *testing.T) {
	if LeftButton.Kind() != Mouse {
		t.Fatal("LeftButton should classify as Mouse")
	}
	if A.Kind() != Key {
		t.Fatal("A should classify as Key")
	}
}
