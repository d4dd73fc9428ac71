package event

import "testing"

func TestNativeOpOr(t *testing.T) {
	cases := []struct {
		a, b, want NativeOp
	}{
		{Dispatch, Dispatch, Dispatch},
		{Block, Dispatch, Block},
		{Dispatch, Block, Block},
		{Block, Block, Block},
	}
	for _, c := range cases {
		if got := c.a.Or(c.b); got != c.want {
			t.Fatalf("%v.Or(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestHandlerReleaseDefaultsToDispatch(t *testing.T) {
	reply := make(chan NativeOp, 1)
	h := NewHandler(reply)
	h.Release()

	select {
	case op := <-reply:
		if op != Dispatch {
			t.Fatalf("unresolved handler released as %v, want Dispatch", op)
		}
	default:
		t.Fatal("Release must resolve the handler")
	}
}

func TestHandlerExplicitBlockWins(t *testing.T) {
	reply := make(chan NativeOp, 1)
	h := NewHandler(reply)
	h.Block()
	h.Release() // must be a no-op now

	op := <-reply
	if op != Block {
		t.Fatalf("got %v, want Block", op)
	}
	select {
	case extra := <-reply:
		t.Fatalf("Release after Block sent a second reply: %v", extra)
	default:
	}
}
