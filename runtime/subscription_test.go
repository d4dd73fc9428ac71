package runtime

import (
	"testing"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
)

func TestBrokerBlockConsumesMatchingEvent(t *testing.T) {
	var b broker
	reply := b.subscribe(NewFilter().Target(button.A), event.Block)

	op := b.publish(event.ButtonEvent{Target: button.A, Action: button.Press})
	if op != event.Block {
		t.Fatalf("publish = %v, want Block", op)
	}
	select {
	case ev := <-reply:
		if ev.Target != button.A {
			t.Fatalf("got %v", ev)
		}
	default:
		t.Fatal("subscriber did not receive the matching event")
	}
}

func TestBrokerBlockIgnoresNonMatchingEvent(t *testing.T) {
	var b broker
	b.subscribe(NewFilter().Target(button.A), event.Block)

	op := b.publish(event.ButtonEvent{Target: button.B, Action: button.Press})
	if op != event.Dispatch {
		t.Fatalf("publish = %v, want Dispatch (no block subscriber matched)", op)
	}
}

func TestBrokerBlockPrefersMostRecentlyAdded(t *testing.T) {
	var b broker
	first := b.subscribe(NewFilter(), event.Block)
	second := b.subscribe(NewFilter(), event.Block)

	b.publish(event.ButtonEvent{Target: button.A, Action: button.Press})

	select {
	case <-second:
	default:
		t.Fatal("the most recently added block subscriber should have matched")
	}
	select {
	case <-first:
		t.Fatal("the earlier subscriber must not have matched once the later one did")
	default:
	}
}

func TestBrokerDispatchFansOutToAllMatching(t *testing.T) {
	var b broker
	r1 := b.subscribe(NewFilter(), event.Dispatch)
	r2 := b.subscribe(NewFilter(), event.Dispatch)

	op := b.publish(event.ButtonEvent{Target: button.A, Action: button.Press})
	if op != event.Dispatch {
		t.Fatalf("publish = %v, want Dispatch", op)
	}
	if _, ok := <-r1; !ok {
		t.Fatal("r1 did not receive the event")
	}
	if _, ok := <-r2; !ok {
		t.Fatal("r2 did not receive the event")
	}
}

func TestBrokerSubscriptionIsOneShot(t *testing.T) {
	var b broker
	b.subscribe(NewFilter(), event.Dispatch)

	b.publish(event.ButtonEvent{Target: button.A, Action: button.Press})
	if len(b.dispatch) != 0 {
		t.Fatal("a matched dispatch subscriber must be removed after firing")
	}
}

func TestFilterActionAndCallback(t *testing.T) {
	f := NewFilter().Action(button.Press).Callback(func(ev event.ButtonEvent) bool {
		return ev.Target == button.Space
	})
	if !f.matches(event.ButtonEvent{Target: button.Space, Action: button.Press}) {
		t.Fatal("expected match")
	}
	if f.matches(event.ButtonEvent{Target: button.Space, Action: button.Release}) {
		t.Fatal("wrong action must not match")
	}
	if f.matches(event.ButtonEvent{Target: button.A, Action: button.Press}) {
		t.Fatal("callback should have rejected a different target")
	}
}
