package runtime

import (
	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
)

// Filter narrows a Subscription to a subset of button events. The zero
// value matches everything.
type Filter struct {
	targets  map[button.Button]struct{}
	action   *button.Action
	callback func(event.ButtonEvent) bool
}

// NewFilter returns a filter matching every button event.
func NewFilter() Filter { return Filter{} }

// Target restricts the filter to a single button.
func (f Filter) Target(b button.Button) Filter {
	f.targets = map[button.Button]struct{}{b: {}}
	return f
}

// Targets restricts the filter to any of the given buttons.
func (f Filter) Targets(bs ...button.Button) Filter {
	set := make(map[button.Button]struct{}, len(bs))
	for _, b := range bs {
		set[b] = struct{}{}
	}
	f.targets = set
	return f
}

// Action restricts the filter to a single press or release direction.
func (f Filter) Action(a button.Action) Filter {
	f.action = &a
	return f
}

// Callback adds an arbitrary predicate the event must also satisfy.
func (f Filter) Callback(cb func(event.ButtonEvent) bool) Filter {
	f.callback = cb
	return f
}

func (f Filter) matches(ev event.ButtonEvent) bool {
	if f.targets != nil {
		if _, ok := f.targets[ev.Target]; !ok {
			return false
		}
	}
	if f.action != nil && *f.action != ev.Action {
		return false
	}
	if f.callback != nil && !f.callback(ev) {
		return false
	}
	return true
}

type subscriber struct {
	filter Filter
	reply  chan event.ButtonEvent
}

// broker implements the interruption/subscription facility: callers may
// subscribe, once, for the next button event matching a Filter, declaring
// up front whether a match should consume the native event (Block) or let
// it continue to ordinary hotkey processing (Dispatch). A Block subscriber
// is consulted most-recently-added-first so a narrowly scoped, later
// subscription pre-empts a broader standing one.
type broker struct {
	block    []subscriber
	dispatch []subscriber
}

// subscribe registers reply to receive the next event matching filter,
// under the given native-op declaration.
func (b *broker) subscribe(filter Filter, op event.NativeOp) <-chan event.ButtonEvent {
	reply := make(chan event.ButtonEvent, 1)
	s := subscriber{filter: filter, reply: reply}
	if op == event.Block {
		b.block = append(b.block, s)
	} else {
		b.dispatch = append(b.dispatch, s)
	}
	return reply
}

// publish offers ev to every subscriber. If a Block subscriber matches, it
// consumes the event exclusively and publish reports Block (the caller
// must not run ordinary hotkey processing for this event). Otherwise every
// matching Dispatch subscriber also receives the event, and publish
// reports Dispatch so ordinary hotkey processing proceeds as usual.
func (b *broker) publish(ev event.ButtonEvent) event.NativeOp {
	for i := len(b.block) - 1; i >= 0; i-- {
		if b.block[i].filter.matches(ev) {
			s := b.block[i]
			b.block = append(b.block[:i], b.block[i+1:]...)
			s.reply <- ev
			return event.Block
		}
	}

	remaining := b.dispatch[:0]
	for _, s := range b.dispatch {
		if s.filter.matches(ev) {
			s.reply <- ev
		} else {
			remaining = append(remaining, s)
		}
	}
	b.dispatch = remaining
	return event.Dispatch
}

// Subscription is a handle to a pending one-shot subscription.
type Subscription struct {
	ch <-chan event.ButtonEvent
}

// Wait blocks until the subscribed event arrives.
func (s *Subscription) Wait() event.ButtonEvent { return <-s.ch }

// TryRecv reports the subscribed event if it has already arrived.
func (s *Subscription) TryRecv() (event.ButtonEvent, bool) {
	select {
	case ev := <-s.ch:
		return ev, true
	default:
		return event.ButtonEvent{}, false
	}
}
