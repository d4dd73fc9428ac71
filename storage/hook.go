// Package storage holds the compiled, immutable hook tables the runtime
// dispatcher queries on every native event: per-target-button buckets for
// remaps and direct procedures, and per-view buckets for lifecycle hooks
// driven by the change detector.
package storage

import (
	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/flag"
	"github.com/aluo96078/hookwire/view"
)

// Hook pairs a view guard with an action or procedure; it is only
// considered for a given FlagState when its view is active. Ignore is
// populated only for "any button" hooks: targets listed there do not
// match even though the hook sits in the any-bucket.
type Hook[T any] struct {
	View   *view.View
	Action T
	Ignore []button.Button
}

func NewHook[T any](v *view.View, action T) Hook[T] {
	return Hook[T]{View: v, Action: action}
}

// NewIgnoreHook builds an "any button" hook that does not match the
// listed targets.
func NewIgnoreHook[T any](v *view.View, action T, ignore []button.Button) Hook[T] {
	return Hook[T]{View: v, Action: action, Ignore: ignore}
}

// IsRunnable reports whether this hook's view is active in state.
func (h Hook[T]) IsRunnable(state *flag.State) bool {
	return h.View.IsEnabled(state)
}

// ignores reports whether h's ignore set names target.
func (h Hook[T]) ignores(target button.Button) bool {
	for _, b := range h.Ignore {
		if b == target {
			return true
		}
	}
	return false
}

func runnables[T any](hooks []Hook[T], state *flag.State) []T {
	var out []T
	for _, h := range hooks {
		if h.IsRunnable(state) {
			out = append(out, h.Action)
		}
	}
	return out
}
