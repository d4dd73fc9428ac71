// Package hook installs the OS-level low-level keyboard and mouse hooks,
// decodes native notifications into core events, and hands each one to the
// runtime dispatcher through a one-shot decision channel. Exactly one hook
// chain may be installed per process; install/uninstall misuse is a
// programming error and panics, matching the process-wide nature of the
// underlying OS facility.
package hook

import (
	"sync"
	"sync/atomic"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
)

var installed atomic.Bool

// platform is implemented once per OS in hook_<os>.go.
type platform interface {
	install(deliver func(event.Event, *event.Handler)) error
	uninstall() error
	isPressed(b button.Button) bool
}

var (
	current   platform
	currentMu sync.Mutex
)

// Install installs the keyboard and mouse hooks on a dedicated OS-message
// thread and returns a Receiver that yields decoded events in order.
// Panics if a hook chain is already installed in this process.
func Install() (event.Receiver, error) {
	if !installed.CompareAndSwap(false, true) {
		panic("hook: already installed")
	}

	ch := make(chan event.Delivery, 1)
	p := newPlatform()
	if err := p.install(func(ev event.Event, h *event.Handler) {
		ch <- event.Delivery{Event: ev, Handler: h}
	}); err != nil {
		installed.Store(false)
		return nil, err
	}

	currentMu.Lock()
	current = p
	currentMu.Unlock()

	return event.Chan(ch), nil
}

// Uninstall removes the hooks and joins the OS-message thread. Panics if
// no hook chain is currently installed.
func Uninstall() error {
	currentMu.Lock()
	p := current
	current = nil
	currentMu.Unlock()

	if p == nil {
		panic("hook: not installed")
	}
	err := p.uninstall()
	installed.Store(false)
	return err
}

// IsPressed reports the last-known physical state of b, maintained by the
// bridge independently of any hotkey matching.
func IsPressed(b button.Button) bool {
	currentMu.Lock()
	p := current
	currentMu.Unlock()
	if p == nil {
		return false
	}
	return p.isPressed(b)
}
