// Package emulate synthesizes button, cursor, and wheel input. Every
// synthesized event carries a recursion-control marker so the bridge can
// tell the core's own synthetic input apart from a physical event, and
// decide whether it should be redelivered through the hook chain.
package emulate

import "github.com/aluo96078/hookwire/button"

// Marker bits carried on the OS extra-info word of a synthesized event.
const (
	// Injected is always set by this package.
	Injected uint32 = 1 << 0
	// ShouldBeIgnored is set iff the call is not recursive: the bridge
	// must forward such an event to the next hook without decoding it.
	ShouldBeIgnored uint32 = 1 << 1
)

// ExtraInfo computes the marker word for a synthesized event.
func ExtraInfo(recursive bool) uint32 {
	info := Injected
	if !recursive {
		info |= ShouldBeIgnored
	}
	return info
}

// backend is the platform-specific half of Emulator.
type backend interface {
	sendButton(b button.Button, action button.Action, recursive bool)
	sendWheel(delta int32, recursive bool)
	cursorPosition() (x, y int32)
	moveAbsolute(x, y int32, recursive bool)
}

// Emulator synthesizes input. The zero value is not usable; obtain one
// from New.
type Emulator struct {
	backend backend
}

// Press synthesizes a non-recursive button press: the emulated event will
// not be redelivered through the hook chain. Logical modifiers (Shift,
// Ctrl, Alt, Super) fan out to their left physical variant.
func (e *Emulator) Press(b button.Button) { e.press(b, false) }

// Release synthesizes a non-recursive button release.
func (e *Emulator) Release(b button.Button) { e.release(b, false) }

// Click synthesizes a non-recursive press immediately followed by a
// release.
func (e *Emulator) Click(b button.Button) {
	e.Press(b)
	e.Release(b)
}

// PressRecursive synthesizes a press that IS redelivered through the hook
// chain, so it can itself be matched by hotkeys. Used by RemapPress so a
// remap's target button can in turn be remapped or hooked.
func (e *Emulator) PressRecursive(b button.Button) { e.press(b, true) }

// ReleaseRecursive is PressRecursive's release-side counterpart.
func (e *Emulator) ReleaseRecursive(b button.Button) { e.release(b, true) }

func (e *Emulator) press(b button.Button, recursive bool) {
	if left, _, ok := b.Physical(); ok {
		b = left
	}
	e.backend.sendButton(b, button.Press, recursive)
}

func (e *Emulator) release(b button.Button, recursive bool) {
	if left, _, ok := b.Physical(); ok {
		b = left
	}
	e.backend.sendButton(b, button.Release, recursive)
}

// RotateWheel synthesizes wheel movement of speed notches (positive is
// away from the user), non-recursively.
func (e *Emulator) RotateWheel(speed int32) { e.backend.sendWheel(speed, false) }

// CursorPosition returns the OS cursor's current absolute position.
func (e *Emulator) CursorPosition() (x, y int32) { return e.backend.cursorPosition() }

// MoveAbsolute moves the cursor to (x, y). On Windows this combines
// SetCursorPos with a follow-up zero-delta synthesized move, because some
// applications do not notice SetCursorPos alone. Recursive absolute moves
// are not possible: SetCursorPos cannot be re-hooked by SetWindowsHookEx.
func (e *Emulator) MoveAbsolute(x, y int32) { e.backend.moveAbsolute(x, y, false) }

// MoveRelative moves the cursor by (dx, dy) from its current position.
func (e *Emulator) MoveRelative(dx, dy int32) {
	x, y := e.CursorPosition()
	e.backend.moveAbsolute(x+dx, y+dy, false)
}
