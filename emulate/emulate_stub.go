//go:build !windows

package emulate

import "github.com/aluo96078/hookwire/button"

// stubBackend discards button and wheel calls and only records the last
// absolute cursor position. hookwire's initial platform is Windows;
// this keeps the module buildable elsewhere for development and testing
// of the platform-independent packages.
type stubBackend struct {
	x, y int32
}

func newBackend() backend { return &stubBackend{} }

func (s *stubBackend) sendButton(button.Button, button.Action, bool) {}
func (s *stubBackend) sendWheel(int32, bool)                         {}
func (s *stubBackend) cursorPosition() (int32, int32)                { return s.x, s.y }
func (s *stubBackend) moveAbsolute(x, y int32, _ bool) {
	s.x, s.y = x, y
}

// New returns a no-op Emulator for platforms without a native backend.
func New() *Emulator {
	return &Emulator{backend: newBackend()}
}
