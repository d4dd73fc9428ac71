//go:build !windows

package hook

import (
	"errors"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/event"
)

// ErrUnsupportedPlatform is returned by Install on platforms without a
// native hook backend.
var ErrUnsupportedPlatform = errors.New("hook: unsupported platform")

type stubPlatform struct{}

func newPlatform() platform { return stubPlatform{} }

func (stubPlatform) install(func(event.Event, *event.Handler)) error {
	return ErrUnsupportedPlatform
}
func (stubPlatform) uninstall() error             { return nil }
func (stubPlatform) isPressed(button.Button) bool { return false }
