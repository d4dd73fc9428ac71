//go:build windows

// Install/Uninstall exercise the real OS hook chain (hook_stub.go always
// fails install on other platforms), so this test only runs on Windows.
package hookwire

import (
	"testing"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/compile"
)

func TestInstallUninstallRoundTrip(t *testing.T) {
	c := compile.New()
	if err := c.Remap(compile.NewContext(), []button.Button{button.CapsLock}, button.Esc); err != nil {
		t.Fatalf("Remap: %v", err)
	}
	prog := c.Build()

	e, err := Install(prog, 1)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if err := e.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
}

func TestDoubleUninstallPanics(t *testing.T) {
	c := compile.New()
	prog := c.Build()

	e, err := Install(prog, 1)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if err := e.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic on double Uninstall")
		}
	}()
	e.Uninstall()
}
