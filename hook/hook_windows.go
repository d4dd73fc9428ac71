//go:build windows

package hook

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/emulate"
	"github.com/aluo96078/hookwire/event"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
	wmQuit       = 0x0012

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmMouseMove    = 0x0200
	wmLButtonDown  = 0x0201
	wmLButtonUp    = 0x0202
	wmRButtonDown  = 0x0204
	wmRButtonUp    = 0x0205
	wmMButtonDown  = 0x0207
	wmMButtonUp    = 0x0208
	wmMouseWheel   = 0x020A
	wmXButtonDown  = 0x020B
	wmXButtonUp    = 0x020C
)

type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msllhookstruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// windowsPlatform is the single process-wide bridge instance. Only one may
// be active (enforced by package hook's atomic install guard); fields are
// only ever touched from the dedicated message-loop thread or read/written
// behind pressedMu.
type windowsPlatform struct {
	keyboardHook uintptr
	mouseHook    uintptr
	threadID     uintptr
	done         chan struct{}

	deliver func(event.Event, *event.Handler)

	pressedMu sync.Mutex
	pressed   [button.Count]bool
}

func newPlatform() platform { return &windowsPlatform{} }

func (p *windowsPlatform) install(deliver func(event.Event, *event.Handler)) error {
	p.deliver = deliver
	p.done = make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()
		p.threadID = tid

		hMod, _, _ := procGetModuleHandle.Call(0)

		kbHook, _, err := procSetWindowsHookEx.Call(
			whKeyboardLL,
			syscall.NewCallback(p.keyboardProc),
			hMod,
			0,
		)
		if kbHook == 0 {
			errCh <- fmt.Errorf("hook: SetWindowsHookExW(WH_KEYBOARD_LL): %w", err)
			return
		}
		p.keyboardHook = kbHook

		msHook, _, err := procSetWindowsHookEx.Call(
			whMouseLL,
			syscall.NewCallback(p.mouseProc),
			hMod,
			0,
		)
		if msHook == 0 {
			procUnhookWindowsHookEx.Call(p.keyboardHook)
			errCh <- fmt.Errorf("hook: SetWindowsHookExW(WH_MOUSE_LL): %w", err)
			return
		}
		p.mouseHook = msHook

		errCh <- nil

		var msg struct {
			Hwnd    syscall.Handle
			Message uint32
			Wparam  uintptr
			Lparam  uintptr
			Time    uint32
			Pt      struct{ X, Y int32 }
		}
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
		}

		procUnhookWindowsHookEx.Call(p.keyboardHook)
		procUnhookWindowsHookEx.Call(p.mouseHook)
		close(p.done)
	}()

	if err := <-errCh; err != nil {
		return err
	}
	log.Println("hook: installed WH_KEYBOARD_LL and WH_MOUSE_LL")
	return nil
}

func (p *windowsPlatform) uninstall() error {
	procPostThreadMessage.Call(p.threadID, wmQuit, 0, 0)
	<-p.done
	log.Println("hook: uninstalled")
	return nil
}

func (p *windowsPlatform) isPressed(b button.Button) bool {
	p.pressedMu.Lock()
	defer p.pressedMu.Unlock()
	return p.pressed[b]
}

func (p *windowsPlatform) reflect(b button.Button, action button.Action) {
	p.pressedMu.Lock()
	p.pressed[b] = action == button.Press
	p.pressedMu.Unlock()
}

// awaitDecision delivers ev to the dispatcher and blocks the hook thread
// until the one-shot decision channel resolves. There is no timeout and no
// default: if nothing receives the delivery and resolves its Handler, the
// hook thread stays blocked.
func (p *windowsPlatform) awaitDecision(ev event.Event) event.NativeOp {
	reply := make(chan event.NativeOp, 1)
	p.deliver(ev, event.NewHandler(reply))
	return <-reply
}

func (p *windowsPlatform) keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode < 0 {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return ret
	}

	kbd := (*kbdllhookstruct)(unsafe.Pointer(lParam))
	if uint32(kbd.DwExtraInfo)&emulate.ShouldBeIgnored != 0 {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return ret
	}

	b, ok := button.FromVirtualKey(kbd.VkCode)
	if !ok {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return ret
	}
	action := button.Release
	if wParam == wmKeyDown || wParam == wmSysKeyDown {
		action = button.Press
	}
	p.reflect(b, action)

	injected := uint32(kbd.DwExtraInfo)&emulate.Injected != 0
	op := p.awaitDecision(event.Event{
		Kind:   event.ButtonKind,
		Button: event.ButtonEvent{Target: b, Action: action, Injected: injected},
	})
	if op == event.Block {
		return 1
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (p *windowsPlatform) mouseProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode < 0 {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return ret
	}

	ms := (*msllhookstruct)(unsafe.Pointer(lParam))
	if uint32(ms.DwExtraInfo)&emulate.ShouldBeIgnored != 0 {
		ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return ret
	}
	injected := uint32(ms.DwExtraInfo)&emulate.Injected != 0

	var ev event.Event
	switch wParam {
	case wmMouseMove:
		ev = event.Event{Kind: event.CursorKind, Cursor: event.CursorEvent{DX: ms.Pt.X, DY: ms.Pt.Y, Injected: injected}}
	case wmMouseWheel:
		delta := int32(int16(ms.MouseData >> 16))
		ev = event.Event{Kind: event.WheelKind, Wheel: event.WheelEvent{Delta: delta / 120, Injected: injected}}
	default:
		b, action, ok := decodeMouseButton(wParam, ms.MouseData)
		if !ok {
			ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
			return ret
		}
		p.reflect(b, action)
		ev = event.Event{Kind: event.ButtonKind, Button: event.ButtonEvent{Target: b, Action: action, Injected: injected}}
	}

	op := p.awaitDecision(ev)
	if op == event.Block {
		return 1
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func decodeMouseButton(wParam uintptr, mouseData uint32) (b button.Button, action button.Action, ok bool) {
	switch wParam {
	case wmLButtonDown:
		return button.LeftButton, button.Press, true
	case wmLButtonUp:
		return button.LeftButton, button.Release, true
	case wmRButtonDown:
		return button.RightButton, button.Press, true
	case wmRButtonUp:
		return button.RightButton, button.Release, true
	case wmMButtonDown:
		return button.MiddleButton, button.Press, true
	case wmMButtonUp:
		return button.MiddleButton, button.Release, true
	case wmXButtonDown, wmXButtonUp:
		action = button.Press
		if wParam == wmXButtonUp {
			action = button.Release
		}
		if mouseData>>16 == 1 {
			return button.SideButton1, action, true
		}
		return button.SideButton2, action, true
	default:
		return 0, 0, false
	}
}
