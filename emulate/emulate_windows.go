//go:build windows

package emulate

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/aluo96078/hookwire/button"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyEventFKeyUp = 0x0002

	mouseEventFMove      = 0x0001
	mouseEventFLeftDown  = 0x0002
	mouseEventFLeftUp    = 0x0004
	mouseEventFRightDown = 0x0008
	mouseEventFRightUp   = 0x0010
	mouseEventFMidDown   = 0x0020
	mouseEventFMidUp     = 0x0040
	mouseEventFWheel     = 0x0800
	mouseEventFXDown     = 0x0080
	mouseEventFXUp       = 0x0100

	xButton1 = 0x0001
	xButton2 = 0x0002
)

// keybdInput mirrors Win32 KEYBDINPUT.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// mouseInput mirrors Win32 MOUSEINPUT.
type mouseInput struct {
	dx, dy      int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// rawInput mirrors Win32 INPUT: a tagged union over keybdInput/mouseInput,
// padded to the larger member's size so the type field plus union occupies
// the layout SendInput expects on amd64.
type rawInput struct {
	typ   uint32
	_pad  uint32
	union [32]byte
}

func sendKeybdInput(in keybdInput) {
	var raw rawInput
	raw.typ = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&raw.union[0])) = in
	procSendInput.Call(1, uintptr(unsafe.Pointer(&raw)), unsafe.Sizeof(raw))
}

func sendMouseInput(in mouseInput) {
	var raw rawInput
	raw.typ = inputMouse
	*(*mouseInput)(unsafe.Pointer(&raw.union[0])) = in
	procSendInput.Call(1, uintptr(unsafe.Pointer(&raw)), unsafe.Sizeof(raw))
}

func extraInfo(recursive bool) uintptr { return uintptr(ExtraInfo(recursive)) }

type windowsBackend struct {
	mu  sync.Mutex
	pos struct{ x, y int32 }
}

func newBackend() backend {
	b := &windowsBackend{}
	b.pos.x, b.pos.y = getCursorPos()
	return b
}

func getCursorPos() (int32, int32) {
	var pt struct{ X, Y int32 }
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	return pt.X, pt.Y
}

func (b *windowsBackend) sendButton(btn button.Button, action button.Action, recursive bool) {
	info := extraInfo(recursive)
	if btn.Kind() == button.Mouse {
		data, flags := mouseButtonEvent(btn, action)
		sendMouseInput(mouseInput{mouseData: data, dwFlags: flags, dwExtraInfo: info})
		return
	}
	vk, ok := button.ToVirtualKey(btn)
	if !ok {
		return
	}
	var flags uint32
	if action == button.Release {
		flags = keyEventFKeyUp
	}
	sendKeybdInput(keybdInput{wVk: vk, dwFlags: flags, dwExtraInfo: info})
}

func mouseButtonEvent(btn button.Button, action button.Action) (data uint32, flags uint32) {
	switch btn {
	case button.LeftButton:
		if action == button.Press {
			return 0, mouseEventFLeftDown
		}
		return 0, mouseEventFLeftUp
	case button.RightButton:
		if action == button.Press {
			return 0, mouseEventFRightDown
		}
		return 0, mouseEventFRightUp
	case button.MiddleButton:
		if action == button.Press {
			return 0, mouseEventFMidDown
		}
		return 0, mouseEventFMidUp
	case button.SideButton1:
		if action == button.Press {
			return xButton1, mouseEventFXDown
		}
		return xButton1, mouseEventFXUp
	case button.SideButton2:
		if action == button.Press {
			return xButton2, mouseEventFXDown
		}
		return xButton2, mouseEventFXUp
	default:
		return 0, 0
	}
}

func (b *windowsBackend) sendWheel(delta int32, recursive bool) {
	const wheelDelta = 120
	sendMouseInput(mouseInput{
		mouseData:   uint32(delta * wheelDelta),
		dwFlags:     mouseEventFWheel,
		dwExtraInfo: extraInfo(recursive),
	})
}

func (b *windowsBackend) cursorPosition() (int32, int32) {
	return getCursorPos()
}

// moveAbsolute combines SetCursorPos with a follow-up zero-delta
// synthesized move: some applications do not notice SetCursorPos alone.
// Recursive moves are not meaningful here since SetCursorPos cannot be
// re-hooked by SetWindowsHookEx; recursive is accepted only so the
// backend interface is uniform with button/wheel synthesis.
func (b *windowsBackend) moveAbsolute(x, y int32, recursive bool) {
	procSetCursorPos.Call(uintptr(x), uintptr(y))

	b.mu.Lock()
	b.pos.x, b.pos.y = x, y
	b.mu.Unlock()

	sendMouseInput(mouseInput{dwFlags: mouseEventFMove, dwExtraInfo: extraInfo(recursive)})
}

// New returns an Emulator backed by SendInput/SetCursorPos.
func New() *Emulator {
	return &Emulator{backend: newBackend()}
}
