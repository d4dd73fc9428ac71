package button

// Windows virtual-key code table for the us-keyboard-layout variant. Ported
// from the newer of the two VK tables found in the reference implementation
// (the one wired to its windows-crate hook installer); the winapi-crate-era
// table is superseded and not carried forward.
//
// LCtrl/RCtrl, LAlt/RAlt, LShift/RShift and LSuper/RSuper (VK_LWIN/VK_RWIN)
// each have distinct VK codes in the low-level hook struct, so sides are
// told apart by VK code alone; the extended-key flag is not read.

var vkToButton = map[uint32]Button{
	0x01: LeftButton,
	0x02: RightButton,
	0x04: MiddleButton,
	0x05: SideButton1,
	0x06: SideButton2,

	0xC0: Tilde,

	0x31: Key1,
	0x32: Key2,
	0x33: Key3,
	0x34: Key4,
	0x35: Key5,
	0x36: Key6,
	0x37: Key7,
	0x38: Key8,
	0x39: Key9,
	0x30: Key0,
	0xBD: Minus,

	0xBB: Equal,

	0x08: Backspace,
	0x09: Tab,
	0x51: Q,
	0x57: W,
	0x45: E,
	0x52: R,
	0x54: T,
	0x59: Y,
	0x55: U,
	0x49: I,
	0x4F: O,
	0x50: P,

	0xDB: OpenSquareBracket,
	0xDD: CloseSquareBracket,

	0x14: CapsLock,

	0x41: A,
	0x53: S,
	0x44: D,
	0x46: F,
	0x47: G,
	0x48: H,
	0x4A: J,
	0x4B: K,
	0x4C: L,

	0xBA: SemiColon,
	0xDE: SingleQuote,

	0x0D: Enter,
	0xA0: LShift,
	0x5A: Z,
	0x58: X,
	0x43: C,
	0x56: V,
	0x42: B,
	0x4E: N,
	0x4D: M,
	0xBC: Comma,
	0xBE: Dot,
	0xBF: Slash,

	0xA1: RShift,
	0xA2: LCtrl,
	0x5B: LSuper,
	0xA4: LAlt,

	0x20: Space,

	0xA5: RAlt,
	0x5C: RSuper,
	0x5D: Application,
	0xA3: RCtrl,
	0x2D: Insert,
	0x2E: Delete,
	0x25: LeftArrow,
	0x24: Home,
	0x23: End,
	0x26: UpArrow,
	0x28: DownArrow,
	0x21: PageUp,
	0x22: PageDown,
	0x27: RightArrow,
	0x61: Numpad1,
	0x62: Numpad2,
	0x63: Numpad3,
	0x64: Numpad4,
	0x65: Numpad5,
	0x66: Numpad6,
	0x67: Numpad7,
	0x68: Numpad8,
	0x69: Numpad9,
	0x60: Numpad0,
	0x6E: NumpadDot,
	0x6F: NumpadSlash,
	0x6A: NumpadAsterisk,
	0x6D: NumpadMinus,
	0x6B: NumpadPlus,
	0x1B: Esc,
	0x70: F1,
	0x71: F2,
	0x72: F3,
	0x73: F4,
	0x74: F5,
	0x75: F6,
	0x76: F7,
	0x77: F8,
	0x78: F9,
	0x79: F10,
	0x7A: F11,
	0x7B: F12,
	0x7C: F13,
	0x7D: F14,
	0x7E: F15,
	0x7F: F16,
	0x80: F17,
	0x81: F18,
	0x82: F19,
	0x83: F20,
	0x84: F21,
	0x85: F22,
	0x86: F23,
	0x87: F24,
	0x2C: PrintScreen,
}

var buttonToVK map[Button]uint16

func init() {
	buttonToVK = make(map[Button]uint16, len(vkToButton))
	for vk, b := range vkToButton {
		buttonToVK[b] = uint16(vk)
	}
}

// FromVirtualKey maps a Windows virtual-key code to a Button. ok is false
// for codes outside the supported inventory.
func FromVirtualKey(vk uint32) (b Button, ok bool) {
	b, ok = vkToButton[vk]
	return
}

// ToVirtualKey maps a Button to its Windows virtual-key code. Logical
// modifiers (Shift, Ctrl, Alt, Super) map to their left-side physical code.
func ToVirtualKey(b Button) (vk uint16, ok bool) {
	if left, _, isLogical := b.Physical(); isLogical {
		vk, ok = buttonToVK[left]
		return
	}
	vk, ok = buttonToVK[b]
	return
}
