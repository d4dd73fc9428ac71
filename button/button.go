// Package button defines the closed set of physical input targets the
// hook bridge and emulator operate on.
package button

// Action is the direction of a button transition.
type Action int

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	if a == Press {
		return "press"
	}
	return "release"
}

// Kind classifies a Button for the purpose of picking a syscall path.
type Kind int

const (
	Key Kind = iota
	Mouse
)

// Button is a fixed enumeration of physical (and four logical modifier)
// input targets. Cardinality is fixed at compile time so a Button can
// index flat arrays.
type Button int

const (
	LeftButton Button = iota
	RightButton
	MiddleButton
	SideButton1
	SideButton2

	Tilde

	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	Minus

	Equal

	Backspace
	Tab
	Q
	W
	E
	R
	T
	Y
	U
	I
	O
	P

	OpenSquareBracket
	CloseSquareBracket

	CapsLock

	A
	S
	D
	F
	G
	H
	J
	K
	L

	SemiColon
	SingleQuote

	Enter
	LShift
	Z
	X
	C
	V
	B
	N
	M
	Comma
	Dot
	Slash

	RShift
	LCtrl
	LSuper
	LAlt

	Space

	RAlt
	RSuper
	Application
	RCtrl
	Insert
	Delete
	LeftArrow
	Home
	End
	UpArrow
	DownArrow
	PageUp
	PageDown
	RightArrow
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	Numpad0
	NumpadDot
	NumpadSlash
	NumpadAsterisk
	NumpadMinus
	NumpadPlus
	Esc
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
	PrintScreen

	// Logical modifiers, matched against either physical side. Never
	// produced by the bridge; only valid in hotkey views and as
	// emulator targets (where they fan out to the left variant).
	Shift
	Ctrl
	Alt
	Super

	// count is not a valid Button; it bounds flat-array indices.
	count
)

// Count is the number of distinct Button values, including the logical
// modifiers. Usable to size flat per-button arrays.
const Count = int(count)

// Kind reports whether b is driven by the keyboard or mouse hook.
func (b Button) Kind() Kind {
	switch b {
	case LeftButton, RightButton, MiddleButton, SideButton1, SideButton2:
		return Mouse
	default:
		return Key
	}
}

// IsLogicalModifier reports whether b is one of the side-agnostic
// modifier buttons that only exist for view matching and emulation,
// never reported by the bridge.
func (b Button) IsLogicalModifier() bool {
	switch b {
	case Shift, Ctrl, Alt, Super:
		return true
	default:
		return false
	}
}

// Physical returns the two side-specific buttons a logical modifier
// fans out to. ok is false if b is not a logical modifier.
func (b Button) Physical() (left, right Button, ok bool) {
	switch b {
	case Shift:
		return LShift, RShift, true
	case Ctrl:
		return LCtrl, RCtrl, true
	case Alt:
		return LAlt, RAlt, true
	case Super:
		return LSuper, RSuper, true
	default:
		return 0, 0, false
	}
}

var names = map[Button]string{
	LeftButton: "LeftButton", RightButton: "RightButton", MiddleButton: "MiddleButton",
	SideButton1: "SideButton1", SideButton2: "SideButton2",
	Tilde: "Tilde", Key1: "Key1", Key2: "Key2", Key3: "Key3", Key4: "Key4", Key5: "Key5",
	Key6: "Key6", Key7: "Key7", Key8: "Key8", Key9: "Key9", Key0: "Key0", Minus: "Minus",
	Equal: "Equal", Backspace: "Backspace", Tab: "Tab", Q: "Q", W: "W", E: "E", R: "R",
	T: "T", Y: "Y", U: "U", I: "I", O: "O", P: "P",
	OpenSquareBracket: "OpenSquareBracket", CloseSquareBracket: "CloseSquareBracket",
	CapsLock: "CapsLock", A: "A", S: "S", D: "D", F: "F", G: "G", H: "H", J: "J", K: "K", L: "L",
	SemiColon: "SemiColon", SingleQuote: "SingleQuote", Enter: "Enter", LShift: "LShift",
	Z: "Z", X: "X", C: "C", V: "V", B: "B", N: "N", M: "M", Comma: "Comma", Dot: "Dot", Slash: "Slash",
	RShift: "RShift", LCtrl: "LCtrl", LSuper: "LSuper", LAlt: "LAlt", Space: "Space",
	RAlt: "RAlt", RSuper: "RSuper", Application: "Application", RCtrl: "RCtrl",
	Insert: "Insert", Delete: "Delete", LeftArrow: "LeftArrow", Home: "Home", End: "End",
	UpArrow: "UpArrow", DownArrow: "DownArrow", PageUp: "PageUp", PageDown: "PageDown",
	RightArrow: "RightArrow", Numpad1: "Numpad1", Numpad2: "Numpad2", Numpad3: "Numpad3",
	Numpad4: "Numpad4", Numpad5: "Numpad5", Numpad6: "Numpad6", Numpad7: "Numpad7",
	Numpad8: "Numpad8", Numpad9: "Numpad9", Numpad0: "Numpad0", NumpadDot: "NumpadDot",
	NumpadSlash: "NumpadSlash", NumpadAsterisk: "NumpadAsterisk", NumpadMinus: "NumpadMinus",
	NumpadPlus: "NumpadPlus", Esc: "Esc",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6", F7: "F7", F8: "F8", F9: "F9",
	F10: "F10", F11: "F11", F12: "F12", F13: "F13", F14: "F14", F15: "F15", F16: "F16",
	F17: "F17", F18: "F18", F19: "F19", F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",
	PrintScreen: "PrintScreen", Shift: "Shift", Ctrl: "Ctrl", Alt: "Alt", Super: "Super",
}

func (b Button) String() string {
	if s, ok := names[b]; ok {
		return s
	}
	return "Button(unknown)"
}

var byName = func() map[string]Button {
	m := make(map[string]Button, len(names))
	for b, s := range names {
		m[s] = b
	}
	return m
}()

// Parse looks up a Button by its String() name. Used by the JSON
// configuration loader to turn declarative hotkey entries into Button
// values.
func Parse(name string) (Button, bool) {
	b, ok := byName[name]
	return b, ok
}
