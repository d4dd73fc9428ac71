// Package protocol defines the WebSocket message envelope used by the
// debug console to observe a running Engine: which hotkeys fired, which
// flags changed, and the native-op decided for each.
package protocol

// MessageType identifies the payload carried by a Message.
type MessageType string

const (
	// TypeHotkeyFired reports that a hotkey fired. The demo sends it from
	// the procedures of the program's log entries.
	TypeHotkeyFired MessageType = "hotkey_fired"

	// TypeFlagChanged reports a compiled flag's new value. The demo never
	// sends it.
	TypeFlagChanged MessageType = "flag_changed"

	// TypeSnapshot carries the full set of currently-enabled flags. The
	// wsdebug server has no method that sends it.
	TypeSnapshot MessageType = "snapshot"
)

// Message is the generic envelope for all debug-console messages.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// HotkeyFiredPayload is the payload for TypeHotkeyFired.
type HotkeyFiredPayload struct {
	Button    string `json:"button"`
	Action    string `json:"action"`
	NativeOp  string `json:"native_op"`
	HadRemap  bool   `json:"had_remap"`
	Timestamp int64  `json:"timestamp"`
}

// FlagChangedPayload is the payload for TypeFlagChanged.
type FlagChangedPayload struct {
	Flag      int    `json:"flag"`
	Enabled   bool   `json:"enabled"`
	Timestamp int64  `json:"timestamp"`
	Label     string `json:"label,omitempty"`
}

// SnapshotPayload is the payload for TypeSnapshot.
type SnapshotPayload struct {
	EnabledFlags []int `json:"enabled_flags"`
}
