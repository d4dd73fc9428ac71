// Package event defines the core event types the hook bridge decodes
// native input into, and the one-shot block/dispatch decision contract.
package event

import "github.com/aluo96078/hookwire/button"

// ButtonEvent is a single physical (or emulated) button transition.
type ButtonEvent struct {
	Target   button.Button
	Action   button.Action
	Injected bool
}

// CursorEvent is mouse motion reported as a delta from the last known
// position, never an absolute.
type CursorEvent struct {
	DX, DY   int32
	Injected bool
}

// WheelEvent is a signed wheel tick count.
type WheelEvent struct {
	Delta    int32
	Injected bool
}

// NativeOp is the bridge's decision for a native event: suppress it from
// reaching downstream applications, or let it pass.
type NativeOp int

const (
	// Dispatch lets the event continue to the next hook. It is the zero
	// value and the op Handler.Release resolves an unresolved token to; a
	// token that is simply dropped is not resolved at all.
	Dispatch NativeOp = iota
	Block
)

// Or combines two native-op suggestions: Block wins over Dispatch.
func (op NativeOp) Or(other NativeOp) NativeOp {
	if op == Block || other == Block {
		return Block
	}
	return Dispatch
}

// Handler is the one-shot decision token delivered alongside a decoded
// event. Exactly one of Dispatch, Block, or Handle must be called, or
// Release to resolve it as Dispatch; a Handler discarded without any of
// these never sends a reply.
type Handler struct {
	reply    chan<- NativeOp
	resolved bool
}

// NewHandler wraps a reply channel as a Handler. Used by the hook bridge.
func NewHandler(reply chan<- NativeOp) *Handler {
	return &Handler{reply: reply}
}

// Handle resolves the token with an explicit op.
func (h *Handler) Handle(op NativeOp) {
	if h.resolved {
		return
	}
	h.resolved = true
	h.reply <- op
}

// Dispatch resolves the token by letting the native event pass.
func (h *Handler) Dispatch() { h.Handle(Dispatch) }

// Block resolves the token by suppressing the native event.
func (h *Handler) Block() { h.Handle(Block) }

// Release resolves the token to Dispatch if it has not already been
// resolved. Callers that receive a Handler and choose not to act on it
// must call Release before discarding it, since Go has no destructor to
// enforce "drop defaults to dispatch" automatically.
func (h *Handler) Release() {
	if !h.resolved {
		h.Dispatch()
	}
}
