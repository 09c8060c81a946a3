package keymap

import (
	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/input/key"
)

// Handler handles a key event and reports whether it consumed it.
type Handler func(ev key.Event) bool

// Binding represents a single shortcut registration.
type Binding struct {
	// Keys is the shortcut spec the binding was registered with.
	// Empty for bindings that receive every event.
	Keys string

	// Event is the parsed form of Keys.
	Event key.Event

	// Owner identifies the registrant; Unbind removes by owner.
	Owner uuid.UUID

	// Handler runs when the binding matches.
	Handler Handler

	// Description provides documentation for the binding.
	Description string
}

// catchAll reports whether the binding is offered every event.
func (b *Binding) catchAll() bool {
	return b.Keys == ""
}

// matches reports whether ev should be offered to this binding.
func (b *Binding) matches(ev key.Event) bool {
	return b.catchAll() || b.Event.Matches(ev)
}
