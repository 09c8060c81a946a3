package keymap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/input/key"
)

// ErrShortcutConflict is returned when a shortcut is already bound by another owner.
var ErrShortcutConflict = errors.New("shortcut already bound")

// Keymap is an ordered collection of shortcut bindings. Dispatch offers an
// event to matching bindings in registration order.
type Keymap struct {
	mu       sync.RWMutex
	bindings []*Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{}
}

// Bind registers handler for the shortcut spec on behalf of owner.
func (k *Keymap) Bind(owner uuid.UUID, spec, description string, handler Handler) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("bind %q: %w", spec, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	for _, b := range k.bindings {
		if !b.catchAll() && b.Event.Matches(ev) {
			return fmt.Errorf("%w: %s (owner %s)", ErrShortcutConflict, ev, b.Owner)
		}
	}
	k.bindings = append(k.bindings, &Binding{
		Keys:        spec,
		Event:       ev,
		Owner:       owner,
		Handler:     handler,
		Description: description,
	})
	return nil
}

// BindAll registers handler to be offered every dispatched event, in
// registration order with the other bindings.
func (k *Keymap) BindAll(owner uuid.UUID, description string, handler Handler) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = append(k.bindings, &Binding{
		Owner:       owner,
		Handler:     handler,
		Description: description,
	})
}

// Unbind removes every binding registered by owner and returns how many
// were removed.
func (k *Keymap) Unbind(owner uuid.UUID) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	kept := k.bindings[:0]
	removed := 0
	for _, b := range k.bindings {
		if b.Owner == owner {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(k.bindings); i++ {
		k.bindings[i] = nil
	}
	k.bindings = kept
	return removed
}

// Lookup returns the bindings that would be offered ev, in order.
func (k *Keymap) Lookup(ev key.Event) []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []Binding
	for _, b := range k.bindings {
		if b.matches(ev) {
			out = append(out, *b)
		}
	}
	return out
}

// Dispatch offers ev to matching bindings in registration order and stops
// at the first handler that consumes it.
func (k *Keymap) Dispatch(ev key.Event) bool {
	// Handlers may bind or unbind; run them outside the lock.
	for _, b := range k.Lookup(ev) {
		if b.Handler != nil && b.Handler(ev) {
			return true
		}
	}
	return false
}

// Bindings returns a snapshot of all bindings in registration order.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, len(k.bindings))
	for i, b := range k.bindings {
		out[i] = *b
	}
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}
