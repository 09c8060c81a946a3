package feature

import (
	"fmt"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Command mutates the content through the host.
type Command func(h Host) error

// Predicate inspects the host.
type Predicate func(h Host) bool

// State is the toolbar state of a toggle.
type State struct {
	Active   bool
	Disabled bool
}

// ToggleOption configures a Toggle.
type ToggleOption func(*Toggle)

// WithActive sets the predicate that reports the format as applied.
func WithActive(p Predicate) ToggleOption {
	return func(t *Toggle) { t.isActive = p }
}

// WithDisabled sets the predicate that reports the toggle unusable.
func WithDisabled(p Predicate) ToggleOption {
	return func(t *Toggle) { t.isDisabled = p }
}

// WithShortcut binds CtrlKey plus k (e.g. "b") to the command.
func WithShortcut(k, description string) ToggleOption {
	return func(t *Toggle) {
		t.shortcuts = append(t.shortcuts, shortcutSpec{key: k, description: description})
	}
}

// WithEnter sets a handler for the Enter key.
func WithEnter(fn func(h Host, n *dom.Node) bool) ToggleOption {
	return func(t *Toggle) { t.onEnter = fn }
}

// WithStateListener registers fn to be called whenever the state changes.
func WithStateListener(fn func(State)) ToggleOption {
	return func(t *Toggle) { t.listeners = append(t.listeners, fn) }
}

type shortcutSpec struct {
	key         string
	description string
}

// Toggle is a feature that applies its format when inactive and removes
// it when active.
type Toggle struct {
	name       string
	exec       Command
	isActive   Predicate
	isDisabled Predicate
	onEnter    func(h Host, n *dom.Node) bool
	shortcuts  []shortcutSpec
	listeners  []func(State)

	host      Host
	unmounted bool
	syncing   bool
	state     State
}

// NewToggle creates a toggle feature running exec.
func NewToggle(name string, exec Command, opts ...ToggleOption) *Toggle {
	t := &Toggle{name: name, exec: exec}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements Feature.
func (t *Toggle) Name() string { return t.name }

// Mount implements Mounter.
func (t *Toggle) Mount(h Host) error {
	if t.host != nil {
		return fmt.Errorf("%s: %w", t.name, ErrAlreadyMounted)
	}
	t.host = h
	t.unmounted = false
	t.syncState()
	return nil
}

// Unmount implements Mounter. A pending state sync is dropped.
func (t *Toggle) Unmount() {
	t.unmounted = true
	t.host = nil
}

// IsActive implements ActiveChecker. A toggle is only active while the
// editor has focus.
func (t *Toggle) IsActive() bool {
	if t.host == nil || t.isActive == nil || !t.host.Focused() {
		return false
	}
	return t.isActive(t.host)
}

// IsDisabled implements DisabledChecker.
func (t *Toggle) IsDisabled() bool {
	if t.host == nil {
		return true
	}
	if t.host.Disabled() {
		return true
	}
	return t.isDisabled != nil && t.isDisabled(t.host)
}

// State returns the last synchronized state.
func (t *Toggle) State() State { return t.state }

// Exec implements Executor: it runs the command, commits the change and
// schedules a state sync.
func (t *Toggle) Exec() error {
	if t.host == nil {
		return fmt.Errorf("%s: %w", t.name, ErrNotMounted)
	}
	if t.IsDisabled() {
		return fmt.Errorf("%s: %w", t.name, ErrDisabled)
	}
	err := t.exec(t.host)
	t.host.Commit()
	t.syncState()
	if err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}

// Shortcuts implements ShortcutProvider.
func (t *Toggle) Shortcuts() []Shortcut {
	if t.host == nil {
		return nil
	}
	mod := t.host.CtrlKey().String()
	out := make([]Shortcut, 0, len(t.shortcuts))
	for _, s := range t.shortcuts {
		out = append(out, Shortcut{
			Keys:        mod + "+" + s.key,
			Description: s.description,
			Run:         t.runShortcut,
		})
	}
	return out
}

func (t *Toggle) runShortcut() error {
	if t.host == nil {
		return fmt.Errorf("%s: %w", t.name, ErrNotMounted)
	}
	if t.IsDisabled() {
		return fmt.Errorf("%s: %w", t.name, ErrDisabled)
	}
	defer t.syncState()
	return t.exec(t.host)
}

// OnEnter implements EnterHandler.
func (t *Toggle) OnEnter(n *dom.Node) bool {
	if t.onEnter == nil || t.host == nil || t.IsDisabled() {
		return false
	}
	return t.onEnter(t.host, n)
}

// OnSelectionChange implements SelectionChangeHandler.
func (t *Toggle) OnSelectionChange() { t.syncState() }

// OnFocus implements FocusHandler.
func (t *Toggle) OnFocus() { t.syncState() }

// OnBlur implements FocusHandler.
func (t *Toggle) OnBlur() { t.syncState() }

// OnPathChange implements PathChangeHandler.
func (t *Toggle) OnPathChange() { t.syncState() }

// syncState re-evaluates the predicates on the next tick. Requests made
// while one is pending are folded into it.
func (t *Toggle) syncState() {
	if t.syncing || t.host == nil {
		return
	}
	t.syncing = true
	t.host.Scheduler().Defer(func() {
		t.syncing = false
		if t.unmounted || t.host == nil {
			return
		}
		next := State{Active: t.IsActive(), Disabled: t.IsDisabled()}
		if next == t.state {
			return
		}
		t.state = next
		for _, fn := range t.listeners {
			fn(next)
		}
	})
}
