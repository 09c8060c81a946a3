package feature

import (
	"errors"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/format"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/event/loop"
	"github.com/dshills/richedit/internal/input/key"
	"github.com/dshills/richedit/internal/logging"
	"github.com/dshills/richedit/internal/surface"
)

// Feature errors.
var (
	ErrAlreadyMounted = errors.New("feature already mounted")
	ErrNotMounted     = errors.New("feature not mounted")
	ErrDisabled       = errors.New("feature disabled")
	ErrUnknownFeature = errors.New("unknown feature")
)

// Feature is a named editor command.
type Feature interface {
	Name() string
}

// ActiveChecker reports whether the feature's format applies to the
// selection.
type ActiveChecker interface {
	IsActive() bool
}

// DisabledChecker reports whether the feature cannot currently be used.
type DisabledChecker interface {
	IsDisabled() bool
}

// EnterHandler may take over the Enter key. n is the caret container or
// one of its ancestors below the editor root.
type EnterHandler interface {
	OnEnter(n *dom.Node) bool
}

// ShortcutHandler is offered key presses made with the shortcut modifier.
type ShortcutHandler interface {
	OnShortcut(ev key.Event) bool
}

// ShortcutProvider declares shortcuts to bind through the keymap. It is
// called after Mount.
type ShortcutProvider interface {
	Shortcuts() []Shortcut
}

// SelectionChangeHandler is notified when the selection moves.
type SelectionChangeHandler interface {
	OnSelectionChange()
}

// FocusHandler is notified when the editor surface gains or loses focus.
type FocusHandler interface {
	OnFocus()
	OnBlur()
}

// PathChangeHandler is notified when the structure around the caret
// changes, e.g. the caret moved from a list into a quote.
type PathChangeHandler interface {
	OnPathChange()
}

// Mounter is given the Host when the feature is mounted and told when it
// is unmounted. Deferred work must not run after Unmount.
type Mounter interface {
	Mount(h Host) error
	Unmount()
}

// Executor runs the feature's command, as a toolbar click would.
type Executor interface {
	Exec() error
}

// Shortcut binds a key spec to a command.
type Shortcut struct {
	Keys        string
	Description string
	Run         func() error
}

// Host is the editor as seen by a mounted feature.
type Host interface {
	Root() *dom.Node
	Selection() *selection.Selection
	Surface() surface.Surface
	Formatter() *format.Formatter
	Scheduler() loop.Scheduler

	// Focused reports whether the editor surface has focus.
	Focused() bool
	// Disabled reports whether the editor rejects input.
	Disabled() bool
	// CtrlKey is the platform shortcut modifier.
	CtrlKey() key.Modifier
	// Commit runs the editor's change handler after a mutation.
	Commit()

	Logger() *logging.Logger
}
