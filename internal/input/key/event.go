package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this event inserts a printable character:
// a rune with no modifier other than Shift.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character events Shift alone does not count.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize folds an upper-case rune into its lower-case form plus Shift,
// so "Ctrl+Z" typed with Shift and a reported 'Z' compare equal.
func (e Event) Normalize() Event {
	if e.Key == KeyRune && unicode.IsUpper(e.Rune) {
		e.Rune = unicode.ToLower(e.Rune)
		e.Modifiers = e.Modifiers.With(ModShift)
	}
	return e
}

// Matches reports whether e and other denote the same key press after
// normalization.
func (e Event) Matches(other Event) bool {
	a, b := e.Normalize(), other.Normalize()
	return a.Key == b.Key && a.Rune == b.Rune && a.Modifiers == b.Modifiers
}

// String returns the event in shortcut notation, e.g. "Ctrl+Shift+Z".
func (e Event) String() string {
	n := e.Normalize()
	var parts []string
	if mods := n.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}
	switch {
	case n.Key != KeyRune:
		parts = append(parts, n.Key.String())
	case n.Rune == ' ':
		parts = append(parts, "Space")
	default:
		parts = append(parts, strings.ToUpper(string(n.Rune)))
	}
	return strings.Join(parts, "+")
}
