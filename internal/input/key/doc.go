// Package key provides key event types and shortcut parsing for the editor.
//
//   - Key: identifies a special key, or KeyRune for character input
//   - Modifier: Ctrl, Alt, Shift and Meta as a bit set
//   - Event: a single key press
//
// # Shortcut Specifications
//
// Shortcuts are written as modifier names joined to a key with "+":
//
//	"Ctrl+B", "meta+i", "Ctrl+Shift+Z", "Enter"
//
// Letters are case-insensitive. Event.Matches normalizes an upper-case rune
// into its lower-case form plus Shift, so terminals that report Ctrl+Shift+Z
// as 'Z' with Ctrl still match "Ctrl+Shift+Z".
package key
