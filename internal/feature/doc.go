// Package feature implements the pluggable command protocol of the editor.
//
// A Feature only has to report its name. Everything else is an optional
// capability discovered by type assertion:
//
//   - ActiveChecker and DisabledChecker report toolbar state
//   - EnterHandler is offered the Enter key for each ancestor of the caret
//   - ShortcutHandler is offered every qualifying key press
//   - ShortcutProvider declares shortcuts bound through the keymap
//   - SelectionChangeHandler, FocusHandler and PathChangeHandler receive
//     notifications that may change state
//   - Mounter receives the Host on mount and is told when it is removed
//
// Most features are built with NewToggle, which pairs a command with its
// predicates and re-evaluates them on the next loop tick after anything
// that could change them:
//
//	bold := feature.NewToggle("bold",
//		func(h feature.Host) error { ... },
//		feature.WithActive(feature.HasFormat(dom.TagB, "")),
//		feature.WithShortcut("b", "toggle bold"),
//	)
package feature
