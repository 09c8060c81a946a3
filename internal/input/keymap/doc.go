// Package keymap manages shortcut registrations for the editor.
//
// Each binding carries an owner handle so a feature can revoke all of its
// shortcuts when it is unmounted. Bindings are offered events in the order
// they were registered; the first handler that reports the event handled
// wins and later bindings are skipped.
//
//	km := keymap.New()
//	owner := uuid.New()
//	if err := km.Bind(owner, "Ctrl+B", "toggle bold", toggleBold); err != nil {
//	    // errors.Is(err, keymap.ErrShortcutConflict)
//	}
//	km.Dispatch(key.NewRuneEvent('b', key.ModCtrl))
//	km.Unbind(owner)
package keymap
