// Package history provides checkpoint based undo/redo for the editor.
//
// A Checkpoint pairs the serialized content of the editor root with an
// optional structural snapshot: a deep clone of the root and the selection
// re-expressed against that clone. The snapshot lets undo restore the
// exact tree and caret instead of re-parsing markup.
//
// # Store
//
// Store keeps two stacks. The undo stack holds every known state, oldest
// first, with the current state on top; the redo stack holds states that
// were undone.
//
//	store := history.NewStore(100)
//	store.Save(cp)            // no-op when the content equals the top
//	prev, err := store.Undo() // needs two entries: current + previous
//	next, err := store.Redo()
//
// Undo and Redo report ErrNothingToUndo and ErrNothingToRedo rather than
// doing nothing, so callers can tell "nothing to do" from success. Saving
// clears the redo stack and evicts the oldest entry once the bound is
// reached.
//
// # Throttle
//
// Capturing a snapshot clones the whole tree, so captures are rate
// limited. Throttle runs its function at most once per window: the first
// call runs immediately and further calls inside the window collapse into
// one trailing run when the window ends. Flush forces the pending run now
// (before undo, so the change being undone is captured) and Cancel drops
// it (on teardown).
package history
