// Package selection anchors positions into a dom tree.
//
// A Position is a (container, offset) pair. For text containers the offset
// is a byte offset into the text; for element containers it is a child
// index. A Range is a start and end Position; a collapsed Range is a caret.
//
// Ranges are weak references. They do not own nodes and are not updated
// when the tree changes. Any operation that mutates the tree either rewrites
// the live selection itself or leaves it to the caller to compute a new one.
// Never keep a Range across an unrelated mutation.
//
// Selection holds the single live range of an editor:
//
//	sel := selection.New()
//	sel.Replace(selection.Caret(text, 3))
//	if err := sel.InsertText("abc"); err != nil {
//		// ErrNoSelection
//	}
//
// Query helpers such as FindIntersecting and SelectedChildren read the live
// range and return nil when nothing matches. Only snapshotting with
// CloneNodeAndRange reports a failure, ErrRangeNotInside, when the range does
// not lie within the cloned node.
package selection
