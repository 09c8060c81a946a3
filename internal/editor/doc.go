// Package editor provides the Controller, the single owner of an editor's
// content tree and live selection.
//
// Every input path (keys, paste, cut, feature commands, undo and redo)
// mutates the tree synchronously and then runs one change handler. The
// handler normalizes the tree, notifies the host with the text and markup
// forms of the content and requests a throttled history checkpoint.
//
// A Controller is not safe for concurrent use. Hosts call it from the
// goroutine that runs its event loop.
package editor
